package service

import (
	"context"
	"fmt"
	"log/slog"

	"archiva/internal/domain"
	"archiva/internal/domain/repositories"
	"archiva/internal/domain/services"
)

// moveService implements the MoveService interface. It resolves drag-and-drop
// drop targets ("root", "parent" or a folder ID) to destination folder IDs
// and dispatches the move to the folder or document service, which own the
// actual validation and persistence.
type moveService struct {
	folderService services.FolderService
	docService    services.DocumentService
	folderRepo    repositories.FolderRepository
	logger        *slog.Logger
}

// NewMoveService creates a new move service
func NewMoveService(
	folderService services.FolderService,
	docService services.DocumentService,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.MoveService {
	return &moveService{
		folderService: folderService,
		docService:    docService,
		folderRepo:    folderRepo,
		logger:        logger,
	}
}

// Move resolves the drop target and performs the move
func (s *moveService) Move(ctx context.Context, req *services.MoveRequest) (*services.MoveResult, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}

	dest, err := s.ResolveTarget(ctx, req.CorpusID, req.Target, req.ViewingFolderID)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case services.MoveKindFolder:
		_, err = s.folderService.UpdateFolder(ctx, req.ID, &services.UpdateFolderRequest{
			CorpusID: req.CorpusID,
			UserID:   req.UserID,
			ParentID: services.OptionalID{Present: true, Value: dest},
		})
	case services.MoveKindDocument:
		_, err = s.docService.UpdateDocument(ctx, req.ID, &services.UpdateDocumentRequest{
			CorpusID: req.CorpusID,
			UserID:   req.UserID,
			FolderID: services.OptionalID{Present: true, Value: dest},
		})
	default:
		return nil, fmt.Errorf("%w: unknown move kind '%s'", domain.ErrValidation, req.Kind)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("move completed",
		"kind", req.Kind,
		"id", req.ID,
		"corpus_id", req.CorpusID,
		"destination_id", dest,
	)
	return &services.MoveResult{
		Kind:          req.Kind,
		ID:            req.ID,
		DestinationID: dest,
	}, nil
}

// ResolveTarget resolves a drop target to a destination folder ID.
//   - "root" resolves to the corpus root (nil)
//   - "parent" resolves to the parent of the folder currently being viewed,
//     which is the corpus root when viewing a root-level folder
//   - anything else is taken as a destination folder ID and must exist
func (s *moveService) ResolveTarget(ctx context.Context, corpusID, target string, viewingFolderID *string) (*string, error) {
	switch target {
	case "":
		return nil, fmt.Errorf("%w: target is required", domain.ErrValidation)

	case services.DropTargetRoot:
		return nil, nil

	case services.DropTargetParent:
		if viewingFolderID == nil {
			return nil, fmt.Errorf("%w: target 'parent' requires a viewing folder", domain.ErrValidation)
		}
		viewing, err := s.folderRepo.GetByID(ctx, *viewingFolderID, corpusID)
		if err != nil {
			return nil, err
		}
		return viewing.ParentID, nil

	default:
		folder, err := s.folderRepo.GetByID(ctx, target, corpusID)
		if err != nil {
			return nil, err
		}
		return &folder.ID, nil
	}
}
