package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"archiva/internal/config"
	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
	"archiva/internal/domain/services"
	"archiva/internal/tree"
)

// folderService implements the FolderService interface
type folderService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	corpusRepo repositories.CorpusRepository
	txManager  repositories.TransactionManager
	listCache  repositories.ListCache
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	corpusRepo repositories.CorpusRepository,
	txManager repositories.TransactionManager,
	listCache repositories.ListCache,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		corpusRepo: corpusRepo,
		txManager:  txManager,
		listCache:  listCache,
		logger:     logger,
	}
}

// CreateFolder creates a new folder after validating the name and checking
// for sibling duplicates
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if _, err := s.corpusRepo.GetByID(ctx, req.CorpusID, req.UserID); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Empty-string parent means root level, same as absent
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.CorpusID); err != nil {
			return nil, err
		}
	}

	if err := s.checkSiblingName(ctx, req.CorpusID, req.ParentID, req.Name, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		CorpusID:    req.CorpusID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        models.ParseIcon(req.Icon),
		Tags:        normalizeTags(req.Tags),
		Published:   req.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.listCache.EvictFolderList(ctx, req.CorpusID)
	folder.Permissions = models.OwnerPermissions()

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"corpus_id", req.CorpusID,
		"parent_id", folder.ParentID,
	)
	return folder, nil
}

// GetFolder retrieves a folder with its computed path and breadcrumb
func (s *folderService) GetFolder(ctx context.Context, id, corpusID, userID string) (*services.FolderDetail, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByID(ctx, id, corpusID)
	if err != nil {
		return nil, err
	}

	path, err := s.folderRepo.GetPath(ctx, &folder.ID, corpusID)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", id, "error", err)
		folder.Path = folder.Name
	} else {
		folder.Path = path
	}
	folder.Permissions = models.OwnerPermissions()

	folders, err := s.listFolders(ctx, corpusID)
	if err != nil {
		return nil, err
	}

	return &services.FolderDetail{
		Folder:     folder,
		Breadcrumb: tree.Breadcrumb(folders, id),
	}, nil
}

// UpdateFolder updates a folder (rename, restyle or move)
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if _, err := s.corpusRepo.GetByID(ctx, req.CorpusID, req.UserID); err != nil {
		return nil, err
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, id, req.CorpusID)
	if err != nil {
		return nil, err
	}

	newParent := folder.ParentID
	if req.ParentID.Present {
		newParent = req.ParentID.Value
		if newParent != nil && *newParent == "" {
			newParent = nil
		}
		if err := s.validateMove(ctx, folder, newParent); err != nil {
			return nil, err
		}
	}

	newName := folder.Name
	if req.Name != nil {
		newName = strings.TrimSpace(*req.Name)
	}

	// Renames and moves both need the sibling check at the destination,
	// excluding the record under edit.
	if newName != folder.Name || !sameParent(folder.ParentID, newParent) {
		if err := s.checkSiblingName(ctx, req.CorpusID, newParent, newName, folder.ID); err != nil {
			return nil, err
		}
	}

	folder.Name = newName
	folder.ParentID = newParent
	if req.Description != nil {
		folder.Description = *req.Description
	}
	if req.Color != nil {
		folder.Color = *req.Color
	}
	if req.Icon != nil {
		folder.Icon = models.ParseIcon(*req.Icon)
	}
	if req.Tags != nil {
		folder.Tags = normalizeTags(req.Tags)
	}
	if req.Published != nil {
		folder.Published = *req.Published
	}
	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.listCache.EvictFolderList(ctx, req.CorpusID)
	folder.Permissions = models.OwnerPermissions()

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"corpus_id", req.CorpusID,
		"parent_id", folder.ParentID,
	)
	return folder, nil
}

// DeleteFolder soft-deletes a folder together with its entire subtree and
// every document inside it, in a single transaction.
func (s *folderService) DeleteFolder(ctx context.Context, id, corpusID, userID string) error {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return err
	}
	if _, err := s.folderRepo.GetByID(ctx, id, corpusID); err != nil {
		return err
	}

	folders, err := s.folderRepo.ListByCorpus(ctx, corpusID)
	if err != nil {
		return err
	}
	subtree := tree.DescendantIDs(folders, id)

	docs, err := s.docRepo.ListByCorpus(ctx, corpusID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		for _, doc := range docs {
			if doc.FolderID == nil {
				continue
			}
			if _, in := subtree[*doc.FolderID]; !in {
				continue
			}
			if err := s.docRepo.Delete(ctx, doc.ID, corpusID); err != nil {
				return err
			}
		}
		for folderID := range subtree {
			if err := s.folderRepo.Delete(ctx, folderID, corpusID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.listCache.EvictFolderList(ctx, corpusID)
	s.listCache.EvictDocumentLists(ctx, corpusID)

	s.logger.Info("folder deleted",
		"id", id,
		"corpus_id", corpusID,
		"subtree_size", len(subtree),
	)
	return nil
}

// ListFolders retrieves the flat folder collection for a corpus
func (s *folderService) ListFolders(ctx context.Context, corpusID, userID string) ([]models.Folder, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	folders, err := s.listFolders(ctx, corpusID)
	if err != nil {
		return nil, err
	}
	for i := range folders {
		folders[i].Permissions = models.OwnerPermissions()
	}
	return folders, nil
}

// ListChildren lists immediate child folders and documents
func (s *folderService) ListChildren(ctx context.Context, folderID *string, corpusID, userID string) (*services.FolderContents, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	contents := &services.FolderContents{}
	if folderID != nil {
		folder, err := s.folderRepo.GetByID(ctx, *folderID, corpusID)
		if err != nil {
			return nil, err
		}
		folder.Permissions = models.OwnerPermissions()
		contents.Folder = folder
	}

	children, err := s.folderRepo.ListChildren(ctx, folderID, corpusID)
	if err != nil {
		return nil, err
	}
	for i := range children {
		children[i].Permissions = models.OwnerPermissions()
	}
	contents.Folders = children

	docs, ok := s.listCache.GetDocumentList(ctx, corpusID, folderID)
	if !ok {
		docs, err = s.docRepo.ListByFolder(ctx, folderID, corpusID)
		if err != nil {
			return nil, err
		}
		s.listCache.PutDocumentList(ctx, corpusID, folderID, docs)
	}
	contents.Documents = docs

	return contents, nil
}

// ListDestinations enumerates valid move destinations for a folder: every
// live folder in the corpus except the folder itself and its subtree.
func (s *folderService) ListDestinations(ctx context.Context, id, corpusID, userID string) ([]models.Folder, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}
	if _, err := s.folderRepo.GetByID(ctx, id, corpusID); err != nil {
		return nil, err
	}

	folders, err := s.listFolders(ctx, corpusID)
	if err != nil {
		return nil, err
	}

	excluded := tree.DescendantIDs(folders, id)
	destinations := make([]models.Folder, 0, len(folders))
	for _, f := range folders {
		if _, skip := excluded[f.ID]; skip {
			continue
		}
		f.Permissions = models.OwnerPermissions()
		destinations = append(destinations, f)
	}
	return destinations, nil
}

// listFolders serves the flat collection from the list cache when warm.
func (s *folderService) listFolders(ctx context.Context, corpusID string) ([]models.Folder, error) {
	if folders, ok := s.listCache.GetFolderList(ctx, corpusID); ok {
		return folders, nil
	}
	folders, err := s.folderRepo.ListByCorpus(ctx, corpusID)
	if err != nil {
		return nil, err
	}
	s.listCache.PutFolderList(ctx, corpusID, folders)
	return folders, nil
}

// validateMove rejects no-op moves and destinations inside the folder's own
// subtree. newParent is the already-normalized destination (nil = root).
func (s *folderService) validateMove(ctx context.Context, folder *models.Folder, newParent *string) error {
	if sameParent(folder.ParentID, newParent) {
		return &domain.ValidationError{
			Message: fmt.Sprintf("folder '%s' is already in that location", folder.Name),
		}
	}
	if newParent == nil {
		return nil
	}
	if _, err := s.folderRepo.GetByID(ctx, *newParent, folder.CorpusID); err != nil {
		return err
	}

	folders, err := s.listFolders(ctx, folder.CorpusID)
	if err != nil {
		return err
	}
	if _, inside := tree.DescendantIDs(folders, folder.ID)[*newParent]; inside {
		return &domain.ValidationError{
			Message: fmt.Sprintf("cannot move folder '%s' into its own subtree", folder.Name),
		}
	}
	return nil
}

// checkSiblingName rejects a name already used by a live sibling under the
// same parent. The comparison is exact (case-sensitive). excludeID skips the
// record being edited so renames that keep the name are not self-conflicts.
func (s *folderService) checkSiblingName(ctx context.Context, corpusID string, parentID *string, name, excludeID string) error {
	siblings, err := s.folderRepo.ListChildren(ctx, parentID, corpusID)
	if err != nil {
		return err
	}
	for _, sib := range siblings {
		if sib.ID == excludeID {
			continue
		}
		if sib.Name == name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named '%s' already exists here", name),
				ResourceType: "folder",
				ResourceID:   sib.ID,
			}
		}
	}
	return nil
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CorpusID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxFolderDescriptionLength),
		),
		validation.Field(&req.Tags,
			validation.Length(0, config.MaxFolderTags),
			validation.Each(validation.Length(1, config.MaxTagLength)),
		),
	)
}

func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validation.Validate(trimmed,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		); err != nil {
			return fmt.Errorf("name: %v", err)
		}
	}
	if req.Description != nil {
		if err := validation.Validate(*req.Description,
			validation.Length(0, config.MaxFolderDescriptionLength),
		); err != nil {
			return fmt.Errorf("description: %v", err)
		}
	}
	if req.Tags != nil {
		if err := validation.Validate(req.Tags,
			validation.Length(0, config.MaxFolderTags),
			validation.Each(validation.Length(1, config.MaxTagLength)),
		); err != nil {
			return fmt.Errorf("tags: %v", err)
		}
	}
	return nil
}

// normalizeTags trims tags and drops empties and duplicates, preserving
// first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// sameParent compares two nullable parent references.
func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
