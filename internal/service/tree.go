package service

import (
	"context"
	"log/slog"

	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
	"archiva/internal/domain/services"
	"archiva/internal/tree"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	corpusRepo repositories.CorpusRepository
	listCache  repositories.ListCache
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	corpusRepo repositories.CorpusRepository,
	listCache repositories.ListCache,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		corpusRepo: corpusRepo,
		listCache:  listCache,
		logger:     logger,
	}
}

// GetCorpusTree builds the nested folder/document tree from the flat
// corpus-scoped collections. Folders whose parent reference cannot be
// resolved are excluded, with a warning so the inconsistency is visible.
func (s *treeService) GetCorpusTree(ctx context.Context, corpusID, userID string) (*models.Tree, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	folders, ok := s.listCache.GetFolderList(ctx, corpusID)
	if !ok {
		var err error
		folders, err = s.folderRepo.ListByCorpus(ctx, corpusID)
		if err != nil {
			return nil, err
		}
		s.listCache.PutFolderList(ctx, corpusID, folders)
	}

	docs, err := s.docRepo.ListByCorpus(ctx, corpusID)
	if err != nil {
		return nil, err
	}

	idx := tree.BuildIndex(folders)
	if idx.Orphans > 0 {
		s.logger.Warn("folders excluded from tree: unresolved parent reference",
			"corpus_id", corpusID,
			"orphans", idx.Orphans,
		)
	}
	rootDocs := tree.Attach(idx, docs)
	tree.AggregateCounts(idx)

	return &models.Tree{
		Folders:   idx.Roots,
		Documents: rootDocs,
	}, nil
}

// GetTrash lists trashed folders and documents
func (s *treeService) GetTrash(ctx context.Context, corpusID, userID string) (*services.TrashContents, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.ListTrashed(ctx, corpusID)
	if err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListTrashed(ctx, corpusID)
	if err != nil {
		return nil, err
	}

	return &services.TrashContents{
		Folders:   folders,
		Documents: docs,
	}, nil
}
