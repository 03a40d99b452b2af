package service

import (
	"context"
	"log/slog"

	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
	"archiva/internal/domain/services"
	"archiva/internal/tree"
)

// viewStateService implements the ViewStateService interface
type viewStateService struct {
	viewRepo   repositories.ViewStateRepository
	folderRepo repositories.FolderRepository
	corpusRepo repositories.CorpusRepository
	logger     *slog.Logger
}

// NewViewStateService creates a new view state service
func NewViewStateService(
	viewRepo repositories.ViewStateRepository,
	folderRepo repositories.FolderRepository,
	corpusRepo repositories.CorpusRepository,
	logger *slog.Logger,
) services.ViewStateService {
	return &viewStateService{
		viewRepo:   viewRepo,
		folderRepo: folderRepo,
		corpusRepo: corpusRepo,
		logger:     logger,
	}
}

// GetView returns the user's view state for a corpus
func (s *viewStateService) GetView(ctx context.Context, userID, corpusID string) (*models.ViewState, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}
	return s.viewRepo.Get(ctx, userID, corpusID)
}

// SelectFolder selects a folder and expands it along with every ancestor, so
// the selection is visible even in a previously collapsed tree.
func (s *viewStateService) SelectFolder(ctx context.Context, userID, corpusID, folderID string) (*models.ViewState, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}
	if _, err := s.folderRepo.GetByID(ctx, folderID, corpusID); err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.ListByCorpus(ctx, corpusID)
	if err != nil {
		return nil, err
	}

	state, err := s.viewRepo.Get(ctx, userID, corpusID)
	if err != nil {
		return nil, err
	}

	id := folderID
	state.Selection = models.Selection{Kind: models.SelectionFolder, FolderID: &id}
	state.Expand(tree.AncestorIDs(folders, folderID)...)
	state.Expand(folderID)

	return s.put(ctx, userID, corpusID, state)
}

// SelectRoot selects the corpus root
func (s *viewStateService) SelectRoot(ctx context.Context, userID, corpusID string) (*models.ViewState, error) {
	return s.selectKind(ctx, userID, corpusID, models.SelectionRoot)
}

// SelectTrash selects the trash pseudo-folder
func (s *viewStateService) SelectTrash(ctx context.Context, userID, corpusID string) (*models.ViewState, error) {
	return s.selectKind(ctx, userID, corpusID, models.SelectionTrash)
}

func (s *viewStateService) selectKind(ctx context.Context, userID, corpusID string, kind models.SelectionKind) (*models.ViewState, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	state, err := s.viewRepo.Get(ctx, userID, corpusID)
	if err != nil {
		return nil, err
	}

	state.Selection = models.Selection{Kind: kind}
	return s.put(ctx, userID, corpusID, state)
}

// ToggleExpanded flips a single folder's expansion, independent of selection
func (s *viewStateService) ToggleExpanded(ctx context.Context, userID, corpusID, folderID string) (*models.ViewState, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}
	if _, err := s.folderRepo.GetByID(ctx, folderID, corpusID); err != nil {
		return nil, err
	}

	state, err := s.viewRepo.Get(ctx, userID, corpusID)
	if err != nil {
		return nil, err
	}

	if state.IsExpanded(folderID) {
		state.Collapse(folderID)
	} else {
		state.Expand(folderID)
	}
	return s.put(ctx, userID, corpusID, state)
}

// ExpandAll expands every live folder in the corpus
func (s *viewStateService) ExpandAll(ctx context.Context, userID, corpusID string) (*models.ViewState, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.ListByCorpus(ctx, corpusID)
	if err != nil {
		return nil, err
	}

	state, err := s.viewRepo.Get(ctx, userID, corpusID)
	if err != nil {
		return nil, err
	}

	for _, f := range folders {
		state.Expand(f.ID)
	}
	return s.put(ctx, userID, corpusID, state)
}

// CollapseAll clears the expanded set
func (s *viewStateService) CollapseAll(ctx context.Context, userID, corpusID string) (*models.ViewState, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	state, err := s.viewRepo.Get(ctx, userID, corpusID)
	if err != nil {
		return nil, err
	}

	state.Expanded = []string{}
	return s.put(ctx, userID, corpusID, state)
}

func (s *viewStateService) put(ctx context.Context, userID, corpusID string, state *models.ViewState) (*models.ViewState, error) {
	if err := s.viewRepo.Put(ctx, userID, corpusID, state); err != nil {
		return nil, err
	}
	return state, nil
}
