package services

import (
	"context"

	"archiva/internal/domain/models"
)

// ViewStateService manages per-user tree view state. Selecting a folder
// always expands every ancestor of that folder, so the selected node is
// visible even in a previously collapsed tree.
type ViewStateService interface {
	// GetView returns the user's view state for a corpus
	GetView(ctx context.Context, userID, corpusID string) (*models.ViewState, error)

	// SelectFolder selects a folder and expands all its ancestors
	SelectFolder(ctx context.Context, userID, corpusID, folderID string) (*models.ViewState, error)

	// SelectRoot selects the corpus root
	SelectRoot(ctx context.Context, userID, corpusID string) (*models.ViewState, error)

	// SelectTrash selects the trash pseudo-folder
	SelectTrash(ctx context.Context, userID, corpusID string) (*models.ViewState, error)

	// ToggleExpanded flips a single folder's expansion, independent of
	// selection
	ToggleExpanded(ctx context.Context, userID, corpusID, folderID string) (*models.ViewState, error)

	// ExpandAll expands every folder in the corpus
	ExpandAll(ctx context.Context, userID, corpusID string) (*models.ViewState, error)

	// CollapseAll clears the expanded set
	CollapseAll(ctx context.Context, userID, corpusID string) (*models.ViewState, error)
}
