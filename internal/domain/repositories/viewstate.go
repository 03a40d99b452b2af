package repositories

import (
	"context"

	"archiva/internal/domain/models"
)

// ViewStateRepository persists per-user, per-corpus tree view state
// (selection + expanded folder set). Implementations must degrade to
// models.DefaultViewState when stored state is absent or undecodable.
type ViewStateRepository interface {
	// Get returns the stored view state, or the default state when none is
	// stored or the stored payload is corrupt.
	Get(ctx context.Context, userID, corpusID string) (*models.ViewState, error)

	// Put replaces the stored view state.
	Put(ctx context.Context, userID, corpusID string, state *models.ViewState) error

	// Delete clears the stored view state.
	Delete(ctx context.Context, userID, corpusID string) error
}
