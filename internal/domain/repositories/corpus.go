package repositories

import (
	"context"

	"archiva/internal/domain/models"
)

// CorpusRepository defines data access operations for corpora.
type CorpusRepository interface {
	// Create creates a new corpus
	Create(ctx context.Context, corpus *models.Corpus) error

	// GetByID retrieves a corpus owned by the user
	GetByID(ctx context.Context, id, ownerID string) (*models.Corpus, error)

	// List retrieves all corpora for a user, most recently updated first
	List(ctx context.Context, ownerID string) ([]models.Corpus, error)

	// Update updates a corpus name and updated_at timestamp
	Update(ctx context.Context, corpus *models.Corpus) error

	// Delete soft-deletes a corpus and returns the deleted record
	Delete(ctx context.Context, id, ownerID string) (*models.Corpus, error)
}
