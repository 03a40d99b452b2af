package repositories

import (
	"context"

	"archiva/internal/domain/models"
)

// DocumentRepository defines data access operations for documents.
type DocumentRepository interface {
	// Create creates a new document
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a live document by ID within a corpus
	GetByID(ctx context.Context, id, corpusID string) (*models.Document, error)

	// Update persists name, folder and content changes
	Update(ctx context.Context, doc *models.Document) error

	// Delete soft-deletes a document (moves it to trash)
	Delete(ctx context.Context, id, corpusID string) error

	// ListByFolder lists live documents directly in a folder (metadata only).
	// A nil folderID lists root-level documents.
	ListByFolder(ctx context.Context, folderID *string, corpusID string) ([]models.Document, error)

	// ListByCorpus retrieves all live document metadata in a corpus
	ListByCorpus(ctx context.Context, corpusID string) ([]models.Document, error)

	// ListTrashed retrieves soft-deleted documents in a corpus
	ListTrashed(ctx context.Context, corpusID string) ([]models.Document, error)

	// Search runs a corpus-scoped full-text search over names and content
	Search(ctx context.Context, corpusID, query string, limit, offset int) ([]models.SearchResult, error)
}
