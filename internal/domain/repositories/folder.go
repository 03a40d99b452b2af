package repositories

import (
	"context"

	"archiva/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// The flat corpus-scoped collection returned by ListByCorpus is the source of
// truth the tree and breadcrumb builders derive from.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a live folder by ID within a corpus
	GetByID(ctx context.Context, id, corpusID string) (*models.Folder, error)

	// Update persists parent, name, description, color, icon, tags and
	// publication flag changes
	Update(ctx context.Context, folder *models.Folder) error

	// Delete soft-deletes a folder (moves it to trash)
	Delete(ctx context.Context, id, corpusID string) error

	// ListByCorpus retrieves the flat collection of live folders in a corpus,
	// with direct document counts populated
	ListByCorpus(ctx context.Context, corpusID string) ([]models.Folder, error)

	// ListChildren lists immediate live child folders. A nil folderID lists
	// root-level folders.
	ListChildren(ctx context.Context, folderID *string, corpusID string) ([]models.Folder, error)

	// ListTrashed retrieves soft-deleted folders in a corpus
	ListTrashed(ctx context.Context, corpusID string) ([]models.Folder, error)

	// GetPath computes the display path for a folder ("" for nil folderID)
	GetPath(ctx context.Context, folderID *string, corpusID string) (string, error)
}
