package services

import (
	"context"

	"archiva/internal/domain/models"
)

// TrashContents lists everything currently soft-deleted in a corpus.
type TrashContents struct {
	Folders   []models.Folder   `json:"folders"`
	Documents []models.Document `json:"documents"`
}

// TreeService builds the nested folder/document tree for a corpus.
type TreeService interface {
	// GetCorpusTree builds and returns the nested tree. Folders whose parent
	// reference cannot be resolved are excluded from the result.
	GetCorpusTree(ctx context.Context, corpusID, userID string) (*models.Tree, error)

	// GetTrash lists trashed folders and documents
	GetTrash(ctx context.Context, corpusID, userID string) (*TrashContents, error)
}
