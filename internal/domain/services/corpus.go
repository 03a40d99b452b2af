package services

import (
	"context"

	"archiva/internal/domain/models"
)

// CreateCorpusRequest represents a request to create a corpus
type CreateCorpusRequest struct {
	OwnerID string `json:"-"`
	Name    string `json:"name"`
}

// UpdateCorpusRequest represents a request to rename a corpus
type UpdateCorpusRequest struct {
	Name string `json:"name"`
}

// CorpusService defines business logic operations for corpora
type CorpusService interface {
	// CreateCorpus creates a new corpus
	CreateCorpus(ctx context.Context, req *CreateCorpusRequest) (*models.Corpus, error)

	// GetCorpus retrieves a corpus by ID
	GetCorpus(ctx context.Context, id, ownerID string) (*models.Corpus, error)

	// ListCorpora retrieves all corpora for a user
	ListCorpora(ctx context.Context, ownerID string) ([]models.Corpus, error)

	// UpdateCorpus renames a corpus
	UpdateCorpus(ctx context.Context, id, ownerID string, req *UpdateCorpusRequest) (*models.Corpus, error)

	// DeleteCorpus soft-deletes a corpus
	DeleteCorpus(ctx context.Context, id, ownerID string) error
}
