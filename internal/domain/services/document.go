package services

import (
	"context"

	"archiva/internal/domain/models"
)

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	CorpusID string  `json:"corpus_id"`
	UserID   string  `json:"-"`
	Name     string  `json:"name"`
	Content  string  `json:"content,omitempty"`
	FolderID *string `json:"folder_id,omitempty"` // nil = corpus root
}

// UpdateDocumentRequest represents a document update (rename, edit or move).
// FolderID is tri-state: absent leaves the document in place, null moves it
// to the corpus root.
type UpdateDocumentRequest struct {
	CorpusID string
	UserID   string
	Name     *string
	Content  *string
	FolderID OptionalID
}

// SearchDocumentsRequest scopes a full-text search to a corpus
type SearchDocumentsRequest struct {
	CorpusID string
	UserID   string
	Query    string
	Limit    int
	Offset   int
}

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument creates a new document
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document with content and computed path
	GetDocument(ctx context.Context, id, corpusID, userID string) (*models.Document, error)

	// UpdateDocument updates a document (rename, edit or move)
	UpdateDocument(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error)

	// DeleteDocument soft-deletes a document
	DeleteDocument(ctx context.Context, id, corpusID, userID string) error

	// ListByFolder lists documents directly in a folder, served from the
	// list cache when warm
	ListByFolder(ctx context.Context, folderID *string, corpusID, userID string) ([]models.Document, error)

	// SearchDocuments runs a corpus-scoped full-text search
	SearchDocuments(ctx context.Context, req *SearchDocumentsRequest) ([]models.SearchResult, error)
}
