package services

import (
	"context"

	"archiva/internal/domain/models"
)

// OptionalID tracks presence and value for PATCH semantics (RFC 7396) on ID
// fields. Transport-agnostic (no JSON tags) - handlers map from
// httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (move to root)
//   - Present=true, Value=&id: move under the given folder
type OptionalID struct {
	Present bool
	Value   *string
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	CorpusID    string   `json:"corpus_id"`
	UserID      string   `json:"-"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ParentID    *string  `json:"parent_id,omitempty"` // nil = root level
	Published   bool     `json:"published,omitempty"`
}

// UpdateFolderRequest represents a folder update (rename, restyle or move).
// Nil pointer fields are left unchanged; ParentID is tri-state.
type UpdateFolderRequest struct {
	CorpusID    string
	UserID      string
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	Tags        []string
	Published   *bool
	ParentID    OptionalID
}

// FolderContents represents a folder with its immediate children
type FolderContents struct {
	Folder    *models.Folder    `json:"folder,omitempty"` // nil for root
	Folders   []models.Folder   `json:"folders"`
	Documents []models.Document `json:"documents"`
}

// FolderDetail is a folder together with its breadcrumb (ordered ancestor
// chain from root to the folder itself).
type FolderDetail struct {
	Folder     *models.Folder  `json:"folder"`
	Breadcrumb []models.Folder `json:"breadcrumb"`
}

// FolderService handles folder business logic. All name and move validation
// happens here, before any repository write.
type FolderService interface {
	// CreateFolder creates a new folder after validating the name and
	// checking for sibling duplicates
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder with its computed path and breadcrumb
	GetFolder(ctx context.Context, id, corpusID, userID string) (*FolderDetail, error)

	// UpdateFolder updates a folder (rename, restyle or move). Moves reject
	// no-op destinations and anything inside the folder's own subtree.
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder soft-deletes a folder and all its contents
	DeleteFolder(ctx context.Context, id, corpusID, userID string) error

	// ListFolders retrieves the flat folder collection for a corpus
	ListFolders(ctx context.Context, corpusID, userID string) ([]models.Folder, error)

	// ListChildren lists immediate child folders and documents
	ListChildren(ctx context.Context, folderID *string, corpusID, userID string) (*FolderContents, error)

	// ListDestinations enumerates valid move destinations for a folder:
	// every folder in the corpus except the folder itself and its subtree.
	ListDestinations(ctx context.Context, id, corpusID, userID string) ([]models.Folder, error)
}
