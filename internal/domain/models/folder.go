package models

import "time"

// Permission is a single grant on a folder for the requesting viewer.
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionWrite  Permission = "write"
	PermissionMove   Permission = "move"
	PermissionDelete Permission = "delete"
	PermissionShare  Permission = "share"
)

// OwnerPermissions is the full grant set a corpus owner holds on every folder.
func OwnerPermissions() []Permission {
	return []Permission{
		PermissionRead,
		PermissionWrite,
		PermissionMove,
		PermissionDelete,
		PermissionShare,
	}
}

// ViewerPermissions is the grant set for non-owners on published folders.
func ViewerPermissions() []Permission {
	return []Permission{PermissionRead}
}

// Folder is an organizational node within a corpus, optionally nested under
// another folder. ParentID is a weak reference by ID; ownership of the record
// lives in the corpus-scoped flat collection. NULL parent = root level.
type Folder struct {
	ID          string   `json:"id" db:"id"`
	CorpusID    string   `json:"corpus_id" db:"corpus_id"`
	ParentID    *string  `json:"parent_id" db:"parent_id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Color       string   `json:"color" db:"color"`
	Icon        Icon     `json:"icon" db:"icon"`
	Tags        []string `json:"tags" db:"tags"`
	Published   bool     `json:"published" db:"published"`

	// DocumentCount is the number of documents directly in this folder.
	// TotalDocumentCount additionally counts every descendant folder's
	// documents. Both are computed at read time, never stored.
	DocumentCount      int `json:"document_count"`
	TotalDocumentCount int `json:"total_document_count"`

	// Permissions holds the grants of the requesting viewer. Computed per
	// request, never stored.
	Permissions []Permission `json:"permissions,omitempty"`

	// Path is the computed display path from root, not stored in DB.
	Path string `json:"path,omitempty"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// HasTag reports whether the folder carries the given tag. Tags are set-like:
// unordered, no duplicates.
func (f *Folder) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
