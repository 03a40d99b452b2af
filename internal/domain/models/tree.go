package models

import "time"

// Tree is the root of the corpus folder/document tree.
type Tree struct {
	Folders   []*FolderNode  `json:"folders"`
	Documents []DocumentNode `json:"documents"`
}

// FolderNode is a folder in the tree with nested children. Derived from the
// flat folder collection, never persisted.
type FolderNode struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	ParentID           *string        `json:"parent_id"`
	Color              string         `json:"color"`
	Icon               Icon           `json:"icon"`
	DocumentCount      int            `json:"document_count"`
	TotalDocumentCount int            `json:"total_document_count"`
	CreatedAt          time.Time      `json:"created_at"`
	Folders            []*FolderNode  `json:"folders"` // Pointers for proper nesting
	Documents          []DocumentNode `json:"documents"`
}

// DocumentNode is a document in the tree (metadata only, no content).
type DocumentNode struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FolderID  *string   `json:"folder_id"`
	WordCount int       `json:"word_count"`
	UpdatedAt time.Time `json:"updated_at"`
}
