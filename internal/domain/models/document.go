package models

import "time"

// Document is a corpus member. Content is stored but only metadata travels in
// tree and list responses. FolderID NULL = corpus root.
type Document struct {
	ID        string     `json:"id" db:"id"`
	CorpusID  string     `json:"corpus_id" db:"corpus_id"`
	FolderID  *string    `json:"folder_id" db:"folder_id"`
	Name      string     `json:"name" db:"name"`
	Content   string     `json:"content,omitempty" db:"content"`
	WordCount int        `json:"word_count" db:"word_count"`
	Path      string     `json:"path,omitempty"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// SearchResult is a document search hit with its relevance rank and a
// content snippet with match highlighting.
type SearchResult struct {
	Document
	Rank    float64 `json:"rank"`
	Snippet string  `json:"snippet,omitempty"`
}
