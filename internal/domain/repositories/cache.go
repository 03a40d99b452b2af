package repositories

import (
	"context"

	"archiva/internal/domain/models"
)

// ListCache caches folder-scoped document lists and the corpus folder list.
// A document move affects every list view the document could appear in, so
// document mutations evict all document lists for the corpus rather than
// patching individual entries. Folder mutations evict the folder list, which
// forces the next tree build to refetch.
type ListCache interface {
	// GetDocumentList returns a cached document list for (corpus, folder),
	// or (nil, false) on miss. folderID nil means the corpus root.
	GetDocumentList(ctx context.Context, corpusID string, folderID *string) ([]models.Document, bool)

	// PutDocumentList stores a document list for (corpus, folder).
	PutDocumentList(ctx context.Context, corpusID string, folderID *string, docs []models.Document)

	// EvictDocumentLists drops every cached document list for the corpus.
	EvictDocumentLists(ctx context.Context, corpusID string)

	// GetFolderList returns the cached flat folder collection for a corpus,
	// or (nil, false) on miss.
	GetFolderList(ctx context.Context, corpusID string) ([]models.Folder, bool)

	// PutFolderList stores the flat folder collection for a corpus.
	PutFolderList(ctx context.Context, corpusID string, folders []models.Folder)

	// EvictFolderList drops the cached folder collection for the corpus.
	EvictFolderList(ctx context.Context, corpusID string)
}
