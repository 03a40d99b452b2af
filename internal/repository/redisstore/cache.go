package redisstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

// cacheTTL is a safety net; the interesting invalidation is explicit. A
// document's folder membership shows up in several list views at once, so a
// document move evicts every document list for the corpus rather than trying
// to patch entries.
const cacheTTL = 10 * time.Minute

const rootFolderKey = "root"

// ListCache is a Redis-backed cache for folder-scoped document lists and the
// corpus folder list. Cache failures are deliberately non-fatal: a miss or a
// failed write just means the next read hits Postgres.
type ListCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewListCache creates a cache from an existing Redis client
func NewListCache(client *redis.Client, logger *slog.Logger) *ListCache {
	return &ListCache{client: client, logger: logger}
}

var _ repositories.ListCache = (*ListCache)(nil)

// docListKey builds keys of the form doclist:{corpus}:{folder|root}. The
// shared corpus segment is what makes per-corpus eviction a single SCAN.
func docListKey(corpusID string, folderID *string) string {
	suffix := rootFolderKey
	if folderID != nil {
		suffix = *folderID
	}
	return "doclist:" + corpusID + ":" + suffix
}

func folderListKey(corpusID string) string {
	return "folderlist:" + corpusID
}

// GetDocumentList returns a cached document list, or (nil, false) on miss
func (c *ListCache) GetDocumentList(ctx context.Context, corpusID string, folderID *string) ([]models.Document, bool) {
	data, err := c.client.Get(ctx, docListKey(corpusID, folderID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("document list cache read failed", "corpus_id", corpusID, "error", err)
		return nil, false
	}

	var docs []models.Document
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		c.logger.Warn("corrupt document list cache entry", "corpus_id", corpusID, "error", err)
		return nil, false
	}
	return docs, true
}

// PutDocumentList stores a document list for (corpus, folder)
func (c *ListCache) PutDocumentList(ctx context.Context, corpusID string, folderID *string, docs []models.Document) {
	data, err := json.Marshal(docs)
	if err != nil {
		c.logger.Warn("marshal document list failed", "corpus_id", corpusID, "error", err)
		return
	}
	if err := c.client.Set(ctx, docListKey(corpusID, folderID), data, cacheTTL).Err(); err != nil {
		c.logger.Warn("document list cache write failed", "corpus_id", corpusID, "error", err)
	}
}

// EvictDocumentLists drops every cached document list for the corpus
func (c *ListCache) EvictDocumentLists(ctx context.Context, corpusID string) {
	pattern := "doclist:" + corpusID + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("document list cache scan failed", "corpus_id", corpusID, "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("document list cache eviction failed", "corpus_id", corpusID, "error", err)
	}
}

// GetFolderList returns the cached flat folder collection, or (nil, false)
func (c *ListCache) GetFolderList(ctx context.Context, corpusID string) ([]models.Folder, bool) {
	data, err := c.client.Get(ctx, folderListKey(corpusID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("folder list cache read failed", "corpus_id", corpusID, "error", err)
		return nil, false
	}

	var folders []models.Folder
	if err := json.Unmarshal([]byte(data), &folders); err != nil {
		c.logger.Warn("corrupt folder list cache entry", "corpus_id", corpusID, "error", err)
		return nil, false
	}
	return folders, true
}

// PutFolderList stores the flat folder collection for a corpus
func (c *ListCache) PutFolderList(ctx context.Context, corpusID string, folders []models.Folder) {
	data, err := json.Marshal(folders)
	if err != nil {
		c.logger.Warn("marshal folder list failed", "corpus_id", corpusID, "error", err)
		return
	}
	if err := c.client.Set(ctx, folderListKey(corpusID), data, cacheTTL).Err(); err != nil {
		c.logger.Warn("folder list cache write failed", "corpus_id", corpusID, "error", err)
	}
}

// EvictFolderList drops the cached folder collection for the corpus
func (c *ListCache) EvictFolderList(ctx context.Context, corpusID string) {
	if err := c.client.Del(ctx, folderListKey(corpusID)).Err(); err != nil {
		c.logger.Warn("folder list cache eviction failed", "corpus_id", corpusID, "error", err)
	}
}
