package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (corpus_id, folder_id, name, content, word_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.CorpusID,
		doc.FolderID,
		doc.Name,
		doc.Content,
		doc.WordCount,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder for document '%s': %w", doc.Name, domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a live document with content
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, corpusID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, corpus_id, folder_id, name, content, word_count, created_at, updated_at
		FROM %s
		WHERE id = $1 AND corpus_id = $2 AND deleted_at IS NULL
	`, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, corpusID).Scan(
		&doc.ID,
		&doc.CorpusID,
		&doc.FolderID,
		&doc.Name,
		&doc.Content,
		&doc.WordCount,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// Update persists name, folder and content changes
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, name = $2, content = $3, word_count = $4, updated_at = $5
		WHERE id = $6 AND corpus_id = $7 AND deleted_at IS NULL
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.FolderID,
		doc.Name,
		doc.Content,
		doc.WordCount,
		doc.UpdatedAt,
		doc.ID,
		doc.CorpusID,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder for document '%s': %w", doc.Name, domain.ErrNotFound)
		}
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id, corpusID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND corpus_id = $2 AND deleted_at IS NULL
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, corpusID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists live documents directly in a folder (metadata only)
func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, folderID *string, corpusID string) ([]models.Document, error) {
	if folderID == nil {
		query := fmt.Sprintf(`
			SELECT id, corpus_id, folder_id, name, word_count, created_at, updated_at
			FROM %s
			WHERE corpus_id = $1 AND folder_id IS NULL AND deleted_at IS NULL
			ORDER BY name ASC
		`, r.tables.Documents)
		return r.queryDocuments(ctx, query, corpusID)
	}

	query := fmt.Sprintf(`
		SELECT id, corpus_id, folder_id, name, word_count, created_at, updated_at
		FROM %s
		WHERE corpus_id = $1 AND folder_id = $2 AND deleted_at IS NULL
		ORDER BY name ASC
	`, r.tables.Documents)
	return r.queryDocuments(ctx, query, corpusID, *folderID)
}

// ListByCorpus retrieves all live document metadata in a corpus
func (r *PostgresDocumentRepository) ListByCorpus(ctx context.Context, corpusID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, corpus_id, folder_id, name, word_count, created_at, updated_at
		FROM %s
		WHERE corpus_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`, r.tables.Documents)

	return r.queryDocuments(ctx, query, corpusID)
}

// ListTrashed retrieves soft-deleted documents in a corpus
func (r *PostgresDocumentRepository) ListTrashed(ctx context.Context, corpusID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, corpus_id, folder_id, name, word_count, created_at, updated_at
		FROM %s
		WHERE corpus_id = $1 AND deleted_at IS NOT NULL
		ORDER BY updated_at DESC
	`, r.tables.Documents)

	return r.queryDocuments(ctx, query, corpusID)
}

// Search runs a corpus-scoped full-text search ranked by relevance
func (r *PostgresDocumentRepository) Search(ctx context.Context, corpusID, query string, limit, offset int) ([]models.SearchResult, error) {
	sql := fmt.Sprintf(`
		SELECT id, corpus_id, folder_id, name, word_count, created_at, updated_at,
		       ts_rank(search_vector, websearch_to_tsquery('english', $2)) AS rank,
		       ts_headline('english', content, websearch_to_tsquery('english', $2),
		                   'MaxWords=30, MinWords=10') AS snippet
		FROM %s
		WHERE corpus_id = $1
		  AND deleted_at IS NULL
		  AND search_vector @@ websearch_to_tsquery('english', $2)
		ORDER BY rank DESC
		LIMIT $3 OFFSET $4
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, corpusID, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	results := []models.SearchResult{}
	for rows.Next() {
		var res models.SearchResult
		err := rows.Scan(
			&res.ID,
			&res.CorpusID,
			&res.FolderID,
			&res.Name,
			&res.WordCount,
			&res.CreatedAt,
			&res.UpdatedAt,
			&res.Rank,
			&res.Snippet,
		)
		if err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}

	return results, nil
}

// queryDocuments runs a metadata select and scans the rows
func (r *PostgresDocumentRepository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.CorpusID,
			&doc.FolderID,
			&doc.Name,
			&doc.WordCount,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}
