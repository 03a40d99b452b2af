package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// folderColumns is the select list shared by folder queries. The direct
// document count comes from a correlated subquery over live documents.
func (r *PostgresFolderRepository) folderColumns() string {
	return fmt.Sprintf(`
		f.id, f.corpus_id, f.parent_id, f.name, f.description, f.color,
		f.icon, f.tags, f.published, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM %s d
		 WHERE d.folder_id = f.id AND d.deleted_at IS NULL) AS document_count
	`, r.tables.Documents)
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	var icon string
	err := row.Scan(
		&folder.ID,
		&folder.CorpusID,
		&folder.ParentID,
		&folder.Name,
		&folder.Description,
		&folder.Color,
		&icon,
		&folder.Tags,
		&folder.Published,
		&folder.CreatedAt,
		&folder.UpdatedAt,
		&folder.DocumentCount,
	)
	if err != nil {
		return nil, err
	}
	// Unknown icon identifiers degrade to the default glyph
	folder.Icon = models.ParseIcon(icon)
	return &folder, nil
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (corpus_id, parent_id, name, description, color, icon, tags, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	if folder.Tags == nil {
		folder.Tags = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.CorpusID,
		folder.ParentID,
		folder.Name,
		folder.Description,
		folder.Color,
		string(folder.Icon),
		folder.Tags,
		folder.Published,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a live folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, corpusID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		WHERE f.id = $1 AND f.corpus_id = $2 AND f.deleted_at IS NULL
	`, r.folderColumns(), r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id, corpusID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// Update persists folder changes
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, description = $3, color = $4,
		    icon = $5, tags = $6, published = $7, updated_at = $8
		WHERE id = $9 AND corpus_id = $10 AND deleted_at IS NULL
	`, r.tables.Folders)

	if folder.Tags == nil {
		folder.Tags = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Description,
		folder.Color,
		string(folder.Icon),
		folder.Tags,
		folder.Published,
		folder.UpdatedAt,
		folder.ID,
		folder.CorpusID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a folder
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, corpusID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND corpus_id = $2 AND deleted_at IS NULL
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, corpusID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByCorpus retrieves the flat collection of live folders in a corpus
func (r *PostgresFolderRepository) ListByCorpus(ctx context.Context, corpusID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		WHERE f.corpus_id = $1 AND f.deleted_at IS NULL
		ORDER BY f.created_at ASC
	`, r.folderColumns(), r.tables.Folders)

	return r.queryFolders(ctx, query, corpusID)
}

// ListChildren lists immediate live child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, folderID *string, corpusID string) ([]models.Folder, error) {
	if folderID == nil {
		query := fmt.Sprintf(`
			SELECT %s
			FROM %s f
			WHERE f.corpus_id = $1 AND f.parent_id IS NULL AND f.deleted_at IS NULL
			ORDER BY f.name ASC
		`, r.folderColumns(), r.tables.Folders)
		return r.queryFolders(ctx, query, corpusID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		WHERE f.corpus_id = $1 AND f.parent_id = $2 AND f.deleted_at IS NULL
		ORDER BY f.name ASC
	`, r.folderColumns(), r.tables.Folders)
	return r.queryFolders(ctx, query, corpusID, *folderID)
}

// ListTrashed retrieves soft-deleted folders in a corpus
func (r *PostgresFolderRepository) ListTrashed(ctx context.Context, corpusID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		WHERE f.corpus_id = $1 AND f.deleted_at IS NOT NULL
		ORDER BY f.updated_at DESC
	`, r.folderColumns(), r.tables.Folders)

	return r.queryFolders(ctx, query, corpusID)
}

// GetPath computes the display path for a folder using a recursive CTE
func (r *PostgresFolderRepository) GetPath(ctx context.Context, folderID *string, corpusID string) (string, error) {
	if folderID == nil {
		return "", nil
	}

	query := fmt.Sprintf(`
		WITH RECURSIVE folder_path AS (
			SELECT id, name, parent_id, name::text AS path
			FROM %s
			WHERE id = $1 AND corpus_id = $2 AND deleted_at IS NULL
			UNION ALL
			SELECT f.id, f.name, f.parent_id, f.name || '/' || fp.path
			FROM %s f
			JOIN folder_path fp ON f.id = fp.parent_id
			WHERE f.deleted_at IS NULL
		)
		SELECT path FROM folder_path WHERE parent_id IS NULL
	`, r.tables.Folders, r.tables.Folders)

	var path string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, *folderID, corpusID).Scan(&path)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", fmt.Errorf("folder %s: %w", *folderID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get folder path: %w", err)
	}

	return path, nil
}

// queryFolders runs a folder select and scans the rows
func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
