package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

// PostgresCorpusRepository implements the CorpusRepository interface
type PostgresCorpusRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCorpusRepository creates a new corpus repository
func NewCorpusRepository(config *RepositoryConfig) repositories.CorpusRepository {
	return &PostgresCorpusRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new corpus
func (r *PostgresCorpusRepository) Create(ctx context.Context, corpus *models.Corpus) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Corpora)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		corpus.OwnerID,
		corpus.Name,
		corpus.CreatedAt,
		corpus.UpdatedAt,
	).Scan(&corpus.ID, &corpus.CreatedAt, &corpus.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingCorpusID(ctx, corpus.OwnerID, corpus.Name)
			if queryErr != nil {
				return fmt.Errorf("corpus '%s' already exists: %w", corpus.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("corpus '%s' already exists", corpus.Name),
				ResourceType: "corpus",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create corpus: %w", err)
	}

	return nil
}

// GetByID retrieves a corpus by ID
func (r *PostgresCorpusRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Corpus, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, created_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
	`, r.tables.Corpora)

	var corpus models.Corpus
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, ownerID).Scan(
		&corpus.ID,
		&corpus.OwnerID,
		&corpus.Name,
		&corpus.CreatedAt,
		&corpus.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("corpus %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get corpus: %w", err)
	}

	return &corpus, nil
}

// List retrieves all corpora for a user, ordered by updated_at DESC
func (r *PostgresCorpusRepository) List(ctx context.Context, ownerID string) ([]models.Corpus, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`, r.tables.Corpora)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	defer rows.Close()

	var corpora []models.Corpus
	for rows.Next() {
		var corpus models.Corpus
		err := rows.Scan(
			&corpus.ID,
			&corpus.OwnerID,
			&corpus.Name,
			&corpus.CreatedAt,
			&corpus.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan corpus: %w", err)
		}
		corpora = append(corpora, corpus)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpora: %w", err)
	}

	// Return empty slice instead of nil if no corpora
	if corpora == nil {
		corpora = []models.Corpus{}
	}

	return corpora, nil
}

// Update updates a corpus name and updated_at timestamp
func (r *PostgresCorpusRepository) Update(ctx context.Context, corpus *models.Corpus) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4 AND deleted_at IS NULL
	`, r.tables.Corpora)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		corpus.Name,
		corpus.UpdatedAt,
		corpus.ID,
		corpus.OwnerID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingCorpusID(ctx, corpus.OwnerID, corpus.Name)
			if queryErr != nil {
				return fmt.Errorf("corpus name '%s' already exists: %w", corpus.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("corpus name '%s' already exists", corpus.Name),
				ResourceType: "corpus",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("update corpus: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("corpus %s: %w", corpus.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a corpus by setting deleted_at and returns the deleted record
func (r *PostgresCorpusRepository) Delete(ctx context.Context, id, ownerID string) (*models.Corpus, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
		RETURNING id, owner_id, name, created_at, updated_at, deleted_at
	`, r.tables.Corpora)

	var corpus models.Corpus
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, ownerID).Scan(
		&corpus.ID,
		&corpus.OwnerID,
		&corpus.Name,
		&corpus.CreatedAt,
		&corpus.UpdatedAt,
		&corpus.DeletedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("corpus %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete corpus: %w", err)
	}

	return &corpus, nil
}

// getExistingCorpusID queries for an existing corpus by owner and name
func (r *PostgresCorpusRepository) getExistingCorpusID(ctx context.Context, ownerID, name string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE owner_id = $1 AND name = $2 AND deleted_at IS NULL
	`, r.tables.Corpora)

	var id string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, ownerID, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("get existing corpus ID: %w", err)
	}

	return id, nil
}
