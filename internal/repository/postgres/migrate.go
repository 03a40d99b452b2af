package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies the schema for the given table names. Statements are
// idempotent so repeated startups are safe. Tags are stored as a text array;
// the tag set and counts stay application-managed.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				owner_id UUID NOT NULL,
				name VARCHAR(255) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ,
				UNIQUE (owner_id, name)
			)`, tables.Corpora),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				corpus_id UUID NOT NULL REFERENCES %s(id),
				parent_id UUID REFERENCES %s(id),
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				color VARCHAR(32) NOT NULL DEFAULT '',
				icon VARCHAR(32) NOT NULL DEFAULT 'folder',
				tags TEXT[] NOT NULL DEFAULT '{}',
				published BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`, tables.Folders, tables.Corpora, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_corpus_idx ON %s (corpus_id) WHERE deleted_at IS NULL`,
			tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				corpus_id UUID NOT NULL REFERENCES %s(id),
				folder_id UUID REFERENCES %s(id),
				name VARCHAR(255) NOT NULL,
				content TEXT NOT NULL DEFAULT '',
				word_count INTEGER NOT NULL DEFAULT 0,
				search_vector TSVECTOR GENERATED ALWAYS AS (
					setweight(to_tsvector('english', coalesce(name, '')), 'A') ||
					setweight(to_tsvector('english', coalesce(content, '')), 'B')
				) STORED,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`, tables.Documents, tables.Corpora, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_search_idx ON %s USING GIN (search_vector)`,
			tables.Documents, tables.Documents),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_folder_idx ON %s (corpus_id, folder_id) WHERE deleted_at IS NULL`,
			tables.Documents, tables.Documents),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}
