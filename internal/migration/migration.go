package migration

import (
	"context"

	"groupstat/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.2.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every step is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createComputationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create computations table")
	}

	if err := r.addSourceColumn(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add computations.source column")
	}

	if err := r.widenSourceColumn(ctx, db); err != nil {
		return errors.Wrap(err, "failed to widen computations.source column")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

// Statements lists the SQL Run executes, in order
func (r *MigrationRunner) Statements() []string {
	return []string{createComputationsSQL, addSourceColumnSQL, widenSourceColumnSQL, createIndexesSQL}
}

const createComputationsSQL = `
	CREATE TABLE IF NOT EXISTS computations (
		id UUID PRIMARY KEY,
		dataset JSONB NOT NULL,
		total_frequency DOUBLE PRECISION NOT NULL,
		mean DOUBLE PRECISION NOT NULL,
		median DOUBLE PRECISION NOT NULL,
		mode DOUBLE PRECISION NOT NULL,
		variance DOUBLE PRECISION NOT NULL,
		std_dev DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

// 1.1.0 recorded where each computation came from
const addSourceColumnSQL = `
	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'computations' AND column_name = 'source'
		) THEN
			ALTER TABLE computations ADD COLUMN source TEXT NOT NULL DEFAULT '';
		END IF;
	END $$;
`

// 1.2.0 source holds unbounded file names
const widenSourceColumnSQL = `
	ALTER TABLE computations ALTER COLUMN source TYPE TEXT
`

const createIndexesSQL = `
	CREATE INDEX IF NOT EXISTS idx_computations_created_at ON computations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_computations_source ON computations(source);
`

func (r *MigrationRunner) createComputationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, createComputationsSQL)
	return err
}

func (r *MigrationRunner) addSourceColumn(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, addSourceColumnSQL)
	return err
}

func (r *MigrationRunner) widenSourceColumn(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, widenSourceColumnSQL)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, createIndexesSQL)
	return err
}
