package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gostatcheck/internal/errors"
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
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Statements returns the schema statements in execution order. Every
// statement is idempotent.
func (r *MigrationRunner) Statements() []string {
	return []string{
		createBatchesTable,
		createResultsTable,
		createResultsIndexes,
	}
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range r.Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "migration step %d failed", i+1)
		}
	}
	return nil
}

const createBatchesTable = `
	CREATE TABLE IF NOT EXISTS statcheck_batches (
		id UUID PRIMARY KEY,
		row_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`

// range_lower and range_upper are NULL for uncomputable ranges.
const createResultsTable = `
	CREATE TABLE IF NOT EXISTS statcheck_results (
		batch_id UUID NOT NULL REFERENCES statcheck_batches(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		consistent VARCHAR(32) NOT NULL,
		apa TEXT NOT NULL,
		reported_p TEXT NOT NULL,
		range_lower DOUBLE PRECISION,
		range_upper DOUBLE PRECISION,
		notes TEXT[] NOT NULL DEFAULT '{}',
		reported_significance VARCHAR(32) NOT NULL,
		recalculated_significance VARCHAR(32) NOT NULL,
		gross_inconsistency BOOLEAN NOT NULL DEFAULT false,
		PRIMARY KEY (batch_id, position)
	)`

const createResultsIndexes = `
	CREATE INDEX IF NOT EXISTS idx_statcheck_results_consistent ON statcheck_results(consistent)`
