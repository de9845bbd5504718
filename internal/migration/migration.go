package migration

import (
	"context"

	"boothpulse/internal/errors"

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
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createConstituenciesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create constituencies table")
	}

	if err := r.createWardsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create wards table")
	}

	if err := r.createPollingBoothsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create polling_booths table")
	}

	if err := r.createImportBatchesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create import_batches table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createConstituenciesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS constituencies (
			id UUID PRIMARY KEY,
			org_id VARCHAR(100) NOT NULL,
			constituency_code VARCHAR(50) NOT NULL,
			constituency_name VARCHAR(255) NOT NULL,
			constituency_type VARCHAR(50),
			district VARCHAR(255),
			state VARCHAR(255),
			total_voters BIGINT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createWardsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS wards (
			id UUID PRIMARY KEY,
			org_id VARCHAR(100) NOT NULL,
			ward_code VARCHAR(50) NOT NULL,
			ward_name VARCHAR(255) NOT NULL,
			constituency_code VARCHAR(50) NOT NULL,
			constituency_name VARCHAR(255) NOT NULL,
			district VARCHAR(255),
			state VARCHAR(255),
			total_voters BIGINT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createPollingBoothsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS polling_booths (
			id UUID PRIMARY KEY,
			org_id VARCHAR(100) NOT NULL,
			booth_number VARCHAR(50) NOT NULL,
			booth_name VARCHAR(255) NOT NULL,
			ward_code VARCHAR(50) NOT NULL,
			ward_name VARCHAR(255),
			constituency_code VARCHAR(50),
			address TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			total_voters BIGINT,
			male_voters BIGINT,
			female_voters BIGINT,
			transgender_voters BIGINT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createImportBatchesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS import_batches (
			id UUID PRIMARY KEY,
			org_id VARCHAR(100) NOT NULL,
			kind VARCHAR(30) NOT NULL,
			filename VARCHAR(500) NOT NULL,
			record_count INTEGER NOT NULL,
			committed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_wards_org ON wards(org_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wards_constituency ON wards(org_id, constituency_code)`,
		`CREATE INDEX IF NOT EXISTS idx_booths_org ON polling_booths(org_id)`,
		`CREATE INDEX IF NOT EXISTS idx_booths_ward ON polling_booths(org_id, ward_code)`,
		`CREATE INDEX IF NOT EXISTS idx_constituencies_org ON constituencies(org_id)`,
		`CREATE INDEX IF NOT EXISTS idx_import_batches_org ON import_batches(org_id, committed_at)`,
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
