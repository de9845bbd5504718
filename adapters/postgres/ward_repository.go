package postgres

import (
	"context"
	"fmt"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
	"boothpulse/ports"

	"github.com/jmoiron/sqlx"
)

// wardRepository persists ward records
type wardRepository struct {
	db *sqlx.DB
}

// NewWardRepository creates a ward record sink
func NewWardRepository(db *sqlx.DB) ports.RecordSink {
	return &wardRepository{db: db}
}

func (r *wardRepository) Kind() importer.ImportKind {
	return importer.KindWards
}

// BulkInsert writes the full batch in one transaction; any row failure
// rolls back the whole batch.
func (r *wardRepository) BulkInsert(ctx context.Context, orgID core.OrgID, records []importer.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO wards (
		id, org_id, ward_code, ward_name, constituency_code, constituency_name,
		district, state, total_voters, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare ward insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		_, err := stmt.ExecContext(ctx,
			core.NewID(), orgID,
			record["ward_code"], record["ward_name"],
			record["constituency_code"], record["constituency_name"],
			nullString(record["district"]), nullString(record["state"]),
			nullInt(record["total_voters"]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert ward record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ward batch: %w", err)
	}
	return nil
}
