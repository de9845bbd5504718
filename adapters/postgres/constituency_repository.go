package postgres

import (
	"context"
	"fmt"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
	"boothpulse/ports"

	"github.com/jmoiron/sqlx"
)

// constituencyRepository persists constituency records
type constituencyRepository struct {
	db *sqlx.DB
}

// NewConstituencyRepository creates a constituency record sink
func NewConstituencyRepository(db *sqlx.DB) ports.RecordSink {
	return &constituencyRepository{db: db}
}

func (r *constituencyRepository) Kind() importer.ImportKind {
	return importer.KindConstituencies
}

// BulkInsert writes the full batch in one transaction; any row failure
// rolls back the whole batch.
func (r *constituencyRepository) BulkInsert(ctx context.Context, orgID core.OrgID, records []importer.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO constituencies (
		id, org_id, constituency_code, constituency_name, constituency_type,
		district, state, total_voters, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare constituency insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		_, err := stmt.ExecContext(ctx,
			core.NewID(), orgID,
			record["constituency_code"], record["constituency_name"],
			nullString(record["constituency_type"]),
			nullString(record["district"]), nullString(record["state"]),
			nullInt(record["total_voters"]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert constituency record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit constituency batch: %w", err)
	}
	return nil
}
