package postgres

import (
	"context"
	"fmt"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
	"boothpulse/ports"

	"github.com/jmoiron/sqlx"
)

// BoothRepository persists polling booth records and serves the voter
// summary reads
type BoothRepository struct {
	db *sqlx.DB
}

// NewBoothRepository creates a polling booth record sink
func NewBoothRepository(db *sqlx.DB) *BoothRepository {
	return &BoothRepository{db: db}
}

func (r *BoothRepository) Kind() importer.ImportKind {
	return importer.KindBooths
}

// BulkInsert writes the full batch in one transaction; any row failure
// rolls back the whole batch.
func (r *BoothRepository) BulkInsert(ctx context.Context, orgID core.OrgID, records []importer.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO polling_booths (
		id, org_id, booth_number, booth_name, ward_code, ward_name,
		constituency_code, address, latitude, longitude,
		total_voters, male_voters, female_voters, transgender_voters, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare booth insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		_, err := stmt.ExecContext(ctx,
			core.NewID(), orgID,
			record["booth_number"], record["booth_name"], record["ward_code"],
			nullString(record["ward_name"]), nullString(record["constituency_code"]),
			nullString(record["address"]),
			nullFloat(record["latitude"]), nullFloat(record["longitude"]),
			nullInt(record["total_voters"]), nullInt(record["male_voters"]),
			nullInt(record["female_voters"]), nullInt(record["transgender_voters"]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert booth record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booth batch: %w", err)
	}
	return nil
}

// BoothVoterCounts returns per-booth voter totals for aggregation,
// scoped to one org
func (r *BoothRepository) BoothVoterCounts(ctx context.Context, orgID core.OrgID) ([]ports.BoothVoterRow, error) {
	query := `SELECT
		COALESCE(constituency_code, '') AS constituency_code,
		booth_number,
		COALESCE(total_voters, 0)::float8 AS total_voters
	FROM polling_booths
	WHERE org_id = $1
	ORDER BY constituency_code, booth_number`

	var rows []ports.BoothVoterRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID); err != nil {
		return nil, fmt.Errorf("failed to query booth voter counts: %w", err)
	}
	return rows, nil
}
