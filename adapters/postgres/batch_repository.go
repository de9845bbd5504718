package postgres

import (
	"context"
	"fmt"

	"boothpulse/domain/core"
	"boothpulse/ports"

	"github.com/jmoiron/sqlx"
)

// batchRepository records committed import batches
type batchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository creates an import batch audit repository
func NewBatchRepository(db *sqlx.DB) ports.BatchRepository {
	return &batchRepository{db: db}
}

// RecordBatch inserts one audit row for a committed batch
func (r *batchRepository) RecordBatch(ctx context.Context, audit *ports.BatchAudit) error {
	query := `INSERT INTO import_batches (
		id, org_id, kind, filename, record_count, committed_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		audit.ID, audit.OrgID, audit.Kind, audit.Filename,
		audit.RecordCount, audit.CommittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record import batch: %w", err)
	}
	return nil
}

// ListRecent retrieves the latest committed batches for one org
func (r *batchRepository) ListRecent(ctx context.Context, orgID core.OrgID, limit int) ([]*ports.BatchAudit, error) {
	query := `SELECT id, org_id, kind, filename, record_count, committed_at
	FROM import_batches
	WHERE org_id = $1
	ORDER BY committed_at DESC
	LIMIT $2`

	var batches []*ports.BatchAudit
	if err := r.db.SelectContext(ctx, &batches, query, orgID, limit); err != nil {
		return nil, fmt.Errorf("failed to query import batches: %w", err)
	}
	return batches, nil
}
