package ports

import (
	"context"
	"time"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
)

// BatchAudit is one committed import batch as shown on the uploads history
type BatchAudit struct {
	ID          core.BatchID        `db:"id" json:"id"`
	OrgID       core.OrgID          `db:"org_id" json:"org_id"`
	Kind        importer.ImportKind `db:"kind" json:"kind"`
	Filename    string              `db:"filename" json:"filename"`
	RecordCount int                 `db:"record_count" json:"record_count"`
	CommittedAt time.Time           `db:"committed_at" json:"committed_at"`
}

// BatchRepository records committed import batches for the audit trail
type BatchRepository interface {
	RecordBatch(ctx context.Context, audit *BatchAudit) error
	ListRecent(ctx context.Context, orgID core.OrgID, limit int) ([]*BatchAudit, error)
}
