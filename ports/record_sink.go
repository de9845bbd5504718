package ports

import (
	"context"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
)

// RecordSink is the persistence collaborator for one entity type. A batch
// is submitted as a single call; implementations decide atomicity (the
// Postgres adapters run one transaction per batch, so any row failure
// rolls back the whole batch). Authorization is enforced by the backing
// store; the org ID is passed through, never interpreted here.
type RecordSink interface {
	// Kind names the entity type this sink accepts
	Kind() importer.ImportKind

	// BulkInsert persists the full record batch in one call
	BulkInsert(ctx context.Context, orgID core.OrgID, records []importer.Record) error
}
