package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
	"boothpulse/internal/errors"
	"boothpulse/ports"

	"golang.org/x/sync/semaphore"
)

// ImportService orchestrates the upload pipeline: parse, auto-map,
// validate, submit. One Session instance carries the state between calls;
// the service itself is stateless and safe for concurrent sessions.
type ImportService struct {
	parser  ports.FileParser
	sinks   map[importer.ImportKind]ports.RecordSink
	batches ports.BatchRepository

	// Caps concurrent bulk inserts across all sessions
	submitSem *semaphore.Weighted
}

// SubmitOutcome reports one committed batch
type SubmitOutcome struct {
	BatchID     core.BatchID `json:"batch_id"`
	RecordCount int          `json:"record_count"`
	RuntimeMs   int64        `json:"runtime_ms"`
}

// NewImportService creates an import service over the given sinks
func NewImportService(parser ports.FileParser, sinks []ports.RecordSink, batches ports.BatchRepository, maxConcurrentSubmits int64) *ImportService {
	byKind := make(map[importer.ImportKind]ports.RecordSink, len(sinks))
	for _, sink := range sinks {
		byKind[sink.Kind()] = sink
	}
	if maxConcurrentSubmits <= 0 {
		maxConcurrentSubmits = 1
	}
	return &ImportService{
		parser:    parser,
		sinks:     byKind,
		batches:   batches,
		submitSem: semaphore.NewWeighted(maxConcurrentSubmits),
	}
}

// StartSession runs the front half of the pipeline: creates a session,
// parses the upload and auto-maps columns, leaving the session in
// PreviewReady. A parse failure aborts with no partial state.
func (s *ImportService) StartSession(orgID core.OrgID, kind importer.ImportKind, filename string, src io.Reader) (*importer.Session, error) {
	session, err := importer.NewSession(orgID, kind)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create import session")
	}

	if err := session.SelectFile(filename); err != nil {
		return nil, err
	}

	parsed, err := s.parser.Parse(filename, src)
	if err != nil {
		log.Printf("[ImportService] Parse failed for %q: %v", filename, err)
		return nil, err
	}

	if err := session.AttachParsed(parsed.Headers, parsed.Rows); err != nil {
		return nil, err
	}

	log.Printf("[ImportService] Session %s ready: %s, %d columns, %d rows",
		session.ID, filename, len(parsed.Headers), len(parsed.Rows))
	return session, nil
}

// Submit runs the back half of the pipeline. Validation is re-run and must
// be clean before any batch is built; a caller cannot reach the sink with
// unvalidated rows. The insert is one call, one transaction, one outcome;
// failure leaves the preview intact for retry.
func (s *ImportService) Submit(ctx context.Context, session *importer.Session) (*SubmitOutcome, error) {
	validationErrors, err := session.RunValidation()
	if err != nil {
		return nil, err
	}
	if len(validationErrors) > 0 {
		return nil, errors.ValidationError(
			fmt.Sprintf("%d validation errors must be resolved before submitting", len(validationErrors)))
	}

	if err := session.BeginSubmit(); err != nil {
		return nil, err
	}

	sink, ok := s.sinks[session.Kind]
	if !ok {
		err := errors.New(errors.CodeInternalError, fmt.Sprintf("no sink registered for kind %q", session.Kind))
		session.FailSubmit(err)
		return nil, err
	}

	if err := s.submitSem.Acquire(ctx, 1); err != nil {
		session.FailSubmit(err)
		return nil, errors.Wrapf(err, "submit queue wait cancelled for session %s", session.ID)
	}
	defer s.submitSem.Release(1)

	startTime := time.Now()
	records := importer.BuildRecords(session.Rows, session.Mapping, session.Fields)

	if err := sink.BulkInsert(ctx, session.OrgID, records); err != nil {
		log.Printf("[ImportService] Submit failed for session %s: %v", session.ID, err)
		session.FailSubmit(err)
		return nil, errors.SubmitFailed(err)
	}

	batchID := core.BatchID(core.NewID())
	audit := &ports.BatchAudit{
		ID:          batchID,
		OrgID:       session.OrgID,
		Kind:        session.Kind,
		Filename:    session.Filename,
		RecordCount: len(records),
		CommittedAt: time.Now(),
	}
	if err := s.batches.RecordBatch(ctx, audit); err != nil {
		// The batch itself is committed; a missing audit row is not fatal
		log.Printf("[ImportService] WARNING - failed to record batch audit for %s: %v", batchID, err)
	}

	if err := session.CompleteSubmit(); err != nil {
		return nil, err
	}

	log.Printf("[ImportService] Session %s committed %d records as batch %s",
		session.ID, len(records), batchID)

	return &SubmitOutcome{
		BatchID:     batchID,
		RecordCount: len(records),
		RuntimeMs:   time.Since(startTime).Milliseconds(),
	}, nil
}

// RecentBatches lists the latest committed batches for one org
func (s *ImportService) RecentBatches(ctx context.Context, orgID core.OrgID, limit int) ([]*ports.BatchAudit, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.batches.ListRecent(ctx, orgID, limit)
}
