package ui

import (
	stderrors "errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
	"boothpulse/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleCreateImport accepts the multipart upload, parses it and returns
// the session in PreviewReady with the auto-generated mapping
func (s *Server) handleCreateImport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("[handleCreateImport] FAILED - no file uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	defer file.Close()

	maxBytes := s.importCfg.MaxUploadMB << 20
	if header.Size > maxBytes {
		log.Printf("[handleCreateImport] FAILED - file too large: %d bytes", header.Size)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file size (%.1f MB) exceeds the %d MB limit",
				float64(header.Size)/(1024*1024), s.importCfg.MaxUploadMB),
		})
		return
	}

	kind, err := importer.ParseImportKind(c.PostForm("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := s.importService.StartSession(requestOrg(c), kind, header.Filename, file)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// Snapshot before Put: once stored, the session is reachable by
	// other requests and may only be touched under its lock
	snapshot := s.sessionSnapshot(session)
	s.store.Put(session)
	c.JSON(http.StatusCreated, snapshot)
}

// handleGetImport returns the current session snapshot
func (s *Server) handleGetImport(c *gin.Context) {
	session, release, ok := s.loadSession(c)
	if !ok {
		return
	}
	defer release()
	c.JSON(http.StatusOK, s.sessionSnapshot(session))
}

// handleRemap repoints one mapping entry; the only legal mutation of a
// mapping after auto-matching
func (s *Server) handleRemap(c *gin.Context) {
	session, release, ok := s.loadSession(c)
	if !ok {
		return
	}
	defer release()

	var req struct {
		TargetKey    string `json:"target_key" binding:"required"`
		SourceHeader string `json:"source_header"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if err := session.Remap(req.TargetKey, req.SourceHeader); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.sessionSnapshot(session))
}

// handleValidate recomputes the full error list for the current mapping
func (s *Server) handleValidate(c *gin.Context) {
	session, release, ok := s.loadSession(c)
	if !ok {
		return
	}
	defer release()

	validationErrors, err := session.RunValidation()
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  session.State,
		"report": s.validationReport(validationErrors),
	})
}

// handleSubmit transforms the validated rows and commits them as one batch
func (s *Server) handleSubmit(c *gin.Context) {
	session, release, ok := s.loadSession(c)
	if !ok {
		return
	}
	defer release()

	outcome, err := s.importService.Submit(c.Request.Context(), session)
	if err != nil {
		if errors.GetCode(err) == errors.CodeValidationError {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  err.Error(),
				"state":  session.State,
				"report": s.validationReport(session.Errors),
			})
			return
		}
		// Preview state is preserved; the client may remap and retry
		s.respondError(c, err)
		return
	}

	// Session auto-resets to Idle after the confirmation delay
	s.store.ScheduleReset(session.ID, s.importCfg.SubmitResetDelay)

	c.JSON(http.StatusOK, gin.H{
		"state":        session.State,
		"batch_id":     outcome.BatchID,
		"record_count": outcome.RecordCount,
		"runtime_ms":   outcome.RuntimeMs,
		"message":      fmt.Sprintf("%d records imported successfully", outcome.RecordCount),
	})
}

// handleCancelImport discards a session. An in-flight submit cannot be
// aborted, only awaited.
func (s *Server) handleCancelImport(c *gin.Context) {
	session, release, ok := s.loadSession(c)
	if !ok {
		return
	}
	defer release()

	if session.State == importer.StateSubmitting {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot cancel while a submit is in flight"})
		return
	}

	session.Reset()
	s.store.Remove(session.ID)
	c.JSON(http.StatusOK, gin.H{"state": importer.StateIdle})
}

// handleRecentBatches lists the org's committed import batches
func (s *Server) handleRecentBatches(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	batches, err := s.importService.RecentBatches(c.Request.Context(), requestOrg(c), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

// loadSession resolves the :id path parameter, enforcing org ownership.
// On success the session's lock is held; the caller must defer release.
func (s *Server) loadSession(c *gin.Context) (*importer.Session, func(), bool) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	session, release, err := s.store.Acquire(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "import session not found"})
		return nil, nil, false
	}

	if session.OrgID != requestOrg(c) {
		// Sessions are invisible across orgs
		release()
		c.JSON(http.StatusNotFound, gin.H{"error": "import session not found"})
		return nil, nil, false
	}
	return session, release, true
}

// sessionSnapshot renders the state a preview screen needs: mapping form
// inputs, the first rows, duplicate-mapping warnings and synthetic progress
func (s *Server) sessionSnapshot(session *importer.Session) gin.H {
	type mappingEntry struct {
		Key      string `json:"key"`
		Label    string `json:"label"`
		Required bool   `json:"required"`
		Source   string `json:"source"`
	}

	entries := make([]mappingEntry, 0, len(session.Fields))
	for _, field := range session.Fields {
		entries = append(entries, mappingEntry{
			Key:      field.Key,
			Label:    field.Label,
			Required: field.Required,
			Source:   session.Mapping[field.Key],
		})
	}

	snapshot := gin.H{
		"id":         session.ID,
		"kind":       session.Kind,
		"filename":   session.Filename,
		"state":      session.State,
		"headers":    session.Headers,
		"mapping":    entries,
		"row_count":  len(session.Rows),
		"preview":    session.Preview(s.importCfg.PreviewRows),
		"progress":   s.syntheticProgress(session),
		"created_at": session.CreatedAt,
		"updated_at": session.UpdatedAt,
	}

	if dupes := session.Mapping.DuplicateSources(); len(dupes) > 0 {
		snapshot["duplicate_sources"] = dupes
	}
	if session.LastError != "" {
		snapshot["last_error"] = session.LastError
	}
	return snapshot
}

// syntheticProgress is time-based, not derived from actual upload chunks
func (s *Server) syntheticProgress(session *importer.Session) int {
	switch session.State {
	case importer.StateSubmitting:
		elapsed := time.Since(session.SubmitStartedAt)
		pct := int(elapsed / (100 * time.Millisecond))
		if pct > 95 {
			pct = 95
		}
		return pct
	case importer.StateSubmitSucceeded:
		return 100
	default:
		return 0
	}
}

// validationReport caps the displayed list and summarizes the overflow
func (s *Server) validationReport(validationErrors []importer.ValidationError) gin.H {
	capN := s.importCfg.ErrorDisplayCap
	total := len(validationErrors)

	displayed := validationErrors
	if capN > 0 && total > capN {
		displayed = validationErrors[:capN]
	}
	if displayed == nil {
		displayed = []importer.ValidationError{}
	}

	report := gin.H{
		"errors": displayed,
		"total":  total,
	}
	if more := total - len(displayed); more > 0 {
		report["summary"] = fmt.Sprintf("+%d more", more)
	}
	return report
}

// respondError maps the error taxonomy onto HTTP statuses
func (s *Server) respondError(c *gin.Context, err error) {
	var transitionErr *importer.ErrInvalidTransition
	if stderrors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInputFormat, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeValidationError:
		status = http.StatusUnprocessableEntity
	case errors.CodeSubmitFailed:
		status = http.StatusBadGateway
	}

	s.logger.Error("request failed: %v", err)
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
