package importer

import (
	"fmt"
	"time"

	"boothpulse/domain/core"
)

// State is one position in the upload pipeline's lifecycle
type State string

const (
	StateIdle             State = "idle"
	StateFileSelected     State = "file_selected"
	StatePreviewReady     State = "preview_ready"
	StateValidating       State = "validating"
	StateValidationFailed State = "validation_failed"
	StateValidationPassed State = "validation_passed"
	StateSubmitting       State = "submitting"
	StateSubmitSucceeded  State = "submit_succeeded"
	StateSubmitFailed     State = "submit_failed"
)

// ErrInvalidTransition is returned when a pipeline operation is invoked
// from a state that does not permit it
type ErrInvalidTransition struct {
	From State
	Op   string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s from state %q", e.Op, e.From)
}

// Session is the explicit state object for one upload pipeline instance.
// All entities it holds are owned exclusively by this session for the
// duration of one upload flow; nothing persists across sessions. Callers
// are responsible for synchronizing access (one UI session owns it).
type Session struct {
	ID        core.SessionID    `json:"id"`
	OrgID     core.OrgID        `json:"org_id"`
	Kind      ImportKind        `json:"kind"`
	Filename  string            `json:"filename"`
	State     State             `json:"state"`
	Headers   []string          `json:"headers"`
	Rows      []RawRow          `json:"-"`
	Fields    []TargetField     `json:"fields"`
	Mapping   ColumnMapping     `json:"mapping"`
	Errors    []ValidationError `json:"-"`
	LastError string            `json:"last_error,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// SubmitStartedAt feeds the synthetic, time-based progress display;
	// it is not derived from actual upload chunks
	SubmitStartedAt time.Time `json:"-"`
}

// NewSession creates a pipeline session in Idle for the given org and kind
func NewSession(orgID core.OrgID, kind ImportKind) (*Session, error) {
	fields, err := FieldsFor(kind)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        core.SessionID(core.NewID()),
		OrgID:     orgID,
		Kind:      kind,
		State:     StateIdle,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SelectFile records the chosen filename. Idle → FileSelected.
func (s *Session) SelectFile(filename string) error {
	if s.State != StateIdle {
		return &ErrInvalidTransition{From: s.State, Op: "select a file"}
	}
	s.Filename = filename
	s.setState(StateFileSelected)
	return nil
}

// AttachParsed installs the parse result and auto-maps the columns.
// FileSelected → PreviewReady.
func (s *Session) AttachParsed(headers []string, rows []RawRow) error {
	if s.State != StateFileSelected {
		return &ErrInvalidTransition{From: s.State, Op: "attach parsed rows"}
	}
	s.Headers = headers
	s.Rows = rows
	s.Mapping = AutoMap(headers, s.Fields)
	s.setState(StatePreviewReady)
	return nil
}

// Remap repoints one mapping entry. Legal whenever a preview is on screen,
// including after a failed validation or submit; always lands back in
// PreviewReady so stale outcomes are discarded.
func (s *Session) Remap(targetKey, header string) error {
	switch s.State {
	case StatePreviewReady, StateValidationFailed, StateValidationPassed, StateSubmitFailed:
	default:
		return &ErrInvalidTransition{From: s.State, Op: "remap a column"}
	}
	if err := s.Mapping.Remap(targetKey, header, s.Headers, s.Fields); err != nil {
		return err
	}
	s.Errors = nil
	s.setState(StatePreviewReady)
	return nil
}

// RunValidation recomputes the full error list. PreviewReady (or a stale
// failure state) → ValidationFailed | ValidationPassed.
func (s *Session) RunValidation() ([]ValidationError, error) {
	switch s.State {
	case StatePreviewReady, StateValidationFailed, StateValidationPassed, StateSubmitFailed:
	default:
		return nil, &ErrInvalidTransition{From: s.State, Op: "validate"}
	}
	s.setState(StateValidating)
	s.Errors = Validate(s.Rows, s.Mapping, s.Fields)
	if len(s.Errors) > 0 {
		s.setState(StateValidationFailed)
	} else {
		s.setState(StateValidationPassed)
	}
	return s.Errors, nil
}

// BeginSubmit gates batch construction on a clean validation run.
// ValidationPassed → Submitting.
func (s *Session) BeginSubmit() error {
	if s.State != StateValidationPassed {
		return &ErrInvalidTransition{From: s.State, Op: "submit"}
	}
	s.SubmitStartedAt = time.Now()
	s.setState(StateSubmitting)
	return nil
}

// CompleteSubmit marks the batch committed. Submitting → SubmitSucceeded.
func (s *Session) CompleteSubmit() error {
	if s.State != StateSubmitting {
		return &ErrInvalidTransition{From: s.State, Op: "complete submit"}
	}
	s.LastError = ""
	s.setState(StateSubmitSucceeded)
	return nil
}

// FailSubmit records the failure and keeps the preview intact so the user
// can retry. Submitting → SubmitFailed.
func (s *Session) FailSubmit(cause error) error {
	if s.State != StateSubmitting {
		return &ErrInvalidTransition{From: s.State, Op: "fail submit"}
	}
	if cause != nil {
		s.LastError = cause.Error()
	}
	s.setState(StateSubmitFailed)
	return nil
}

// Reset clears all parsed state back to Idle. Legal from SubmitSucceeded
// (the automatic reset after the confirmation delay) and as an explicit
// cancel from any preview state.
func (s *Session) Reset() {
	s.Filename = ""
	s.Headers = nil
	s.Rows = nil
	s.Mapping = nil
	s.Errors = nil
	s.LastError = ""
	s.setState(StateIdle)
}

// Preview returns up to limit rows for display
func (s *Session) Preview(limit int) []RawRow {
	if limit <= 0 || limit > len(s.Rows) {
		limit = len(s.Rows)
	}
	return s.Rows[:limit]
}

func (s *Session) setState(state State) {
	s.State = state
	s.UpdatedAt = time.Now()
}
