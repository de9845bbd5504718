package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("org-1", KindWards)
	require.NoError(t, err)
	require.NoError(t, s.SelectFile("wards.csv"))

	headers := []string{"Ward Code", "Ward Name", "Constituency Code", "Constituency Name"}
	rows := []RawRow{
		{"Ward Code": "W001", "Ward Name": "Shivaji Nagar", "Constituency Code": "AC-101", "Constituency Name": "Pune Central"},
		{"Ward Code": "W002", "Ward Name": "Kothrud", "Constituency Code": "AC-101", "Constituency Name": "Pune Central"},
	}
	require.NoError(t, s.AttachParsed(headers, rows))
	return s
}

func TestSessionHappyPath(t *testing.T) {
	s := previewSession(t)
	assert.Equal(t, StatePreviewReady, s.State)
	assert.Equal(t, "Ward Code", s.Mapping["ward_code"])

	errs, err := s.RunValidation()
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, StateValidationPassed, s.State)

	require.NoError(t, s.BeginSubmit())
	assert.Equal(t, StateSubmitting, s.State)
	assert.False(t, s.SubmitStartedAt.IsZero())

	require.NoError(t, s.CompleteSubmit())
	assert.Equal(t, StateSubmitSucceeded, s.State)

	s.Reset()
	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.Rows)
	assert.Empty(t, s.Filename)
}

func TestSessionValidationFailureBlocksSubmit(t *testing.T) {
	s := previewSession(t)
	require.NoError(t, s.Remap("ward_name", ""))

	errs, err := s.RunValidation()
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
	assert.Equal(t, StateValidationFailed, s.State)

	err = s.BeginSubmit()
	var transitionErr *ErrInvalidTransition
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, StateValidationFailed, transitionErr.From)
}

func TestSessionRemapDiscardsStaleValidation(t *testing.T) {
	s := previewSession(t)

	_, err := s.RunValidation()
	require.NoError(t, err)
	assert.Equal(t, StateValidationPassed, s.State)

	// Any remap lands back in PreviewReady and clears prior results
	require.NoError(t, s.Remap("district", "Ward Name"))
	assert.Equal(t, StatePreviewReady, s.State)
	assert.Nil(t, s.Errors)
}

func TestSessionSubmitFailurePreservesPreview(t *testing.T) {
	s := previewSession(t)
	_, err := s.RunValidation()
	require.NoError(t, err)
	require.NoError(t, s.BeginSubmit())

	require.NoError(t, s.FailSubmit(errors.New("connection refused")))
	assert.Equal(t, StateSubmitFailed, s.State)
	assert.Equal(t, "connection refused", s.LastError)

	// Rows and mapping survive so the user can retry
	assert.Len(t, s.Rows, 2)
	assert.NotEmpty(t, s.Mapping)

	// Retry path: validate again and resubmit
	_, err = s.RunValidation()
	require.NoError(t, err)
	require.NoError(t, s.BeginSubmit())
	require.NoError(t, s.CompleteSubmit())
	assert.Empty(t, s.LastError)
}

func TestSessionIllegalTransitions(t *testing.T) {
	s, err := NewSession("org-1", KindBooths)
	require.NoError(t, err)

	// Nothing but SelectFile is legal from Idle
	assert.Error(t, s.AttachParsed([]string{"a"}, nil))
	_, verr := s.RunValidation()
	assert.Error(t, verr)
	assert.Error(t, s.BeginSubmit())
	assert.Error(t, s.CompleteSubmit())
	assert.Error(t, s.FailSubmit(nil))

	require.NoError(t, s.SelectFile("booths.xlsx"))
	assert.Error(t, s.SelectFile("again.xlsx"))
}

func TestSessionPreviewLimit(t *testing.T) {
	s := previewSession(t)

	assert.Len(t, s.Preview(1), 1)
	assert.Len(t, s.Preview(10), 2)
	assert.Len(t, s.Preview(0), 2)
}

func TestNewSessionRejectsUnknownKind(t *testing.T) {
	_, err := NewSession("org-1", ImportKind("precincts"))
	assert.Error(t, err)
}
