package errors

import (
	stderrors "errors"
	"testing"
)

// TestWrapPreservesCode tests that wrapping keeps the original error code
func TestWrapPreservesCode(t *testing.T) {
	base := InputFormat("unreadable file")
	wrapped := Wrap(base, "while parsing upload")

	if got := GetCode(wrapped); got != CodeInputFormat {
		t.Errorf("Expected code %s, got %s", CodeInputFormat, got)
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("Expected wrapped error to unwrap to the original")
	}
}

// TestWrapfFormatsContext tests formatted wrapping
func TestWrapfFormatsContext(t *testing.T) {
	base := stderrors.New("context canceled")
	wrapped := Wrapf(base, "submit queue wait cancelled for session %s", "abc-123")

	want := "submit queue wait cancelled for session abc-123: context canceled"
	if wrapped.Error() != want {
		t.Errorf("Expected %q, got %q", want, wrapped.Error())
	}
	if got := GetCode(wrapped); got != CodeInternalError {
		t.Errorf("Expected code %s for a plain error, got %s", CodeInternalError, got)
	}
}

// TestWrapNil tests that wrapping nil returns nil
func TestWrapNil(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("Expected Wrap(nil) to return nil")
	}
	if Wrapf(nil, "ignored %d", 1) != nil {
		t.Error("Expected Wrapf(nil) to return nil")
	}
}

// TestGetCodeUnknown tests the fallback code for non-app errors
func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(stderrors.New("boom")); got != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN, got %s", got)
	}
}
