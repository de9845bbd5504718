package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SessionID ID
	BatchID   ID
	OrgID     ID
)

func (id SessionID) String() string { return ID(id).String() }
func (id BatchID) String() string   { return ID(id).String() }
func (id OrgID) String() string     { return ID(id).String() }

// ParseSessionID parses a string into a SessionID, requiring a valid UUID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid session ID: %w", err)
	}
	return SessionID(s), nil
}

// ParseOrgID parses a string into an OrgID
func ParseOrgID(s string) (OrgID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("org ID cannot be empty")
	}
	return OrgID(s), nil
}
