package importer

import (
	"fmt"

	"boothpulse/domain/core"
)

// ImportKind identifies which entity schema an upload targets
type ImportKind string

const (
	KindWards          ImportKind = "wards"
	KindBooths         ImportKind = "booths"
	KindConstituencies ImportKind = "constituencies"
)

// ParseImportKind validates a kind string from the transport layer
func ParseImportKind(s string) (ImportKind, error) {
	switch ImportKind(s) {
	case KindWards, KindBooths, KindConstituencies:
		return ImportKind(s), nil
	}
	return "", fmt.Errorf("unknown import kind: %q", s)
}

// TargetField describes one destination column in the entity schema.
// The sets are fixed at compile time per import kind (see fields.go) and
// declaration order is the order validation errors are emitted in.
type TargetField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// RawRow is one parsed, unvalidated data row keyed by source header.
// Missing trailing cells are simply absent keys.
type RawRow map[string]string

// ColumnMapping relates target field keys to source headers.
// An empty string means the target field is unmapped.
type ColumnMapping map[string]string

// ValidationError is one rule violation for a single cell.
// Row is the spreadsheet line number a user would see: data index + 2
// (1-based plus the header row).
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ParsedFile is the decoded form of one upload: the header row plus every
// data row in file order. The original file content is discarded after
// parsing.
type ParsedFile struct {
	Headers []string `json:"headers"`
	Rows    []RawRow `json:"rows"`
}

// Record is a target-shaped row ready for persistence. Unmapped target
// fields are absent from the record rather than present-and-empty.
type Record map[string]string

// ImportBatch is the final set of records submitted as one unit
type ImportBatch struct {
	ID       core.BatchID `json:"id"`
	OrgID    core.OrgID   `json:"org_id"`
	Kind     ImportKind   `json:"kind"`
	Filename string       `json:"filename"`
	Records  []Record     `json:"records"`
}
