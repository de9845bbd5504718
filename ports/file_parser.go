package ports

import (
	"io"

	"boothpulse/domain/importer"
)

// FileParser decodes an uploaded spreadsheet into headers and raw rows.
// Implementations reject unsupported extensions and unparseable payloads
// with an input-format error; they never return partial state.
type FileParser interface {
	Parse(filename string, src io.Reader) (*importer.ParsedFile, error)
}
