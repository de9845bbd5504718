package spreadsheet

import (
	"io"

	"boothpulse/domain/importer"
	"boothpulse/ports"
)

// Parser adapts DataReader to the FileParser port
type Parser struct{}

// NewParser creates a spreadsheet file parser
func NewParser() ports.FileParser {
	return &Parser{}
}

// Parse decodes one upload, choosing the decoder from the file extension
func (p *Parser) Parse(filename string, src io.Reader) (*importer.ParsedFile, error) {
	reader, err := NewDataReader(filename)
	if err != nil {
		return nil, err
	}
	return reader.Read(src)
}
