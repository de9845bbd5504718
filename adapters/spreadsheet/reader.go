package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"path/filepath"
	"strings"

	"boothpulse/domain/importer"
	"boothpulse/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader decodes uploaded delimited-text and workbook files into a
// header row plus ordered raw rows. The decoding rule is fixed: first sheet
// only, row 1 is the header, rows 2..N are data.
type DataReader struct {
	filename string
	fileType string // "xlsx" or "csv"
}

// supported upload extensions; .xls is accepted here and rejected at decode
// time if the payload is not something excelize can open
var validExtensions = map[string]string{
	".csv":  "csv",
	".xlsx": "xlsx",
	".xls":  "xlsx",
}

// NewDataReader creates a reader for an uploaded file, rejecting
// unsupported extensions before any bytes are read
func NewDataReader(filename string) (*DataReader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fileType, ok := validExtensions[ext]
	if !ok {
		return nil, errors.InputFormat("only .csv, .xlsx and .xls files are supported")
	}
	return &DataReader{filename: filename, fileType: fileType}, nil
}

// Read decodes the upload into headers and raw rows. An empty file, a file
// with only a header row, or an unparseable payload all return an
// input-format error and no partial state.
func (r *DataReader) Read(src io.Reader) (*importer.ParsedFile, error) {
	switch r.fileType {
	case "csv":
		return r.readCSV(src)
	default:
		return r.readWorkbook(src)
	}
}

func (r *DataReader) readWorkbook(src io.Reader) (*importer.ParsedFile, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(errors.InputFormat("file is not a readable workbook"), err.Error())
	}
	defer f.Close()

	// First sheet only
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.InputFormat("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.InputFormat("failed to read first sheet"), err.Error())
	}
	log.Printf("[DataReader] Workbook sheet %q read (%d rows)", sheet, len(rows))

	return r.processRows(rows)
}

func (r *DataReader) readCSV(src io.Reader) (*importer.ParsedFile, error) {
	reader := csv.NewReader(src)
	// Rows may be sparse; per-row column counts are reconciled in processRows
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InputFormat("file is not readable CSV"), err.Error())
	}
	log.Printf("[DataReader] CSV file read (%d rows)", len(rows))

	return r.processRows(rows)
}

// processRows converts the raw 2D grid into headers plus RawRow maps.
// Header cells are coerced to trimmed strings; cells beyond the header
// width are dropped and missing trailing cells stay absent (treated as
// empty downstream).
func (r *DataReader) processRows(rows [][]string) (*importer.ParsedFile, error) {
	if len(rows) == 0 {
		return nil, errors.InputFormat("file is empty")
	}
	if len(rows) < 2 {
		return nil, errors.InputFormat("file must have a header row and at least one data row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]importer.RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := make(importer.RawRow, len(headers))
		for j, cell := range rows[i] {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, row)
	}

	log.Printf("[DataReader] %s processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &importer.ParsedFile{Headers: headers, Rows: dataRows}, nil
}

// ReadBytes is a convenience wrapper over Read for in-memory payloads
func (r *DataReader) ReadBytes(data []byte) (*importer.ParsedFile, error) {
	return r.Read(bytes.NewReader(data))
}
