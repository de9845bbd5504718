// Package testkit builds spreadsheet fixtures for import tests.
package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is an in-memory spreadsheet: a header row plus data rows.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// WardSheet returns a small ward fixture whose headers deliberately use
// mixed casing and separators so auto-mapping is exercised.
func WardSheet() Sheet {
	return Sheet{
		Headers: []string{"Ward Code", "WARD_NAME", "constituency code", "Constituency Name", "District", "Total Voters"},
		Rows: [][]string{
			{"W001", "Shivaji Nagar", "AC-101", "Pune Central", "Pune", "45210"},
			{"W002", "Kothrud", "AC-101", "Pune Central", "Pune", "38975"},
			{"W003", "Hadapsar", "AC-102", "Pune East", "Pune", "51430"},
		},
	}
}

// BoothSheet returns a polling booth fixture with coordinates and
// gender-split voter counts.
func BoothSheet() Sheet {
	return Sheet{
		Headers: []string{"Booth Number", "Booth Name", "Ward Code", "Address", "Latitude", "Longitude", "Total Voters", "Male Voters", "Female Voters"},
		Rows: [][]string{
			{"B-001", "Govt Primary School Room 1", "W001", "12 MG Road", "18.5204", "73.8567", "1150", "590", "560"},
			{"B-002", "Govt Primary School Room 2", "W001", "12 MG Road", "18.5204", "73.8567", "1098", "540", "558"},
			{"B-003", "Community Hall", "W002", "5 Paud Road", "18.5074", "73.8077", "1342", "700", "642"},
		},
	}
}

// ConstituencySheet returns a constituency fixture.
func ConstituencySheet() Sheet {
	return Sheet{
		Headers: []string{"Constituency Code", "Constituency Name", "Constituency Type", "District", "State"},
		Rows: [][]string{
			{"AC-101", "Pune Central", "assembly", "Pune", "Maharashtra"},
			{"AC-102", "Pune East", "assembly", "Pune", "Maharashtra"},
		},
	}
}

// CSVBytes renders the sheet as a CSV file.
func CSVBytes(sheet Sheet) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(sheet.Headers)
	for _, row := range sheet.Rows {
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

// XLSXBytes renders the sheet as a single-sheet xlsx workbook.
func XLSXBytes(sheet Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if err := f.SetSheetRow(sheetName, "A1", &sheet.Headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range sheet.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
