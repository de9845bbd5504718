package spreadsheet

import (
	"bytes"
	"testing"

	"boothpulse/internal/errors"
	"boothpulse/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataReaderExtensions(t *testing.T) {
	for _, name := range []string{"wards.csv", "booths.XLSX", "old.xls"} {
		_, err := NewDataReader(name)
		assert.NoError(t, err, name)
	}

	for _, name := range []string{"wards.pdf", "data.json", "noextension"} {
		_, err := NewDataReader(name)
		require.Error(t, err, name)
		assert.Equal(t, errors.CodeInputFormat, errors.GetCode(err))
	}
}

func TestReadCSV(t *testing.T) {
	reader, err := NewDataReader("wards.csv")
	require.NoError(t, err)

	parsed, err := reader.ReadBytes(testkit.CSVBytes(testkit.WardSheet()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ward Code", "WARD_NAME", "constituency code", "Constituency Name", "District", "Total Voters"}, parsed.Headers)
	require.Len(t, parsed.Rows, 3)
	assert.Equal(t, "W001", parsed.Rows[0]["Ward Code"])
	assert.Equal(t, "45210", parsed.Rows[0]["Total Voters"])
}

func TestReadCSVSparseRows(t *testing.T) {
	payload := []byte("Ward Code,Ward Name,District\nW001,Shivaji Nagar\nW002,Kothrud,Pune,EXTRA\n")

	reader, err := NewDataReader("wards.csv")
	require.NoError(t, err)
	parsed, err := reader.ReadBytes(payload)
	require.NoError(t, err)

	require.Len(t, parsed.Rows, 2)

	// Missing trailing cell stays absent
	_, present := parsed.Rows[0]["District"]
	assert.False(t, present)

	// Cells beyond the header width are dropped
	assert.Equal(t, "Pune", parsed.Rows[1]["District"])
	assert.Len(t, parsed.Rows[1], 3)
}

func TestReadCSVTrimsCells(t *testing.T) {
	payload := []byte("  Ward Code , Ward Name \n W001 , Shivaji Nagar \n")

	reader, err := NewDataReader("wards.csv")
	require.NoError(t, err)
	parsed, err := reader.ReadBytes(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ward Code", "Ward Name"}, parsed.Headers)
	assert.Equal(t, "W001", parsed.Rows[0]["Ward Code"])
}

func TestReadRejectsEmptyAndHeaderOnly(t *testing.T) {
	reader, err := NewDataReader("wards.csv")
	require.NoError(t, err)

	_, err = reader.ReadBytes([]byte(""))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputFormat, errors.GetCode(err))

	_, err = reader.ReadBytes([]byte("Ward Code,Ward Name\n"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputFormat, errors.GetCode(err))
}

func TestReadXLSX(t *testing.T) {
	payload, err := testkit.XLSXBytes(testkit.BoothSheet())
	require.NoError(t, err)

	reader, err := NewDataReader("booths.xlsx")
	require.NoError(t, err)
	parsed, err := reader.ReadBytes(payload)
	require.NoError(t, err)

	want := testkit.BoothSheet()
	assert.Equal(t, want.Headers, parsed.Headers)
	require.Len(t, parsed.Rows, len(want.Rows))
	assert.Equal(t, "B-001", parsed.Rows[0]["Booth Number"])
	assert.Equal(t, "18.5204", parsed.Rows[0]["Latitude"])
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	reader, err := NewDataReader("booths.xlsx")
	require.NoError(t, err)

	_, err = reader.ReadBytes([]byte("this is not a workbook"))
	require.Error(t, err)
}

func TestParserImplementsPort(t *testing.T) {
	parser := NewParser()

	parsed, err := parser.Parse("constituencies.csv", bytes.NewReader(testkit.CSVBytes(testkit.ConstituencySheet())))
	require.NoError(t, err)
	assert.Len(t, parsed.Rows, 2)

	_, err = parser.Parse("bad.txt", bytes.NewReader(nil))
	assert.Error(t, err)
}
