package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func wardTestMapping(t *testing.T) ([]TargetField, ColumnMapping) {
	t.Helper()
	fields, err := FieldsFor(KindWards)
	assert.NoError(t, err)
	headers := []string{"Ward Code", "Ward Name", "Constituency Code", "Constituency Name", "Total Voters"}
	return fields, AutoMap(headers, fields)
}

func TestValidateRequiredField(t *testing.T) {
	fields, mapping := wardTestMapping(t)

	rows := []RawRow{
		{"Ward Code": "W001", "Ward Name": "Shivaji Nagar", "Constituency Code": "AC-101", "Constituency Name": "Pune Central"},
		{"Ward Code": "W002", "Ward Name": "   ", "Constituency Code": "AC-101", "Constituency Name": "Pune Central"},
	}

	errs := Validate(rows, mapping, fields)
	assert.Len(t, errs, 1)

	// Second data row renders as spreadsheet line 3 (header is line 1)
	assert.Equal(t, 3, errs[0].Row)
	assert.Equal(t, "Ward Name", errs[0].Field)
	assert.Equal(t, "Ward Name is required", errs[0].Message)
}

func TestValidateUnmappedRequiredFieldFailsEveryRow(t *testing.T) {
	fields, mapping := wardTestMapping(t)
	assert.NoError(t, mapping.Remap("ward_code", "", []string{"Ward Code"}, fields))

	rows := []RawRow{
		{"Ward Code": "W001", "Ward Name": "A", "Constituency Code": "AC-101", "Constituency Name": "X"},
		{"Ward Code": "W002", "Ward Name": "B", "Constituency Code": "AC-101", "Constituency Name": "X"},
	}

	errs := Validate(rows, mapping, fields)
	assert.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, "Ward Code is required", e.Message)
	}
}

func TestValidateCoordinates(t *testing.T) {
	fields, err := FieldsFor(KindBooths)
	assert.NoError(t, err)
	headers := []string{"Booth Number", "Booth Name", "Ward Code", "Latitude", "Longitude"}
	mapping := AutoMap(headers, fields)

	base := func(lat, lon string) RawRow {
		return RawRow{
			"Booth Number": "B-001", "Booth Name": "School", "Ward Code": "W001",
			"Latitude": lat, "Longitude": lon,
		}
	}

	tests := []struct {
		name     string
		row      RawRow
		messages []string
	}{
		{"valid pair", base("18.5204", "73.8567"), nil},
		{"integer coordinates", base("18", "73"), nil},
		{"boundary values", base("90", "-180"), nil},
		{"latitude too high", base("91", "73"), []string{"Latitude must be between -90 and 90"}},
		{"latitude too low", base("-95", "73"), []string{"Latitude must be between -90 and 90"}},
		{"longitude too high", base("18", "181"), []string{"Longitude must be between -180 and 180"}},
		{"not a number", base("abc", "73"), []string{"Latitude must be a number"}},
		{"nan rejected", base("NaN", "73"), []string{"Latitude must be a number"}},
		{"empty optional skipped", base("", ""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate([]RawRow{tt.row}, mapping, fields)
			var got []string
			for _, e := range errs {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.messages, got)
		})
	}
}

func TestValidateVoterCounts(t *testing.T) {
	fields, mapping := wardTestMapping(t)

	rows := []RawRow{
		{"Ward Code": "W001", "Ward Name": "A", "Constituency Code": "AC-101", "Constituency Name": "X", "Total Voters": "45210"},
		{"Ward Code": "W002", "Ward Name": "B", "Constituency Code": "AC-101", "Constituency Name": "X", "Total Voters": "-5"},
		{"Ward Code": "W003", "Ward Name": "C", "Constituency Code": "AC-101", "Constituency Name": "X", "Total Voters": "12.5"},
		{"Ward Code": "W004", "Ward Name": "D", "Constituency Code": "AC-101", "Constituency Name": "X", "Total Voters": "many"},
	}

	errs := Validate(rows, mapping, fields)
	assert.Len(t, errs, 3)
	for _, e := range errs {
		assert.Equal(t, "Total Voters must be a non-negative whole number", e.Message)
	}
	assert.Equal(t, []int{3, 4, 5}, []int{errs[0].Row, errs[1].Row, errs[2].Row})
}

func TestValidateCollectsAllErrorsInOrder(t *testing.T) {
	fields, mapping := wardTestMapping(t)

	// Row 2: two violations; row 3: one
	rows := []RawRow{
		{"Ward Code": "", "Ward Name": "", "Constituency Code": "AC-101", "Constituency Name": "X"},
		{"Ward Code": "W002", "Ward Name": "B", "Constituency Code": "", "Constituency Name": "X"},
	}

	errs := Validate(rows, mapping, fields)
	assert.Len(t, errs, 3)

	// Row-major, then field declaration order within a row
	assert.Equal(t, "Ward Code", errs[0].Field)
	assert.Equal(t, 2, errs[0].Row)
	assert.Equal(t, "Ward Name", errs[1].Field)
	assert.Equal(t, 2, errs[1].Row)
	assert.Equal(t, "Constituency Code", errs[2].Field)
	assert.Equal(t, 3, errs[2].Row)
}

func TestValidateIsIdempotent(t *testing.T) {
	fields, mapping := wardTestMapping(t)
	rows := []RawRow{
		{"Ward Code": "W001", "Ward Name": "", "Constituency Code": "AC-101", "Constituency Name": "X", "Total Voters": "-1"},
	}

	first := Validate(rows, mapping, fields)
	second := Validate(rows, mapping, fields)
	assert.Equal(t, first, second)
}

func TestValidateTrimsBeforeChecking(t *testing.T) {
	fields, mapping := wardTestMapping(t)
	rows := []RawRow{
		{"Ward Code": "  W001  ", "Ward Name": "A", "Constituency Code": "AC-101", "Constituency Name": "X", "Total Voters": " 100 "},
	}

	assert.Empty(t, Validate(rows, mapping, fields))
}
