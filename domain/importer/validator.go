package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// headerRowOffset converts a 0-based data index into the spreadsheet line
// number a user sees: +1 for 1-based counting, +1 for the header row.
const headerRowOffset = 2

// Validate applies every applicable rule to every row and collects all
// violations. It is a pure function: no short-circuiting per row, no hidden
// state, and identical inputs always yield the identical error list in
// row-major, field-declaration order.
func Validate(rows []RawRow, mapping ColumnMapping, fields []TargetField) []ValidationError {
	var errs []ValidationError
	for i, row := range rows {
		rowNum := i + headerRowOffset
		for _, field := range fields {
			value := strings.TrimSpace(mapping.Resolve(row, field.Key))

			if value == "" {
				if field.Required {
					errs = append(errs, ValidationError{
						Row:     rowNum,
						Field:   field.Label,
						Value:   "",
						Message: fmt.Sprintf("%s is required", field.Label),
					})
				}
				// Optional empty cells have nothing further to check
				continue
			}

			if msg := checkFieldValue(field, value); msg != "" {
				errs = append(errs, ValidationError{
					Row:     rowNum,
					Field:   field.Label,
					Value:   value,
					Message: msg,
				})
			}
		}
	}
	return errs
}

// checkFieldValue applies the per-key rule to a present value and returns
// an error message, or "" when the value passes. Rules are keyed by target
// field key, not by a generic type tag.
func checkFieldValue(field TargetField, value string) string {
	switch {
	case field.Key == "latitude":
		v, ok := parseFinite(value)
		if !ok {
			return fmt.Sprintf("%s must be a number", field.Label)
		}
		if v < -90 || v > 90 {
			return "Latitude must be between -90 and 90"
		}
	case field.Key == "longitude":
		v, ok := parseFinite(value)
		if !ok {
			return fmt.Sprintf("%s must be a number", field.Label)
		}
		if v < -180 || v > 180 {
			return "Longitude must be between -180 and 180"
		}
	case IsVoterCountKey(field.Key):
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Sprintf("%s must be a non-negative whole number", field.Label)
		}
	}
	return ""
}

// parseFinite parses a coordinate value, rejecting NaN and infinities
func parseFinite(value string) (float64, bool) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
