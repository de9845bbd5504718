package postgres

import (
	"database/sql"
	"strconv"
	"strings"
)

// Records arrive as validated string maps; empty or absent cells become
// SQL NULLs rather than empty strings or zeroes.

func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullFloat(v string) sql.NullFloat64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullInt(v string) sql.NullInt64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullInt64{}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}
