package importer

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// NormalizeHeader reduces a header or field key to its comparable form:
// lowercase with underscores and all whitespace stripped. "Ward Code",
// "ward_code" and "WARDCODE" all normalize to "wardcode".
func NormalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == '_' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AutoMap produces the initial mapping by exact normalized-string matching.
// For each target field the first header whose normalized form equals the
// normalized field key wins; no match leaves the entry empty. There is no
// fuzzy matching.
func AutoMap(headers []string, fields []TargetField) ColumnMapping {
	mapping := make(ColumnMapping, len(fields))
	for _, field := range fields {
		mapping[field.Key] = ""
		want := NormalizeHeader(field.Key)
		for _, header := range headers {
			if NormalizeHeader(header) == want {
				mapping[field.Key] = header
				break
			}
		}
	}
	return mapping
}

// Remap repoints one mapping entry to a source header, or clears it when
// header is empty. It is the only legal way to mutate a mapping after
// AutoMap. The target key must belong to the schema and a non-empty header
// must be one of the parsed headers.
func (m ColumnMapping) Remap(targetKey, header string, headers []string, fields []TargetField) error {
	known := false
	for _, field := range fields {
		if field.Key == targetKey {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown target field: %q", targetKey)
	}

	if header != "" {
		found := false
		for _, h := range headers {
			if h == header {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("header %q is not a column of the uploaded file", header)
		}
	}

	m[targetKey] = header
	return nil
}

// DuplicateSources lists source headers mapped by more than one target
// field. Duplicates are legal and never corrected automatically; callers
// surface them as warnings only.
func (m ColumnMapping) DuplicateSources() []string {
	counts := make(map[string]int, len(m))
	for _, header := range m {
		if header != "" {
			counts[header]++
		}
	}

	var dupes []string
	for header, n := range counts {
		if n > 1 {
			dupes = append(dupes, header)
		}
	}
	sort.Strings(dupes)
	return dupes
}

// Resolve looks up the raw value a row holds for a target field key.
// Unmapped fields and absent cells both resolve to the empty string.
func (m ColumnMapping) Resolve(row RawRow, targetKey string) string {
	header := m[targetKey]
	if header == "" {
		return ""
	}
	return row[header]
}
