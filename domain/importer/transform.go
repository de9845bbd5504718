package importer

import "strings"

// BuildRecords shapes raw rows into target records using the current
// mapping. Only entries with a non-empty source header are copied; unmapped
// target fields are absent from the record entirely. Validation is a
// separate gate and is not re-checked here.
func BuildRecords(rows []RawRow, mapping ColumnMapping, fields []TargetField) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record := make(Record, len(fields))
		for _, field := range fields {
			header := mapping[field.Key]
			if header == "" {
				continue
			}
			record[field.Key] = strings.TrimSpace(row[header])
		}
		records = append(records, record)
	}
	return records
}
