package services

import "strings"

// CheckSchema verifies that the sheet carries every required column for the
// variant and at least one data row. Every missing column is reported, not
// just the first.
func CheckSchema(t *RawTable, v ReportVariant) error {
	if len(t.Rows) == 0 {
		return NewSchemaError("uploaded spreadsheet has no data rows")
	}

	var missing []string
	for _, col := range v.RequiredColumns() {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return NewSchemaError("missing required columns: " + strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return nil
}
