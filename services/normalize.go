package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// NormalizedRow is one typed line item. Measures is index-aligned with the
// variant's NumericColumns; every entry is defined (unparseable cells become
// zero, never an error). A nil Date means the cell was absent or did not
// parse.
type NormalizedRow struct {
	GroupName   string
	CostCode    string
	Description string
	Measures    []decimal.Decimal
	Date        *time.Time
	Carry       map[string]string
}

// NormalizeRows converts raw rows into typed rows using the variant's column
// configuration. It never fails: bad cells degrade to their documented
// defaults.
func NormalizeRows(t *RawTable, v ReportVariant) []NormalizedRow {
	hasDate := v.DateColumn != "" && t.HasColumn(v.DateColumn)

	rows := make([]NormalizedRow, 0, len(t.Rows))
	for i, raw := range t.Rows {
		row := NormalizedRow{
			CostCode:    NormalizeCostCode(raw[v.CodeColumn]),
			Description: strings.TrimSpace(raw[v.DescColumn]),
			Measures:    make([]decimal.Decimal, len(v.NumericColumns)),
		}
		if v.GroupColumn != "" {
			row.GroupName = strings.TrimSpace(raw[v.GroupColumn])
		}

		for j, col := range v.NumericColumns {
			amount, ok := parseAmount(raw[col])
			if !ok && strings.TrimSpace(raw[col]) != "" {
				logrus.WithFields(logrus.Fields{
					"row":    i + 2, // 1-indexed, plus header row
					"column": col,
					"value":  raw[col],
				}).Debug("unparseable amount coerced to zero")
			}
			row.Measures[j] = amount
		}

		if hasDate {
			if d, ok := ParseCellDate(raw[v.DateColumn]); ok {
				row.Date = &d
			}
		}

		if len(v.CarryColumns) > 0 {
			row.Carry = make(map[string]string, len(v.CarryColumns))
			for _, col := range v.CarryColumns {
				row.Carry[col] = strings.TrimSpace(raw[col])
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// NormalizeCostCode maps a raw cost-code cell to its canonical form: blank
// or "nan" becomes the empty string (the sentinel used by total rows),
// numeric values are floored and zero-padded to five digits, and anything
// else falls back to the trimmed verbatim text.
func NormalizeCostCode(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%05d", int64(math.Floor(f)))
}

// parseAmount converts a money cell to a decimal. Thousands separators are
// tolerated; anything unparseable becomes zero with ok=false.
func parseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// cellDateLayouts are tried in order; day-first layouts come before
// month-first so ambiguous dates like 03/04/2024 resolve day-first.
var cellDateLayouts = []string{
	"02/01/2006", "2/1/2006", "02-01-2006", "2-1-2006",
	"02/01/06", "2/1/06",
	"02-Jan-2006", "2-Jan-2006", "02/Jan/2006", "02-Jan-06",
	"2006-01-02", "2006/01/02",
	"2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC3339,
	"01/02/2006", "1/2/2006", "01-02-2006",
	"Jan 2, 2006", "January 2, 2006",
}

// excelEpoch is day zero of Excel's 1900 date system (offset so the
// historical leap-year bug cancels out).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseCellDate parses a date cell tolerantly. It tries the layout list
// first and then falls back to Excel serial numbers, since unformatted date
// cells surface as day counts. Any time-of-day component is discarded: rows
// carry dates, and filters compare at day precision. Returns ok=false for
// anything unparseable; missing dates are a filtering concern, not an error.
func ParseCellDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range cellDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	// Excel serial fallback. Values below 61 fall in the phantom
	// 1900-02-29 region and are not worth supporting.
	if serial, err := cast.ToFloat64E(s); err == nil && serial > 60 && serial < 200000 {
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}
	return time.Time{}, false
}
