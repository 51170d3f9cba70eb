package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// maxDateDropRatio is the data-quality circuit breaker: if date-driven
// filtering removes more than this share of the input, the sheet's Date
// column is probably broken and the report is refused.
const maxDateDropRatio = 0.2

// FilterParams holds the caller-supplied row predicates. AsOf is the
// inclusive ceiling used by the summary report; DateFrom/DateTill bound the
// details report; CostCode is the normalized equality filter. All are
// optional.
type FilterParams struct {
	AsOf     *time.Time
	DateFrom *time.Time
	DateTill *time.Time
	CostCode string
}

// Describe renders the active filters for the report banner and for error
// messages. Empty when no filter is set.
func (p FilterParams) Describe() string {
	var parts []string
	if p.AsOf != nil {
		parts = append(parts, "As of: "+p.AsOf.Format("02-Jan-2006"))
	}
	if p.DateFrom != nil || p.DateTill != nil {
		from, till := "All", "All"
		if p.DateFrom != nil {
			from = p.DateFrom.Format("01/02/2006")
		}
		if p.DateTill != nil {
			till = p.DateTill.Format("01/02/2006")
		}
		parts = append(parts, fmt.Sprintf("Date Range: %s to %s", from, till))
	}
	if p.CostCode != "" {
		parts = append(parts, "Cost Code: "+p.CostCode)
	}
	return strings.Join(parts, " | ")
}

// FilterRows applies the variant's date handling and the caller's predicates
// in order: missing-date drops, date ceiling or range, then cost-code
// equality. The row-loss guard counts only date-driven drops (missing dates
// and the ceiling); range and cost-code filtering are legitimate narrowing,
// not a data-quality signal.
func FilterRows(rows []NormalizedRow, v ReportVariant, hasDateColumn bool, p FilterParams) ([]NormalizedRow, error) {
	original := len(rows)
	dateDropped := 0

	if v.DateRequired && hasDateColumn {
		// Details variant: rows without a parseable date are unusable.
		kept := rows[:0:0]
		for _, r := range rows {
			if r.Date == nil {
				dateDropped++
				continue
			}
			kept = append(kept, r)
		}
		rows = kept
	}

	if p.AsOf != nil && hasDateColumn {
		kept := rows[:0:0]
		for _, r := range rows {
			if r.Date == nil || r.Date.After(*p.AsOf) {
				dateDropped++
				continue
			}
			kept = append(kept, r)
		}
		rows = kept
	}

	if dateDropped > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped":  dateDropped,
			"original": original,
		}).Info("date filter removed rows")
	}
	if original > 0 && float64(dateDropped)/float64(original) > maxDateDropRatio {
		return nil, NewDataQualityError("more than 20% of rows were removed by date filtering; verify the Date column").
			WithDetail("dropped", dateDropped).
			WithDetail("original", original)
	}

	if p.DateFrom != nil {
		kept := rows[:0:0]
		for _, r := range rows {
			if r.Date != nil && !r.Date.Before(*p.DateFrom) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	if p.DateTill != nil {
		kept := rows[:0:0]
		for _, r := range rows {
			if r.Date != nil && !r.Date.After(*p.DateTill) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	if p.CostCode != "" {
		kept := rows[:0:0]
		for _, r := range rows {
			if r.CostCode == p.CostCode {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	if len(rows) == 0 {
		e := NewDataQualityError("no records match the requested filters")
		if desc := p.Describe(); desc != "" {
			e = e.WithDetail("filters", desc)
		}
		return nil, e
	}
	return rows, nil
}
