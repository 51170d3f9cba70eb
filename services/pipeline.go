package services

import (
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SummaryParams are the caller-supplied scalars for the grouped summary
// report. AsOf is the inclusive date ceiling; CompanyTitle is the first
// header line.
type SummaryParams struct {
	AsOf         time.Time
	CompanyTitle string
}

// DetailParams are the caller-supplied scalars for the transaction listing.
// All filters are optional; CostCode is normalized before matching so "7"
// finds code "00007".
type DetailParams struct {
	DateFrom *time.Time
	DateTill *time.Time
	CostCode string
}

// BuildSummaryReport runs the full summary pipeline up to the layout:
// read, validate, normalize, date-ceiling filter, aggregate, lay out.
func BuildSummaryReport(r io.Reader, filename string, p SummaryParams) (*Layout, error) {
	v := CostSummaryVariant()

	table, err := ReadWorkbook(r, filename)
	if err != nil {
		return nil, err
	}
	if err := CheckSchema(table, v); err != nil {
		return nil, err
	}

	rows := NormalizeRows(table, v)

	asOf := p.AsOf
	filtered, err := FilterRows(rows, v, table.HasColumn(v.DateColumn), FilterParams{AsOf: &asOf})
	if err != nil {
		return nil, err
	}

	summary := Summarize(filtered, len(v.NumericColumns))

	meta := SummaryMeta{
		CompanyTitle:  p.CompanyTitle,
		ProjectNumber: projectNumber(table),
		AsOf:          p.AsOf,
	}
	return BuildSummaryLayout(summary, meta, v), nil
}

// GenerateSummaryPDF produces the grouped cost-summary report as PDF bytes.
func GenerateSummaryPDF(r io.Reader, filename string, p SummaryParams) ([]byte, error) {
	l, err := BuildSummaryReport(r, filename, p)
	if err != nil {
		return nil, err
	}
	return RenderPDF(l)
}

// GenerateSummaryExcel produces the grouped cost-summary report as a
// spreadsheet.
func GenerateSummaryExcel(r io.Reader, filename string, p SummaryParams) ([]byte, error) {
	l, err := BuildSummaryReport(r, filename, p)
	if err != nil {
		return nil, err
	}
	return RenderExcel(l, "Cost Summary")
}

// BuildDetailsReport runs the full details pipeline up to the layout:
// read, validate, normalize, range/code filter, lay out. No aggregation;
// rows keep their filtered order.
func BuildDetailsReport(r io.Reader, filename string, p DetailParams) (*Layout, error) {
	v := CostDetailsVariant()

	table, err := ReadWorkbook(r, filename)
	if err != nil {
		return nil, err
	}
	if err := CheckSchema(table, v); err != nil {
		return nil, err
	}

	rows := NormalizeRows(table, v)

	params := FilterParams{
		DateFrom: p.DateFrom,
		DateTill: p.DateTill,
	}
	if p.CostCode != "" {
		params.CostCode = NormalizeCostCode(p.CostCode)
	}

	filtered, err := FilterRows(rows, v, true, params)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"records": len(filtered),
		"filters": params.Describe(),
	}).Info("details report prepared")
	return BuildDetailsLayout(filtered, params, v), nil
}

// GenerateDetailsPDF produces the transaction-listing report as PDF bytes.
func GenerateDetailsPDF(r io.Reader, filename string, p DetailParams) ([]byte, error) {
	l, err := BuildDetailsReport(r, filename, p)
	if err != nil {
		return nil, err
	}
	return RenderPDF(l)
}

// projectNumber echoes the optional Project Number column (first row) in
// the report header.
func projectNumber(t *RawTable) string {
	if t.HasColumn(ColProjectNo) && len(t.Rows) > 0 {
		if n := strings.TrimSpace(t.Rows[0][ColProjectNo]); n != "" {
			return n
		}
	}
	return "N/A"
}
