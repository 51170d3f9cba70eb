package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Column names shared by both report variants.
const (
	ColGroupName   = "Group Name"
	ColCostCode    = "Cost Code"
	ColDescription = "Cost Description"
	ColDate        = "Date"
	ColProjectNo   = "Project Number"
)

// ReportVariant is the injected configuration for one report type: which
// columns must exist, which are summed, how the table is laid out on the
// page. Constructors return fresh values so concurrent requests never share
// mutable state.
type ReportVariant struct {
	Name           string   `yaml:"name"`
	Title          string   `yaml:"title"`
	NumericColumns []string `yaml:"numeric_columns"`
	CarryColumns   []string `yaml:"carry_columns"`
	GroupColumn    string   `yaml:"group_column"`
	CodeColumn     string   `yaml:"code_column"`
	DescColumn     string   `yaml:"desc_column"`
	DateColumn     string   `yaml:"date_column"`
	DateRequired   bool     `yaml:"date_required"`

	// Display order and maroto 12-grid widths, index-aligned. Labels
	// optionally overrides the printed header for a column whose sheet
	// name is too long for the page.
	Columns    []string          `yaml:"columns"`
	GridWidths []int             `yaml:"grid_widths"`
	Labels     map[string]string `yaml:"labels"`

	// Page geometry. PageSize is "A3" or "A4"; both variants are landscape.
	PageSize string `yaml:"page_size"`
}

// RequiredColumns returns the columns the schema validator must find.
func (v ReportVariant) RequiredColumns() []string {
	var req []string
	if v.GroupColumn != "" {
		req = append(req, v.GroupColumn)
	}
	if v.DateRequired && v.DateColumn != "" {
		req = append(req, v.DateColumn)
	}
	req = append(req, v.CodeColumn, v.DescColumn)
	req = append(req, v.NumericColumns...)
	return req
}

// Label returns the printed header for a column, defaulting to its name.
func (v ReportVariant) Label(name string) string {
	if l, ok := v.Labels[name]; ok {
		return l
	}
	return name
}

// IsNumericColumn reports whether a display column holds a money measure.
func (v ReportVariant) IsNumericColumn(name string) bool {
	for _, c := range v.NumericColumns {
		if c == name {
			return true
		}
	}
	return false
}

// CostSummaryVariant configures the grouped cost-summary report: line items
// rolled up per group and cost code with group and grand totals.
func CostSummaryVariant() ReportVariant {
	numeric := []string{"Budget", "Actual", "Provision", "Total Cost", "Variance"}
	return ReportVariant{
		Name:           "cost-summary",
		Title:          "Cost Summary Report",
		NumericColumns: numeric,
		GroupColumn:    ColGroupName,
		CodeColumn:     ColCostCode,
		DescColumn:     ColDescription,
		DateColumn:     ColDate,
		DateRequired:   false,
		Columns:        append([]string{ColCostCode, ColDescription}, numeric...),
		GridWidths:     []int{1, 3, 1, 2, 1, 2, 2},
		PageSize:       "A3",
	}
}

// CostDetailsVariant configures the transaction-listing report: one row per
// surviving record plus a trailing total.
func CostDetailsVariant() ReportVariant {
	carry := []string{"Narration", "Supplier name", "LPO NO", "MRIR NO", "PV REF NO"}
	return ReportVariant{
		Name:           "cost-details",
		Title:          "Cost Details Report",
		NumericColumns: []string{"Actual"},
		CarryColumns:   carry,
		CodeColumn:     ColCostCode,
		DescColumn:     ColDescription,
		DateColumn:     ColDate,
		DateRequired:   true,
		Columns: []string{
			ColDate, ColCostCode, ColDescription,
			"Narration", "Supplier name", "LPO NO", "MRIR NO", "PV REF NO",
			"Actual",
		},
		GridWidths: []int{1, 1, 2, 2, 2, 1, 1, 1, 1},
		Labels:     map[string]string{"Supplier name": "Supplier"},
		PageSize:   "A4",
	}
}

// LoadVariant reads a custom variant definition from a YAML file, for sites
// whose spreadsheets use different column names or layouts.
func LoadVariant(path string) (ReportVariant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ReportVariant{}, fmt.Errorf("read variant file: %w", err)
	}

	var v ReportVariant
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return ReportVariant{}, fmt.Errorf("parse variant file: %w", err)
	}
	if err := v.validate(); err != nil {
		return ReportVariant{}, fmt.Errorf("variant %q: %w", v.Name, err)
	}
	return v, nil
}

func (v ReportVariant) validate() error {
	if v.Name == "" {
		return fmt.Errorf("name is required")
	}
	if v.CodeColumn == "" || v.DescColumn == "" {
		return fmt.Errorf("code_column and desc_column are required")
	}
	if len(v.NumericColumns) == 0 {
		return fmt.Errorf("at least one numeric column is required")
	}
	if len(v.Columns) != len(v.GridWidths) {
		return fmt.Errorf("columns and grid_widths must have the same length")
	}
	total := 0
	for _, w := range v.GridWidths {
		if w <= 0 {
			return fmt.Errorf("grid widths must be positive")
		}
		total += w
	}
	if total != 12 {
		return fmt.Errorf("grid widths must sum to 12, got %d", total)
	}
	switch v.PageSize {
	case "A3", "A4":
	default:
		return fmt.Errorf("page_size must be A3 or A4")
	}
	return nil
}
