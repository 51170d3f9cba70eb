package services

import (
	"testing"
	"time"
)

func TestNormalizeCostCode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"integer", "7", "00007"},
		{"float text", "7.0", "00007"},
		{"floors fractional", "12.9", "00012"},
		{"already padded", "00042", "00042"},
		{"whitespace trimmed", "  19  ", "00019"},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"nan lowercase", "nan", ""},
		{"nan mixed case", "NaN", ""},
		{"non-numeric verbatim", "ABC-1", "ABC-1"},
		{"non-numeric trimmed", "  SITE/7 ", "SITE/7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCostCode(tt.input); got != tt.expect {
				t.Errorf("NormalizeCostCode(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseCellDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		ok     bool
		expect time.Time
	}{
		{"day first slashes", "15/01/2024", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"ambiguous resolves day first", "03/04/2024", true, time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"iso", "2024-01-15", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"named month", "15-Jan-2024", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"iso datetime truncates to midnight", "2024-01-15 10:30:00", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 truncates to midnight", "2024-01-15T10:30:00Z", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"excel serial", "45306", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"empty", "", false, time.Time{}},
		{"garbage", "not a date", false, time.Time{}},
		{"tiny serial rejected", "12", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCellDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseCellDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.expect) {
				t.Errorf("ParseCellDate(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestNormalizeRows_CoercesMeasures(t *testing.T) {
	v := CostSummaryVariant()
	table := &RawTable{
		Columns: v.RequiredColumns(),
		Rows: []RawRow{
			{
				"Group Name": " Subcontractors ", "Cost Code": "7", "Cost Description": "Steel",
				"Budget": "1,234.50", "Actual": "100", "Provision": "abc",
				"Total Cost": "", "Variance": "-50.25",
			},
		},
	}

	rows := NormalizeRows(table, v)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	r := rows[0]
	if r.GroupName != "Subcontractors" {
		t.Errorf("group name = %q, want trimmed %q", r.GroupName, "Subcontractors")
	}
	if r.CostCode != "00007" {
		t.Errorf("cost code = %q, want %q", r.CostCode, "00007")
	}

	want := []string{"1234.5", "100", "0", "0", "-50.25"}
	for i, expect := range want {
		if r.Measures[i].String() != expect {
			t.Errorf("measure[%d] (%s) = %s, want %s", i, v.NumericColumns[i], r.Measures[i], expect)
		}
	}
}

func TestNormalizeRows_CarryColumnsAndDate(t *testing.T) {
	v := CostDetailsVariant()
	table := &RawTable{
		Columns: append([]string{"Date", "Cost Code", "Cost Description", "Actual"}, v.CarryColumns...),
		Rows: []RawRow{
			{
				"Date": "15/01/2024", "Cost Code": "9", "Cost Description": "Cement",
				"Actual": "250", "Narration": " advance payment ", "Supplier name": "ACME",
			},
			{
				"Date": "bogus", "Cost Code": "9", "Cost Description": "Cement", "Actual": "10",
			},
		},
	}

	rows := NormalizeRows(table, v)
	if rows[0].Date == nil || !rows[0].Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("row 0 date = %v, want 2024-01-15", rows[0].Date)
	}
	if rows[0].Carry["Narration"] != "advance payment" {
		t.Errorf("narration = %q, want trimmed pass-through", rows[0].Carry["Narration"])
	}
	if rows[0].Carry["LPO NO"] != "" {
		t.Errorf("missing carry column should be empty, got %q", rows[0].Carry["LPO NO"])
	}
	if rows[1].Date != nil {
		t.Errorf("unparseable date should normalize to missing, got %v", rows[1].Date)
	}
}
