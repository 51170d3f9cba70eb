package services

import (
	"testing"
	"time"

	"costreports/testhelpers"
)

func TestRenderPDF_Summary(t *testing.T) {
	v := CostSummaryVariant()
	rows := []NormalizedRow{
		summaryRowInput("Civil", "00010", "Concrete", 1000, 400, 100, 500, 500),
		summaryRowInput("Electrical", "00030", "Cables", 800, 200, 50, 250, 550),
	}
	s := Summarize(rows, len(v.NumericColumns))
	l := BuildSummaryLayout(s, testSummaryMeta(), v)

	out, err := RenderPDF(l)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	testhelpers.AssertPDF(t, out)
}

func TestRenderPDF_Details(t *testing.T) {
	v := CostDetailsVariant()
	d := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	var rows []NormalizedRow
	for i := 0; i < 40; i++ {
		r := summaryRowInput("", "00007", "Site works", 100)
		r.Date = &d
		r.Carry = map[string]string{"Narration": "n", "Supplier name": "s"}
		rows = append(rows, r)
	}

	l := BuildDetailsLayout(rows, FilterParams{CostCode: "00007"}, v)
	out, err := RenderPDF(l)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	testhelpers.AssertPDF(t, out)
}

func TestSpanWidths(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{12}},
		{2, []int{6, 6}},
		{4, []int{3, 3, 3, 3}},
		{5, []int{2, 2, 2, 2, 4}},
	}
	for _, tt := range tests {
		got := spanWidths(tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("spanWidths(%d) = %v, want %v", tt.n, got, tt.want)
			continue
		}
		total := 0
		for i, w := range got {
			if w != tt.want[i] {
				t.Errorf("spanWidths(%d) = %v, want %v", tt.n, got, tt.want)
				break
			}
			total += w
		}
		if total != 12 {
			t.Errorf("spanWidths(%d) sums to %d, want 12", tt.n, total)
		}
	}
}
