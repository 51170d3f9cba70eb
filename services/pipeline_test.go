package services

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"costreports/testhelpers"
)

func summaryWorkbook(t *testing.T) []byte {
	t.Helper()
	header := append(testhelpers.SummaryHeader(), "Project Number")
	return testhelpers.BuildWorkbook(t, [][]string{
		header,
		{"Civil", "10", "Concrete", "1000", "400", "100", "500", "500", "P-77"},
		{"Civil", "10", "Concrete", "500", "100", "0", "100", "400", ""},
		{"Electrical", "30", "Cables", "800", "200", "50", "250", "550", ""},
	})
}

func TestBuildSummaryReport_EndToEnd(t *testing.T) {
	wb := summaryWorkbook(t)
	p := SummaryParams{
		AsOf:         time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		CompanyTitle: "Acme Contracting",
	}

	l, err := BuildSummaryReport(bytes.NewReader(wb), "upload.xlsx", p)
	if err != nil {
		t.Fatalf("BuildSummaryReport: %v", err)
	}

	if l.Blocks[0].Cells[0].Text != "Acme Contracting" {
		t.Errorf("title = %q", l.Blocks[0].Cells[0].Text)
	}
	if got := l.Blocks[2].Cells[0].Text; got != "Project Number: P-77" {
		t.Errorf("project banner = %q, want the first row's value", got)
	}

	// Cost code 10 appears once, aggregated and zero-padded.
	var dataRows []Block
	for _, b := range l.Blocks {
		if b.Kind == BlockDataRow {
			dataRows = append(dataRows, b)
		}
	}
	if len(dataRows) != 2 {
		t.Fatalf("got %d data rows, want 2 aggregated codes", len(dataRows))
	}
	if dataRows[0].Cells[0].Text != "00010" {
		t.Errorf("first code = %q, want 00010", dataRows[0].Cells[0].Text)
	}
	if got := dataRows[0].Cells[2].Text; got != "1,500.00" {
		t.Errorf("aggregated budget = %q, want 1,500.00", got)
	}

	last := l.Blocks[len(l.Blocks)-1]
	if last.Kind != BlockGrandTotal {
		t.Fatalf("last block kind = %q", last.Kind)
	}
	if got := last.Cells[2].Text; got != "2,300.00" {
		t.Errorf("grand total budget = %q, want 2,300.00", got)
	}
}

func TestBuildSummaryReport_MissingProjectNumber(t *testing.T) {
	wb := testhelpers.BuildWorkbook(t, [][]string{
		testhelpers.SummaryHeader(),
		{"Civil", "10", "Concrete", "100", "0", "0", "0", "100"},
	})
	p := SummaryParams{AsOf: time.Now(), CompanyTitle: "Acme"}

	l, err := BuildSummaryReport(bytes.NewReader(wb), "upload.xlsx", p)
	if err != nil {
		t.Fatalf("BuildSummaryReport: %v", err)
	}
	if got := l.Blocks[2].Cells[0].Text; got != "Project Number: N/A" {
		t.Errorf("project banner = %q, want N/A fallback", got)
	}
}

func detailsWorkbook(t *testing.T) []byte {
	t.Helper()
	grid := [][]string{testhelpers.DetailsHeader()}
	for d := 1; d <= 31; d++ {
		code := "7"
		if d%2 == 0 {
			code = "8"
		}
		grid = append(grid, []string{
			fmt.Sprintf("%02d/01/2024", d), code, "Site works", "100",
			"narration", "supplier", "lpo", "mrir", "pv",
		})
	}
	return testhelpers.BuildWorkbook(t, grid)
}

func TestBuildDetailsReport_EndToEnd(t *testing.T) {
	wb := detailsWorkbook(t)
	from := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	till := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	// "7" must match rows normalized to "00007".
	l, err := BuildDetailsReport(bytes.NewReader(wb), "upload.xlsx", DetailParams{
		DateFrom: &from,
		DateTill: &till,
		CostCode: "7",
	})
	if err != nil {
		t.Fatalf("BuildDetailsReport: %v", err)
	}

	var dataRows []Block
	for _, b := range l.Blocks {
		if b.Kind == BlockDataRow {
			dataRows = append(dataRows, b)
		}
	}
	// Odd days between the 10th and the 20th inclusive: 11,13,15,17,19.
	if len(dataRows) != 5 {
		t.Fatalf("got %d data rows, want 5", len(dataRows))
	}
	for _, b := range dataRows {
		if b.Cells[1].Text != "00007" {
			t.Errorf("row code = %q, want 00007", b.Cells[1].Text)
		}
	}

	totalRow := l.Blocks[len(l.Blocks)-2]
	n := len(totalRow.Cells)
	if totalRow.Cells[n-1].Text != "500.00" {
		t.Errorf("trailing total = %q, want 500.00", totalRow.Cells[n-1].Text)
	}

	summary := l.Blocks[len(l.Blocks)-1].Cells[0].Text
	want := "Summary: Total Records: 5 | Total Amount: 500.00"
	if summary != want {
		t.Errorf("summary line = %q, want %q", summary, want)
	}
}

func TestBuildDetailsReport_MissingColumn(t *testing.T) {
	wb := testhelpers.BuildWorkbook(t, [][]string{
		{"Date", "Cost Code", "Actual"},
		{"01/01/2024", "7", "100"},
	})

	_, err := BuildDetailsReport(bytes.NewReader(wb), "upload.xlsx", DetailParams{})
	if err == nil {
		t.Fatal("expected schema error")
	}
	if KindOf(err) != ErrSchema {
		t.Errorf("kind = %v, want %v", KindOf(err), ErrSchema)
	}
}

func TestGenerateSummaryPDF(t *testing.T) {
	wb := summaryWorkbook(t)
	out, err := GenerateSummaryPDF(bytes.NewReader(wb), "upload.xlsx", SummaryParams{
		AsOf:         time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		CompanyTitle: "Acme Contracting",
	})
	if err != nil {
		t.Fatalf("GenerateSummaryPDF: %v", err)
	}
	testhelpers.AssertPDF(t, out)
}

func TestGenerateDetailsPDF(t *testing.T) {
	wb := detailsWorkbook(t)
	out, err := GenerateDetailsPDF(bytes.NewReader(wb), "upload.xlsx", DetailParams{})
	if err != nil {
		t.Fatalf("GenerateDetailsPDF: %v", err)
	}
	testhelpers.AssertPDF(t, out)
}
