// Package testhelpers builds in-memory workbooks and multipart uploads for
// tests.
package testhelpers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook returns xlsx bytes whose first sheet contains the given
// grid (first row is the header).
func BuildWorkbook(t *testing.T, grid [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, rowCells := range grid {
		for c, value := range rowCells {
			cellRef, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name (%d,%d): %v", c, r, err)
			}
			if err := f.SetCellValue(sheet, cellRef, value); err != nil {
				t.Fatalf("set cell %s: %v", cellRef, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// SummaryHeader is the header row for cost-summary workbooks.
func SummaryHeader() []string {
	return []string{
		"Group Name", "Cost Code", "Cost Description",
		"Budget", "Actual", "Provision", "Total Cost", "Variance",
	}
}

// DetailsHeader is the header row for cost-details workbooks.
func DetailsHeader() []string {
	return []string{
		"Date", "Cost Code", "Cost Description", "Actual",
		"Narration", "Supplier name", "LPO NO", "MRIR NO", "PV REF NO",
	}
}

// UploadRequest builds a multipart POST with the workbook under field
// excel_file plus any extra form fields.
func UploadRequest(t *testing.T, url string, workbook []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("excel_file", "upload.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(workbook); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// AssertPDF fails the test unless body looks like a PDF document.
func AssertPDF(t *testing.T, body []byte) {
	t.Helper()

	if len(body) < 5 || string(body[:5]) != "%PDF-" {
		prefix := body
		if len(prefix) > 16 {
			prefix = prefix[:16]
		}
		t.Fatalf("expected PDF bytes, got %q (%d bytes)", prefix, len(body))
	}
}

// Amount formats a float the way summary test fixtures write cells.
func Amount(v float64) string {
	return fmt.Sprintf("%v", v)
}
