package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"costreports/config"
	"costreports/services"
)

// paramDateLayout is the strict format for caller-supplied filter dates
// (what an HTML date input submits). Malformed values are rejected rather
// than silently ignored.
const paramDateLayout = "2006-01-02"

// HandleSummaryReport accepts a multipart upload (excel_file, as_of_date)
// and responds with the grouped cost-summary report. format=excel switches
// the download to a spreadsheet.
func HandleSummaryReport(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, ok := openUpload(w, r, cfg)
		if !ok {
			return
		}
		defer file.Close()

		asOfStr := r.FormValue("as_of_date")
		if asOfStr == "" {
			writeError(w, services.NewParseError("as_of_date is required"))
			return
		}
		asOf, err := time.Parse(paramDateLayout, asOfStr)
		if err != nil {
			writeError(w, services.NewParseError("as_of_date must be YYYY-MM-DD").
				WithDetail("value", asOfStr))
			return
		}

		params := services.SummaryParams{
			AsOf:         asOf,
			CompanyTitle: cfg.CompanyTitle,
		}

		if r.FormValue("format") == "excel" {
			out, err := services.GenerateSummaryExcel(file, header.Filename, params)
			if err != nil {
				writeError(w, err)
				return
			}
			sendAttachment(w, out,
				fmt.Sprintf("Cost_Report_%s.xlsx", asOf.Format(paramDateLayout)),
				"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			return
		}

		out, err := services.GenerateSummaryPDF(file, header.Filename, params)
		if err != nil {
			writeError(w, err)
			return
		}
		sendAttachment(w, out,
			fmt.Sprintf("Cost_Report_%s.pdf", asOf.Format(paramDateLayout)),
			"application/pdf")
	}
}

// HandleDetailsReport accepts a multipart upload (excel_file plus optional
// date_from, date_till, cost_code) and responds with the transaction
// listing.
func HandleDetailsReport(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, ok := openUpload(w, r, cfg)
		if !ok {
			return
		}
		defer file.Close()

		params := services.DetailParams{
			CostCode: r.FormValue("cost_code"),
		}

		var err error
		if params.DateFrom, err = optionalDate(r.FormValue("date_from"), "date_from"); err != nil {
			writeError(w, err)
			return
		}
		if params.DateTill, err = optionalDate(r.FormValue("date_till"), "date_till"); err != nil {
			writeError(w, err)
			return
		}

		out, err := services.GenerateDetailsPDF(file, header.Filename, params)
		if err != nil {
			writeError(w, err)
			return
		}
		sendAttachment(w, out, "Detailed_Report.pdf", "application/pdf")
	}
}

func openUpload(w http.ResponseWriter, r *http.Request, cfg *config.Config) (multipart.File, *multipart.FileHeader, bool) {
	maxBytes := int64(cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, services.NewParseError("invalid or oversized upload").
			WithDetail("cause", err.Error()))
		return nil, nil, false
	}

	file, header, err := r.FormFile("excel_file")
	if err != nil {
		writeError(w, services.NewParseError("no spreadsheet uploaded; expected form field excel_file"))
		return nil, nil, false
	}
	return file, header, true
}

func optionalDate(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(paramDateLayout, value)
	if err != nil {
		return nil, services.NewParseError(name + " must be YYYY-MM-DD").
			WithDetail("value", value)
	}
	return &t, nil
}

func sendAttachment(w http.ResponseWriter, body []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
	if _, err := w.Write(body); err != nil {
		logrus.WithError(err).Error("failed writing report response")
	}
}

// writeError maps pipeline failures to HTTP responses: user-correctable
// kinds return 400 with the full message; anything else is logged with its
// diagnostics and surfaced as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	if services.IsUserError(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logrus.WithError(err).Error("report generation failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
