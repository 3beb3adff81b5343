package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/meal-ticket/internal/report"
	"github.com/frahmantamala/meal-ticket/internal/transport"
)

// ReporterAPI is the read-only report surface exposed over HTTP.
type ReporterAPI interface {
	DailyReport(day time.Time) ([]report.DailyEntry, error)
	MonthlyReport(month, year int) ([]report.MonthlyEntry, error)
}

// ReportHandler serves the on-demand report endpoints under /api/v1.
type ReportHandler struct {
	*transport.BaseHandler
	Reports ReporterAPI
	loc     *time.Location
}

func NewReportHandler(reports ReporterAPI, loc *time.Location) *ReportHandler {
	return &ReportHandler{
		BaseHandler: transport.NewBaseHandler(nil),
		Reports:     reports,
		loc:         loc,
	}
}

type dailyReportResponse struct {
	Date    string              `json:"date"`
	Count   int                 `json:"count"`
	Entries []report.DailyEntry `json:"entries"`
}

type monthlyReportResponse struct {
	Month   int                   `json:"month"`
	Year    int                   `json:"year"`
	Count   int                   `json:"count"`
	Entries []report.MonthlyEntry `json:"entries"`
}

// Daily returns the issuances for ?date= (default: today in the
// configured zone).
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now().In(h.loc)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		day = parsed
	}

	entries, err := h.Reports.DailyReport(day)
	if err != nil {
		h.Logger.Error("Daily: report query failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dailyReportResponse{
		Date:    day.Format("2006-01-02"),
		Count:   len(entries),
		Entries: entries,
	})
}

// Monthly returns the issuances for ?month=&year=, as JSON or as an
// xlsx download with ?format=xlsx.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "month is required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "year is required")
		return
	}

	entries, err := h.Reports.MonthlyReport(month, year)
	if err != nil {
		h.Logger.Error("Monthly: report query failed", "error", err, "month", month, "year", year)
		h.HandleServiceError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		data, err := report.MonthlyWorkbookBytes(entries)
		if err != nil {
			h.Logger.Error("Monthly: workbook build failed", "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to build spreadsheet")
			return
		}
		filename := report.MonthlyFilename(month, year)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			h.Logger.Error("Monthly: failed to write spreadsheet", "error", err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, monthlyReportResponse{
		Month:   month,
		Year:    year,
		Count:   len(entries),
		Entries: entries,
	})
}
