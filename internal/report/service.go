package report

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/meal-ticket/internal"
	"gorm.io/gorm"
)

var ErrInvalidMonth = internal.ErrInvalidMonth

// Service runs the two read-only ledger queries. Both are safe to call
// repeatedly and concurrently with issuance writes; an empty result is a
// normal outcome, not an error.
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// DailyReport lists issuances for one calendar day ordered by issue time.
func (s *Service) DailyReport(day time.Time) ([]DailyEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	entries := make([]DailyEntry, 0)
	err := s.db.Raw(`
		SELECT e.name AS employee_name, t.issue_time
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.issue_date >= ? AND t.issue_date < ?
		ORDER BY t.issue_time`, start, end).
		Scan(&entries).Error
	if err != nil {
		s.logger.Error("daily report query failed", "error", err, "date", start.Format("2006-01-02"))
		return nil, err
	}
	return entries, nil
}

// MonthlyReport lists issuances for one calendar month ordered by
// (issue date, issue time).
func (s *Service) MonthlyReport(month, year int) ([]MonthlyEntry, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	entries := make([]MonthlyEntry, 0)
	err := s.db.Raw(`
		SELECT e.name AS employee_name, t.issue_date, t.issue_time
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.issue_date >= ? AND t.issue_date < ?
		ORDER BY t.issue_date, t.issue_time`, start, end).
		Scan(&entries).Error
	if err != nil {
		s.logger.Error("monthly report query failed", "error", err, "month", month, "year", year)
		return nil, err
	}
	return entries, nil
}
