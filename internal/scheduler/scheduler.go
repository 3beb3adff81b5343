package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/frahmantamala/meal-ticket/internal"
)

// ReportSender is the outbound side of the two scheduled jobs.
type ReportSender interface {
	SendDailyReport(day time.Time) error
	SendMonthlyReport(month, year int) error
}

// Scheduler fires the daily summary and the monthly export on a
// wall-clock schedule in the configured zone. A missed fire (process
// down at trigger time) is simply skipped.
type Scheduler struct {
	cron   *cron.Cron
	loc    *time.Location
	logger *slog.Logger
}

func New(cfg internal.ScheduleConfig, sender ReportSender, logger *slog.Logger) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(loc))

	dailySpec, err := DailySpec(cfg.DailyReportTime)
	if err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(dailySpec, func() {
		day := time.Now().In(loc)
		if err := sender.SendDailyReport(day); err != nil {
			logger.Error("scheduled daily report failed", "error", err)
		}
	}); err != nil {
		return nil, err
	}

	monthlySpec, err := MonthlySpec(cfg.MonthlyReportDay, cfg.MonthlyReportTime)
	if err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(monthlySpec, func() {
		// the export always covers the month before the trigger date
		month, year := PreviousMonth(time.Now().In(loc))
		if err := sender.SendMonthlyReport(month, year); err != nil {
			logger.Error("scheduled monthly report failed", "error", err)
		}
	}); err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:   c,
		loc:    loc,
		logger: logger,
	}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "timezone", s.loc.String())
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// DailySpec turns a "HH:MM" time of day into a cron expression.
func DailySpec(timeOfDay string) (string, error) {
	h, m, err := splitTimeOfDay(timeOfDay)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", m, h), nil
}

// MonthlySpec builds a cron expression for one day of every month.
func MonthlySpec(day int, timeOfDay string) (string, error) {
	h, m, err := splitTimeOfDay(timeOfDay)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d %d * *", m, h, day), nil
}

// PreviousMonth returns the calendar month immediately before now's.
func PreviousMonth(now time.Time) (month, year int) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := firstOfMonth.AddDate(0, 0, -1)
	return int(last.Month()), last.Year()
}

func splitTimeOfDay(s string) (hour, minute int, err error) {
	d, err := internal.ParseTimeOfDay(s)
	if err != nil {
		return 0, 0, err
	}
	return int(d.Hours()), int(d.Minutes()) % 60, nil
}
