package ticket

import (
	"time"

	"github.com/frahmantamala/meal-ticket/internal"
	"github.com/frahmantamala/meal-ticket/internal/employee"
)

// Ticket is a single issuance record: one per employee per calendar date.
// Rows are append-only; they are never updated and only removed when the
// owning employee is deleted.
type Ticket struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null"`
	IssueDate  time.Time `json:"issue_date" gorm:"column:issue_date;type:date"`
	IssueTime  time.Time `json:"issue_time" gorm:"column:issue_time;type:time"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type Outcome string

const (
	OutcomeGranted       Outcome = "granted"
	OutcomeOutsideWindow Outcome = "outside_window"
	OutcomeUnknownCode   Outcome = "unknown_code"
	OutcomeAlreadyIssued Outcome = "already_issued"
)

// Decision is the result of one issuance attempt. Employee and Ticket are
// populated only for the outcomes that resolved them.
type Decision struct {
	Outcome  Outcome
	Employee *employee.Employee
	Ticket   *Ticket
}

// Window is the daily time-of-day range during which tickets may be
// granted, inclusive of both bounds.
type Window struct {
	Start time.Duration
	End   time.Duration
}

func ParseWindow(start, end string) (Window, error) {
	s, err := internal.ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := internal.ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether t's time of day falls inside the window.
func (w Window) Contains(t time.Time) bool {
	tod := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	return tod >= w.Start && tod <= w.End
}

// DateOf strips the time of day, keeping a bare calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeOf strips the calendar date, keeping a bare time of day.
func TimeOf(t time.Time) time.Time {
	return time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
