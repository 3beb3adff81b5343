package ticket

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/meal-ticket/internal"
	"github.com/frahmantamala/meal-ticket/internal/employee"
)

var ErrAlreadyIssued = internal.ErrTicketAlreadyIssued

// Repository defines the data access methods for the ticket ledger.
type Repository interface {
	// Create appends a ticket. A second ticket for the same employee and
	// date must come back as ErrAlreadyIssued.
	Create(t *Ticket) error
	HasTicketOn(employeeID int64, day time.Time) (bool, error)
}

// Directory resolves personal codes to roster entries.
type Directory interface {
	FindByCode(code string) (*employee.Employee, error)
}

// Service decides whether a submitted code gets a ticket.
type Service struct {
	repo      Repository
	directory Directory
	window    Window
	loc       *time.Location
	logger    *slog.Logger
}

func NewService(repo Repository, directory Directory, window Window, loc *time.Location, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		window:    window,
		loc:       loc,
		logger:    logger,
	}
}

// RequestTicket runs the issuance checks in fixed order: time window,
// code lookup, duplicate check, then the insert. The order is policy and
// observable (an unknown code outside the window reports the window).
// The same now is reused for the window check and the stored date/time.
func (s *Service) RequestTicket(rawInput string, now time.Time) (*Decision, error) {
	now = now.In(s.loc)

	if !s.window.Contains(now) {
		return &Decision{Outcome: OutcomeOutsideWindow}, nil
	}

	code := strings.TrimSpace(rawInput)
	emp, err := s.directory.FindByCode(code)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return &Decision{Outcome: OutcomeUnknownCode}, nil
		}
		s.logger.Error("code lookup failed", "error", err)
		return nil, err
	}

	day := DateOf(now)
	issued, err := s.repo.HasTicketOn(emp.ID, day)
	if err != nil {
		s.logger.Error("duplicate check failed", "error", err, "employee_id", emp.ID)
		return nil, err
	}
	if issued {
		return &Decision{Outcome: OutcomeAlreadyIssued, Employee: emp}, nil
	}

	tkt := &Ticket{
		EmployeeID: emp.ID,
		IssueDate:  day,
		IssueTime:  TimeOf(now),
	}
	if err := s.repo.Create(tkt); err != nil {
		// two requests racing past the duplicate check: the unique index
		// decides, and the loser is told the same as any repeat request
		if errors.Is(err, ErrAlreadyIssued) {
			return &Decision{Outcome: OutcomeAlreadyIssued, Employee: emp}, nil
		}
		s.logger.Error("failed to append ticket", "error", err, "employee_id", emp.ID)
		return nil, err
	}

	s.logger.Info("ticket granted", "employee_id", emp.ID, "name", emp.Name, "date", day.Format("2006-01-02"))
	return &Decision{Outcome: OutcomeGranted, Employee: emp, Ticket: tkt}, nil
}
