package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/meal-ticket/internal/ticket"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// TicketRepository implements the ticket.Repository interface using GORM
type TicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ledger repository
func NewTicketRepository(db *gorm.DB) ticket.Repository {
	return &TicketRepository{db: db}
}

// Create appends a ticket row. The unique index on
// (employee_id, issue_date) backs invariant "one ticket per day"; its
// violation maps to ErrAlreadyIssued.
func (r *TicketRepository) Create(t *ticket.Ticket) error {
	if err := r.db.Create(t).Error; err != nil {
		if isDuplicate(err) {
			return ticket.ErrAlreadyIssued
		}
		return err
	}
	return nil
}

// HasTicketOn reports whether the employee already holds a ticket for day
func (r *TicketRepository) HasTicketOn(employeeID int64, day time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&ticket.Ticket{}).
		Where("employee_id = ? AND issue_date = ?", employeeID, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
