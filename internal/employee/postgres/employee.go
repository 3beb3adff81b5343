package postgres

import (
	"errors"

	"github.com/frahmantamala/meal-ticket/internal/employee"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new roster repository
func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// GetAll returns the roster ordered by name
func (r *EmployeeRepository) GetAll() ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Order("name ASC").Find(&employees).Error
	return employees, err
}

// GetByID retrieves an employee by its ID
func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// GetByCode retrieves an employee by its unique personal code
func (r *EmployeeRepository) GetByCode(code string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("code = ?", code).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Create saves a new employee; a taken code maps to ErrDuplicateCode
func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	if err := r.db.Create(emp).Error; err != nil {
		if isDuplicate(err) {
			return employee.ErrDuplicateCode
		}
		return err
	}
	return nil
}

// Delete removes an employee and all tickets issued to them
func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM tickets WHERE employee_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM employees WHERE id = ?", id).Error
	})
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
