package employee

import (
	"errors"
	"log/slog"

	"github.com/frahmantamala/meal-ticket/internal"
)

var (
	ErrNotFound      = internal.ErrEmployeeNotFound
	ErrDuplicateCode = internal.ErrDuplicateCode
	errMissingFields = internal.ErrMissingFields
)

// Repository defines the data access methods for the roster.
type Repository interface {
	GetAll() ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	GetByCode(code string) (*Employee, error)
	Create(e *Employee) error
	Delete(id int64) error
}

// Service handles roster business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListEmployees returns the full roster ordered by name.
func (s *Service) ListEmployees() ([]*Employee, error) {
	employees, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

// CreateEmployee adds a roster entry. A duplicate code surfaces as
// ErrDuplicateCode; the web layer decides how loudly to report it.
func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp := &Employee{
		Name: dto.Name,
		Code: dto.Code,
	}

	if err := s.repo.Create(emp); err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			s.logger.Warn("duplicate employee code", "code", dto.Code)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "name", emp.Name)
	return emp, nil
}

// DeleteEmployee removes a roster entry together with its tickets.
func (s *Service) DeleteEmployee(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// FindByCode resolves a personal code to a roster entry.
func (s *Service) FindByCode(code string) (*Employee, error) {
	return s.repo.GetByCode(code)
}
