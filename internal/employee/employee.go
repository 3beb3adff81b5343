package employee

import (
	"strings"
)

// Employee is a roster entry. Code is the sole lookup key used from chat
// input and must stay unique across the roster.
type Employee struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Code string `json:"code" gorm:"uniqueIndex;not null"`
}

func (Employee) TableName() string {
	return "employees"
}

// CreateEmployeeDTO carries the admin form fields for a new roster entry.
type CreateEmployeeDTO struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (dto *CreateEmployeeDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Code = strings.TrimSpace(dto.Code)
}

func (dto CreateEmployeeDTO) Validate() error {
	if dto.Name == "" || dto.Code == "" {
		return errMissingFields
	}
	return nil
}
