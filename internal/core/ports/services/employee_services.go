package services

import (
	"context"

	"github.com/hourstack/time_billing_app/internal/core/domain"
)

// EmployeeReaderSvc defines read operations for employee data
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a specific employee by ID.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves all employees.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
}
