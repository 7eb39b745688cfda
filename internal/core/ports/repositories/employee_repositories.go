package repositories

import (
	"context"

	"github.com/hourstack/time_billing_app/internal/core/domain"
)

// EmployeeReader defines read operations against the employee directory.
// The directory is a projection of the external identity provider; this
// service never writes it.
type EmployeeReader interface {
	// FindEmployeeByID retrieves a single employee by ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeesByIDs retrieves multiple employees keyed by ID. Missing IDs
	// are simply absent from the map.
	FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error)

	// ListEmployees retrieves all employees ordered by name.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// EmployeeRepositoryFacade combines all employee repository interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
}
