package services

import (
	"context"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
)

// employeeService exposes the read-only employee directory.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// GetEmployeeByID retrieves a single employee.
func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

// ListEmployees retrieves all employees.
func (s *employeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employeeRepo.ListEmployees(ctx)
}
