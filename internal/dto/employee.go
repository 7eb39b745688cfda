package dto

import "github.com/hourstack/time_billing_app/internal/core/domain"

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID string `json:"employeeID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
	}
}

// ToListEmployeeResponse converts domain Employees to EmployeeResponse DTOs
func ToListEmployeeResponse(employees []domain.Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = ToEmployeeResponse(&e)
	}
	return res
}
