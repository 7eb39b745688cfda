package dto

import (
	"time"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name       string `json:"name" binding:"required"`
	ClientID   string `json:"clientID" binding:"required"`
	IsInternal bool   `json:"isInternal"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProjectRequest struct {
	Name     *string `json:"name"`
	ClientID *string `json:"clientID"`
	IsActive *bool   `json:"isActive"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID     string    `json:"projectID"`
	Name          string    `json:"name"`
	ClientID      string    `json:"clientID"`
	IsActive      bool      `json:"isActive"`
	IsInternal    bool      `json:"isInternal"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:     p.ProjectID,
		Name:          p.Name,
		ClientID:      p.ClientID,
		IsActive:      p.IsActive,
		IsInternal:    p.IsInternal,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListProjectResponse converts domain Projects to ProjectResponse DTOs
func ToListProjectResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		res[i] = ToProjectResponse(&p)
	}
	return res
}

// CreateProjectRoleRequest defines the data needed to create a project role.
type CreateProjectRoleRequest struct {
	Name          string          `json:"name" binding:"required"`
	HourlyRateUSD decimal.Decimal `json:"hourlyRateUSD" binding:"required,decimalgte0"`
}

// UpdateProjectRoleRequest defines the data allowed for updating a role.
type UpdateProjectRoleRequest struct {
	Name          *string          `json:"name"`
	HourlyRateUSD *decimal.Decimal `json:"hourlyRateUSD" binding:"omitempty,decimalgte0"`
}

// ProjectRoleResponse defines the data returned for a project role.
type ProjectRoleResponse struct {
	RoleID        string          `json:"roleID"`
	ProjectID     string          `json:"projectID"`
	Name          string          `json:"name"`
	HourlyRateUSD decimal.Decimal `json:"hourlyRateUSD"`
}

// ToProjectRoleResponse converts a domain.ProjectRole to its DTO
func ToProjectRoleResponse(r *domain.ProjectRole) ProjectRoleResponse {
	return ProjectRoleResponse{
		RoleID:        r.RoleID,
		ProjectID:     r.ProjectID,
		Name:          r.Name,
		HourlyRateUSD: r.HourlyRateUSD,
	}
}

// ToListProjectRoleResponse converts domain roles to ProjectRoleResponse DTOs
func ToListProjectRoleResponse(roles []domain.ProjectRole) []ProjectRoleResponse {
	res := make([]ProjectRoleResponse, len(roles))
	for i, r := range roles {
		res[i] = ToProjectRoleResponse(&r)
	}
	return res
}

// AssignEmployeeRequest defines the data for assigning an employee to a
// project. A nil roleID assigns without a billing role (rate resolves to 0).
type AssignEmployeeRequest struct {
	RoleID *string `json:"roleID"`
}

// AssignmentResponse defines the data returned for an assignment.
type AssignmentResponse struct {
	AssignmentID string  `json:"assignmentID"`
	EmployeeID   string  `json:"employeeID"`
	ProjectID    string  `json:"projectID"`
	RoleID       *string `json:"roleID"`
	AssignedBy   string  `json:"assignedBy"`
}

// ToAssignmentResponse converts a domain.ProjectAssignment to its DTO
func ToAssignmentResponse(a *domain.ProjectAssignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID: a.AssignmentID,
		EmployeeID:   a.EmployeeID,
		ProjectID:    a.ProjectID,
		RoleID:       a.RoleID,
		AssignedBy:   a.AssignedBy,
	}
}

// ToListAssignmentResponse converts domain assignments to AssignmentResponse DTOs
func ToListAssignmentResponse(assignments []domain.ProjectAssignment) []AssignmentResponse {
	res := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		res[i] = ToAssignmentResponse(&a)
	}
	return res
}
