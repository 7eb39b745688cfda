package services

import (
	"context"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/hourstack/time_billing_app/internal/dto"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a specific project by its ID.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves projects, optionally restricted to active ones.
	ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	// CreateProject persists a new project.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)

	// UpdateProject updates project details.
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
}

// RoleReaderSvc defines read operations for project role data
type RoleReaderSvc interface {
	// ListRolesByProject retrieves the billing roles defined on a project.
	ListRolesByProject(ctx context.Context, projectID string) ([]domain.ProjectRole, error)
}

// RoleWriterSvc defines write operations for project role data
type RoleWriterSvc interface {
	// CreateRole persists a new billing role on a project.
	CreateRole(ctx context.Context, projectID string, req dto.CreateProjectRoleRequest, creatorUserID string) (*domain.ProjectRole, error)

	// UpdateRole updates a role's name or hourly rate. Rate changes never
	// touch existing invoices; recalculation is a separate explicit action.
	UpdateRole(ctx context.Context, projectID string, roleID string, req dto.UpdateProjectRoleRequest, requestingUserID string) (*domain.ProjectRole, error)

	// DeleteRole removes a role that no assignment references.
	DeleteRole(ctx context.Context, projectID string, roleID string) error
}

// AssignmentReaderSvc defines read operations for project assignments
type AssignmentReaderSvc interface {
	// ListAssignmentsByProject retrieves the employee assignments of a project.
	ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error)
}

// AssignmentWriterSvc defines write operations for project assignments
type AssignmentWriterSvc interface {
	// AssignEmployee creates or replaces the employee's assignment on the
	// project, optionally binding it to a billing role.
	AssignEmployee(ctx context.Context, projectID string, employeeID string, req dto.AssignEmployeeRequest, requestingUserID string) (*domain.ProjectAssignment, error)

	// UnassignEmployee removes the employee's assignment from the project.
	UnassignEmployee(ctx context.Context, projectID string, employeeID string) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	RoleReaderSvc
	RoleWriterSvc
	AssignmentReaderSvc
	AssignmentWriterSvc
}
