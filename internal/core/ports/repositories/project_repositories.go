package repositories

import (
	"context"

	"github.com/hourstack/time_billing_app/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its unique identifier.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves projects, optionally restricted to active ones.
	ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates project details including the active flag.
	// Projects are never deleted.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}

// RoleReader defines read operations for project role data
type RoleReader interface {
	// FindRoleByID retrieves a project role by its unique identifier.
	FindRoleByID(ctx context.Context, roleID string) (*domain.ProjectRole, error)

	// ListRolesByProject retrieves all roles for a project ordered by name.
	ListRolesByProject(ctx context.Context, projectID string) ([]domain.ProjectRole, error)

	// CountAssignmentsByRole returns how many assignments reference the role.
	CountAssignmentsByRole(ctx context.Context, roleID string) (int64, error)
}

// RoleWriter defines write operations for project role data
type RoleWriter interface {
	// SaveRole persists a new project role.
	SaveRole(ctx context.Context, role domain.ProjectRole) error

	// UpdateRole updates a role's name and hourly rate.
	UpdateRole(ctx context.Context, role domain.ProjectRole) error

	// DeleteRole removes a role. Callers must check the referential guard
	// first; the repository additionally maps FK violations to ErrRoleInUse.
	DeleteRole(ctx context.Context, roleID string) error
}

// RoleRepositoryFacade combines all role repository interfaces.
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}

// AssignmentReader defines read operations for employee-project assignments
type AssignmentReader interface {
	// FindAssignment retrieves the single assignment for an
	// (employee, project) pair, or ErrNotFound.
	FindAssignment(ctx context.Context, employeeID, projectID string) (*domain.ProjectAssignment, error)

	// ListAssignmentsByProject retrieves all assignments on a project.
	ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error)
}

// AssignmentWriter defines write operations for employee-project assignments
type AssignmentWriter interface {
	// UpsertAssignment creates or replaces the assignment for the
	// (employee, project) pair, keeping at most one per pair.
	UpsertAssignment(ctx context.Context, assignment domain.ProjectAssignment) error

	// DeleteAssignment removes the assignment for the (employee, project) pair.
	DeleteAssignment(ctx context.Context, employeeID, projectID string) error
}

// AssignmentRepositoryFacade combines all assignment repository interfaces.
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
