package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
)

// projectService manages projects, their billing roles and employee
// assignments.
type projectService struct {
	projectRepo    portsrepo.ProjectRepositoryFacade
	roleRepo       portsrepo.RoleRepositoryFacade
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	employeeRepo   portsrepo.EmployeeRepositoryFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, roleRepo portsrepo.RoleRepositoryFacade, assignmentRepo portsrepo.AssignmentRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo:    projectRepo,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject persists a new active project.
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:  uuid.NewString(),
		Name:       req.Name,
		ClientID:   req.ClientID,
		IsActive:   true,
		IsInternal: req.IsInternal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		logger.Error("Failed to save project", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return &project, nil
}

// GetProjectByID retrieves a project.
func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

// ListProjects retrieves projects, optionally restricted to active ones.
func (s *projectService) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	return s.projectRepo.ListProjects(ctx, activeOnly)
}

// UpdateProject updates project details. Projects are deactivated via
// IsActive, never deleted.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ClientID != nil {
		project.ClientID = *req.ClientID
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}
	project.LastUpdatedAt = time.Now().UTC()
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}

	return project, nil
}

// CreateRole persists a new billing role on a project.
func (s *projectService) CreateRole(ctx context.Context, projectID string, req dto.CreateProjectRoleRequest, creatorUserID string) (*domain.ProjectRole, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	role := domain.ProjectRole{
		RoleID:        uuid.NewString(),
		ProjectID:     projectID,
		Name:          req.Name,
		HourlyRateUSD: req.HourlyRateUSD,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.roleRepo.SaveRole(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to save role: %w", err)
	}

	return &role, nil
}

// ListRolesByProject retrieves the billing roles defined on a project.
func (s *projectService) ListRolesByProject(ctx context.Context, projectID string) ([]domain.ProjectRole, error) {
	return s.roleRepo.ListRolesByProject(ctx, projectID)
}

// UpdateRole updates a role's name or hourly rate. Existing invoices keep
// their snapshots; recalculation is an explicit separate operation.
func (s *projectService) UpdateRole(ctx context.Context, projectID string, roleID string, req dto.UpdateProjectRoleRequest, requestingUserID string) (*domain.ProjectRole, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role.ProjectID != projectID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.HourlyRateUSD != nil {
		role.HourlyRateUSD = *req.HourlyRateUSD
	}
	role.LastUpdatedAt = time.Now().UTC()
	role.LastUpdatedBy = requestingUserID

	if err := s.roleRepo.UpdateRole(ctx, *role); err != nil {
		return nil, fmt.Errorf("failed to update role %s: %w", roleID, err)
	}

	return role, nil
}

// DeleteRole removes a role that no assignment references.
func (s *projectService) DeleteRole(ctx context.Context, projectID string, roleID string) error {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.ProjectID != projectID {
		return apperrors.ErrNotFound
	}

	count, err := s.roleRepo.CountAssignmentsByRole(ctx, roleID)
	if err != nil {
		return fmt.Errorf("failed to count assignments for role %s: %w", roleID, err)
	}
	if count > 0 {
		return fmt.Errorf("role %s has %d assignments: %w", roleID, count, apperrors.ErrRoleInUse)
	}

	return s.roleRepo.DeleteRole(ctx, roleID)
}

// AssignEmployee creates or replaces the employee's assignment on the
// project. A role from another project is rejected.
func (s *projectService) AssignEmployee(ctx context.Context, projectID string, employeeID string, req dto.AssignEmployeeRequest, requestingUserID string) (*domain.ProjectAssignment, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}

	if req.RoleID != nil {
		role, err := s.roleRepo.FindRoleByID(ctx, *req.RoleID)
		if err != nil {
			return nil, err
		}
		if role.ProjectID != projectID {
			return nil, fmt.Errorf("role %s belongs to another project: %w", *req.RoleID, apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	assignment := domain.ProjectAssignment{
		AssignmentID: uuid.NewString(),
		EmployeeID:   employeeID,
		ProjectID:    projectID,
		RoleID:       req.RoleID,
		AssignedBy:   requestingUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.assignmentRepo.UpsertAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to upsert assignment: %w", err)
	}

	// The upsert may have kept the original assignment row; return what is
	// actually stored.
	return s.assignmentRepo.FindAssignment(ctx, employeeID, projectID)
}

// ListAssignmentsByProject retrieves the assignments on a project.
func (s *projectService) ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error) {
	return s.assignmentRepo.ListAssignmentsByProject(ctx, projectID)
}

// UnassignEmployee removes the employee's assignment from the project.
func (s *projectService) UnassignEmployee(ctx context.Context, projectID string, employeeID string) error {
	return s.assignmentRepo.DeleteAssignment(ctx, employeeID, projectID)
}
