package pgsql

import (
	"context"
	"errors"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	"github.com/hourstack/time_billing_app/internal/models"
	"github.com/hourstack/time_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssignmentRepository struct {
	BaseRepository
}

func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

// UpsertAssignment creates or replaces the assignment for the
// (employee, project) pair. The pair is unique, so re-assigning just swaps
// the role.
func (r *PgxAssignmentRepository) UpsertAssignment(ctx context.Context, assignment domain.ProjectAssignment) error {
	m := mapping.ToModelProjectAssignment(assignment)
	query := `
		INSERT INTO employee_projects (assignment_id, employee_id, project_id, role_id, assigned_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, project_id) DO UPDATE
		SET role_id = EXCLUDED.role_id,
		    assigned_by = EXCLUDED.assigned_by,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AssignmentID,
		m.EmployeeID,
		m.ProjectID,
		m.RoleID,
		m.AssignedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert assignment for employee "+m.EmployeeID, err)
	}
	return nil
}

// FindAssignment retrieves the assignment for an (employee, project) pair.
func (r *PgxAssignmentRepository) FindAssignment(ctx context.Context, employeeID, projectID string) (*domain.ProjectAssignment, error) {
	query := `
		SELECT assignment_id, employee_id, project_id, role_id, assigned_by, created_at, created_by, last_updated_at, last_updated_by
		FROM employee_projects
		WHERE employee_id = $1 AND project_id = $2;
	`
	var m models.ProjectAssignment
	err := r.Pool.QueryRow(ctx, query, employeeID, projectID).Scan(
		&m.AssignmentID,
		&m.EmployeeID,
		&m.ProjectID,
		&m.RoleID,
		&m.AssignedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find assignment for employee "+employeeID+" on project "+projectID, err)
	}

	domainAssignment := mapping.ToDomainProjectAssignment(m)
	return &domainAssignment, nil
}

// ListAssignmentsByProject retrieves all assignments on a project.
func (r *PgxAssignmentRepository) ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error) {
	query := `
		SELECT assignment_id, employee_id, project_id, role_id, assigned_by, created_at, created_by, last_updated_at, last_updated_by
		FROM employee_projects
		WHERE project_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assignments for project "+projectID, err)
	}
	defer rows.Close()

	assignments := []models.ProjectAssignment{}
	for rows.Next() {
		var m models.ProjectAssignment
		if err := rows.Scan(
			&m.AssignmentID,
			&m.EmployeeID,
			&m.ProjectID,
			&m.RoleID,
			&m.AssignedBy,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan assignment row for project "+projectID, err)
		}
		assignments = append(assignments, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating assignment rows for project "+projectID, err)
	}

	return mapping.ToDomainProjectAssignmentSlice(assignments), nil
}

// DeleteAssignment removes the assignment for the (employee, project) pair.
func (r *PgxAssignmentRepository) DeleteAssignment(ctx context.Context, employeeID, projectID string) error {
	query := `DELETE FROM employee_projects WHERE employee_id = $1 AND project_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, employeeID, projectID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete assignment for employee "+employeeID+" on project "+projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("assignment for employee " + employeeID + " on project " + projectID + " not found")
	}
	return nil
}
