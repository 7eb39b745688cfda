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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(pool *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

// SaveRole persists a new project role.
func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.ProjectRole) error {
	m := mapping.ToModelProjectRole(role)
	query := `
		INSERT INTO project_roles (role_id, project_id, name, hourly_rate_usd, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RoleID,
		m.ProjectID,
		m.Name,
		m.HourlyRateUSD,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert role "+m.RoleID, err)
	}
	return nil
}

// FindRoleByID retrieves a role by its ID.
func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.ProjectRole, error) {
	query := `
		SELECT role_id, project_id, name, hourly_rate_usd, created_at, created_by, last_updated_at, last_updated_by
		FROM project_roles
		WHERE role_id = $1;
	`
	var m models.ProjectRole
	err := r.Pool.QueryRow(ctx, query, roleID).Scan(
		&m.RoleID,
		&m.ProjectID,
		&m.Name,
		&m.HourlyRateUSD,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find role by ID "+roleID, err)
	}

	domainRole := mapping.ToDomainProjectRole(m)
	return &domainRole, nil
}

// ListRolesByProject retrieves the roles of a project ordered by name.
func (r *PgxRoleRepository) ListRolesByProject(ctx context.Context, projectID string) ([]domain.ProjectRole, error) {
	query := `
		SELECT role_id, project_id, name, hourly_rate_usd, created_at, created_by, last_updated_at, last_updated_by
		FROM project_roles
		WHERE project_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles for project "+projectID, err)
	}
	defer rows.Close()

	roles := []models.ProjectRole{}
	for rows.Next() {
		var m models.ProjectRole
		if err := rows.Scan(
			&m.RoleID,
			&m.ProjectID,
			&m.Name,
			&m.HourlyRateUSD,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan role row for project "+projectID, err)
		}
		roles = append(roles, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating role rows for project "+projectID, err)
	}

	return mapping.ToDomainProjectRoleSlice(roles), nil
}

// CountAssignmentsByRole returns how many assignments reference the role.
func (r *PgxRoleRepository) CountAssignmentsByRole(ctx context.Context, roleID string) (int64, error) {
	query := `SELECT COUNT(*) FROM employee_projects WHERE role_id = $1;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, roleID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count assignments for role "+roleID, err)
	}
	return count, nil
}

// UpdateRole updates a role's name and hourly rate. Existing invoice
// snapshots are untouched; recalculation is a separate explicit action.
func (r *PgxRoleRepository) UpdateRole(ctx context.Context, role domain.ProjectRole) error {
	m := mapping.ToModelProjectRole(role)
	query := `
		UPDATE project_roles
		SET name = $2,
		    hourly_rate_usd = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE role_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.RoleID,
		m.Name,
		m.HourlyRateUSD,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role "+m.RoleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("role " + m.RoleID + " not found for update")
	}
	return nil
}

// DeleteRole removes a role. A foreign key violation from a still-referencing
// assignment maps to ErrRoleInUse.
func (r *PgxRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	query := `DELETE FROM project_roles WHERE role_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, roleID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewAppError(409, "role "+roleID+" is referenced by assignments", apperrors.ErrRoleInUse)
		}
		return apperrors.NewAppError(500, "failed to delete role "+roleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("role " + roleID + " not found for delete")
	}
	return nil
}
