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

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

// SaveProject persists a new project.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		INSERT INTO projects (project_id, name, client_id, is_active, is_internal, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.ClientID,
		m.IsActive,
		m.IsInternal,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "project already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert project "+m.ProjectID, err)
	}
	return nil
}

// FindProjectByID retrieves a project by its ID.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
		SELECT project_id, name, client_id, is_active, is_internal, created_at, created_by, last_updated_at, last_updated_by
		FROM projects
		WHERE project_id = $1;
	`
	var m models.Project
	err := r.Pool.QueryRow(ctx, query, projectID).Scan(
		&m.ProjectID,
		&m.Name,
		&m.ClientID,
		&m.IsActive,
		&m.IsInternal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find project by ID "+projectID, err)
	}

	domainProject := mapping.ToDomainProject(m)
	return &domainProject, nil
}

// ListProjects retrieves projects ordered by name.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	query := `
		SELECT project_id, name, client_id, is_active, is_internal, created_at, created_by, last_updated_at, last_updated_by
		FROM projects
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var m models.Project
		if err := rows.Scan(
			&m.ProjectID,
			&m.Name,
			&m.ClientID,
			&m.IsActive,
			&m.IsInternal,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan project row", err)
		}
		projects = append(projects, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating project rows", err)
	}

	return mapping.ToDomainProjectSlice(projects), nil
}

// UpdateProject updates project details including the active flag.
func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		UPDATE projects
		SET name = $2,
		    client_id = $3,
		    is_active = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE project_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.ClientID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update project "+m.ProjectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project " + m.ProjectID + " not found for update")
	}
	return nil
}
