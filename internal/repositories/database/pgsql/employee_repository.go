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

// PgxEmployeeRepository reads the employee directory. The directory is synced
// from the identity provider; no write path exists here.
type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

// FindEmployeeByID retrieves an employee by their ID.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT employee_id, name, email
		FROM employees
		WHERE employee_id = $1;
	`
	var m models.Employee
	err := r.Pool.QueryRow(ctx, query, employeeID).Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee by ID "+employeeID, err)
	}

	domainEmployee := mapping.ToDomainEmployee(m)
	return &domainEmployee, nil
}

// FindEmployeesByIDs retrieves multiple employees keyed by ID. IDs with no
// matching row are absent from the map.
func (r *PgxEmployeeRepository) FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	if len(employeeIDs) == 0 {
		return map[string]domain.Employee{}, nil
	}

	query := `
		SELECT employee_id, name, email
		FROM employees
		WHERE employee_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees by IDs", err)
	}
	defer rows.Close()

	employees := make(map[string]domain.Employee)
	for rows.Next() {
		var m models.Employee
		if err := rows.Scan(&m.EmployeeID, &m.Name, &m.Email); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		employees[m.EmployeeID] = mapping.ToDomainEmployee(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}

	return employees, nil
}

// ListEmployees retrieves all employees ordered by name.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT employee_id, name, email
		FROM employees
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var m models.Employee
		if err := rows.Scan(&m.EmployeeID, &m.Name, &m.Email); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		employees = append(employees, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}

	return mapping.ToDomainEmployeeSlice(employees), nil
}
