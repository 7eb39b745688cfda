package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	"github.com/hourstack/time_billing_app/internal/models"
	"github.com/hourstack/time_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTimeEntryRepository struct {
	BaseRepository
}

func newPgxTimeEntryRepository(pool *pgxpool.Pool) portsrepo.TimeEntryRepositoryFacade {
	return &PgxTimeEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*PgxTimeEntryRepository)(nil)

// SaveTimeEntry persists a new time entry. The unique index on
// (employee_id, project_id, date) maps a second entry for the same day to
// ErrDuplicate.
func (r *PgxTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		INSERT INTO time_entries (entry_id, employee_id, project_id, date, hours, billable, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EmployeeID,
		m.ProjectID,
		m.Date,
		m.Hours,
		m.Billable,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "time entry already exists for employee "+m.EmployeeID+" on this project and date", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert time entry "+m.EntryID, err)
	}
	return nil
}

// FindTimeEntryByID retrieves a time entry by its ID.
func (r *PgxTimeEntryRepository) FindTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	query := `
		SELECT entry_id, employee_id, project_id, date, hours, billable, status, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM time_entries
		WHERE entry_id = $1;
	`
	var m models.TimeEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.EmployeeID,
		&m.ProjectID,
		&m.Date,
		&m.Hours,
		&m.Billable,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find time entry by ID "+entryID, err)
	}

	domainEntry := mapping.ToDomainTimeEntry(m)
	return &domainEntry, nil
}

// ListTimeEntries retrieves entries within [from, to], optionally restricted
// to one employee.
func (r *PgxTimeEntryRepository) ListTimeEntries(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.TimeEntry, error) {
	query := `
		SELECT entry_id, employee_id, project_id, date, hours, billable, status, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM time_entries
		WHERE date >= $1 AND date <= $2
	`
	args := []interface{}{from, to}
	if employeeID != nil {
		query += ` AND employee_id = $3`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY date, employee_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query time entries", err)
	}
	defer rows.Close()

	return r.scanTimeEntries(rows)
}

// FindUnbilledEntries retrieves the project's billable, normal-status entries
// not linked to any invoice. The exclusion is global across all invoices, so
// an entry billed once can never be billed again.
func (r *PgxTimeEntryRepository) FindUnbilledEntries(ctx context.Context, projectID string) ([]domain.TimeEntry, error) {
	query := `
		SELECT te.entry_id, te.employee_id, te.project_id, te.date, te.hours, te.billable, te.status, te.notes,
		       te.created_at, te.created_by, te.last_updated_at, te.last_updated_by
		FROM time_entries te
		WHERE te.project_id = $1
		  AND te.billable = TRUE
		  AND te.status = 'normal'
		  AND NOT EXISTS (
		      SELECT 1 FROM invoice_time_entries ite WHERE ite.time_entry_id = te.entry_id
		  )
		ORDER BY te.date, te.employee_id;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unbilled entries for project "+projectID, err)
	}
	defer rows.Close()

	return r.scanTimeEntries(rows)
}

func (r *PgxTimeEntryRepository) scanTimeEntries(rows pgx.Rows) ([]domain.TimeEntry, error) {
	entries := []models.TimeEntry{}
	for rows.Next() {
		var m models.TimeEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.EmployeeID,
			&m.ProjectID,
			&m.Date,
			&m.Hours,
			&m.Billable,
			&m.Status,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan time entry row", err)
		}
		entries = append(entries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating time entry rows", err)
	}

	return mapping.ToDomainTimeEntrySlice(entries), nil
}

// UpdateTimeEntry updates date, hours, billable flag, status and notes.
func (r *PgxTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		UPDATE time_entries
		SET date = $2,
		    hours = $3,
		    billable = $4,
		    status = $5,
		    notes = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.Date,
		m.Hours,
		m.Billable,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "time entry already exists for employee "+m.EmployeeID+" on this project and date", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update time entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("time entry " + m.EntryID + " not found for update")
	}
	return nil
}

// DeleteTimeEntry removes an entry. Entries already linked to an invoice are
// protected by the invoice_time_entries FK and are rejected as a conflict.
func (r *PgxTimeEntryRepository) DeleteTimeEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM time_entries WHERE entry_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewAppError(409, "time entry "+entryID+" is billed on an invoice and cannot be deleted", apperrors.ErrDuplicateBilling)
		}
		return apperrors.NewAppError(500, "failed to delete time entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("time entry " + entryID + " not found for delete")
	}
	return nil
}
