package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	"github.com/hourstack/time_billing_app/internal/models"
	"github.com/hourstack/time_billing_app/internal/utils/mapping"
	"github.com/hourstack/time_billing_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice and line data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, project_id, status, subtotal, discount, total, notes, invoice_number, issue_date, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.ProjectID,
		&m.Status,
		&m.Subtotal,
		&m.Discount,
		&m.Total,
		&m.Notes,
		&m.InvoiceNumber,
		&m.IssueDate,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockInvoiceTx fetches the invoice row FOR UPDATE so that concurrent
// mutations of the same invoice serialize on the row lock.
func lockInvoiceTx(ctx context.Context, tx pgx.Tx, invoiceID string) (models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Invoice{}, apperrors.ErrNotFound
		}
		return models.Invoice{}, apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}
	return m, nil
}

// requireEditableTx enforces the editability gate on the locked invoice state.
func requireEditableTx(m models.Invoice) error {
	if !domain.InvoiceStatus(m.Status).IsEditable() {
		return apperrors.NewAppError(409, "invoice "+m.InvoiceID+" is not editable in status "+string(m.Status), apperrors.ErrNotEditable)
	}
	return nil
}

// recomputeTotalsTx re-derives subtotal and total from the stored lines,
// manual lines and fees. The total is clamped at zero when the discount
// exceeds the subtotal.
func recomputeTotalsTx(ctx context.Context, tx pgx.Tx, invoiceID, updatedBy string, updatedAt time.Time) error {
	query := `
		WITH sums AS (
			SELECT COALESCE((SELECT SUM(amount) FROM invoice_lines WHERE invoice_id = $1), 0)
			     + COALESCE((SELECT SUM(line_total) FROM invoice_manual_lines WHERE invoice_id = $1), 0)
			     + COALESCE((SELECT SUM(fee_total) FROM invoice_fees WHERE invoice_id = $1), 0) AS subtotal
		)
		UPDATE invoices i
		SET subtotal = sums.subtotal,
		    total = GREATEST(sums.subtotal - i.discount, 0),
		    last_updated_at = $2,
		    last_updated_by = $3
		FROM sums
		WHERE i.invoice_id = $1;
	`
	if _, err := tx.Exec(ctx, query, invoiceID, updatedAt, updatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to recompute totals for invoice "+invoiceID, err)
	}
	return nil
}

// SaveInvoiceWithLines persists the invoice, its billed-time lines and the
// time-entry links in one transaction, then derives the stored totals. A
// conflicting link on any entry aborts the whole pipeline.
func (r *PgxInvoiceRepository) SaveInvoiceWithLines(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine, entryIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	invoiceQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		m.InvoiceID,
		m.ProjectID,
		m.Status,
		m.Subtotal,
		m.Discount,
		m.Total,
		m.Notes,
		m.InvoiceNumber,
		m.IssueDate,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, employee_id, employee_name, role_name, hours, rate_snapshot, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		ml := mapping.ToModelInvoiceLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.InvoiceID,
			ml.EmployeeID,
			ml.EmployeeName,
			ml.RoleName,
			ml.Hours,
			ml.RateSnapshot,
			ml.Amount,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}

	// time_entry_id is globally unique across invoices; the insert trips the
	// unique index if any entry was billed elsewhere.
	linkQuery := `
		INSERT INTO invoice_time_entries (link_id, invoice_id, time_entry_id)
		VALUES ($1, $2, $3);
	`
	for _, entryID := range entryIDs {
		batch.Queue(linkQuery, uuid.NewString(), m.InvoiceID, entryID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "a time entry is already billed on another invoice", apperrors.ErrDuplicateBilling)
		}
		return apperrors.NewAppError(500, "failed to execute line batch for invoice "+m.InvoiceID, err)
	}

	if err := recomputeTotalsTx(ctx, tx, m.InvoiceID, m.CreatedBy, m.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	domainInvoice := mapping.ToDomainInvoice(m)
	return &domainInvoice, nil
}

// ListInvoices retrieves a paginated list of invoices using token-based
// pagination, optionally filtered by project and status.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, projectID *string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices`
	orderByClause := `ORDER BY created_at DESC, invoice_id DESC`

	clauses := []string{}
	args := []interface{}{}
	if projectID != nil {
		args = append(args, *projectID)
		clauses = append(clauses, "project_id = $"+strconv.Itoa(len(args)))
	}
	if status != nil {
		args = append(args, string(*status))
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		clauses = append(clauses, "(created_at, invoice_id) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}

	query := baseQuery
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	modelInvoices := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var nextTokenVal *string
	results := modelInvoices
	if len(modelInvoices) > limit {
		last := modelInvoices[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.InvoiceID)
		nextTokenVal = &token
		results = modelInvoices[:limit]
	}

	return mapping.ToDomainInvoiceSlice(results), nextTokenVal, nil
}

// ListUnpaidInvoicesByProject retrieves the project's draft and sent invoices
// ordered newest first.
func (r *PgxInvoiceRepository) ListUnpaidInvoicesByProject(ctx context.Context, projectID string, latestOnly bool) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE project_id = $1 AND status IN ('draft', 'sent')
		ORDER BY created_at DESC, invoice_id DESC
	`
	if latestOnly {
		query += ` LIMIT 1`
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unpaid invoices for project "+projectID, err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row for project "+projectID, scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows for project "+projectID, err)
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

// GetInvoiceSummary aggregates draft counts and unpaid/paid totals.
func (r *PgxInvoiceRepository) GetInvoiceSummary(ctx context.Context) (*domain.InvoiceSummary, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status = 'draft'),
		       COALESCE(SUM(total) FILTER (WHERE status IN ('draft', 'sent')), 0),
		       COALESCE(SUM(total) FILTER (WHERE status = 'paid'), 0)
		FROM invoices;
	`
	var summary domain.InvoiceSummary
	err := r.Pool.QueryRow(ctx, query).Scan(
		&summary.DraftCount,
		&summary.UnpaidTotal,
		&summary.PaidTotal,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice summary", err)
	}
	return &summary, nil
}

// FindLinesByInvoiceID retrieves all billed-time lines for an invoice.
func (r *PgxInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `
		SELECT line_id, invoice_id, employee_id, employee_name, role_name, hours, rate_snapshot, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY employee_name;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for invoice "+invoiceID, err)
	}
	defer rows.Close()

	lines := []models.InvoiceLine{}
	for rows.Next() {
		var m models.InvoiceLine
		if err := rows.Scan(
			&m.LineID,
			&m.InvoiceID,
			&m.EmployeeID,
			&m.EmployeeName,
			&m.RoleName,
			&m.Hours,
			&m.RateSnapshot,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for invoice "+invoiceID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainInvoiceLineSlice(lines), nil
}

// FindLinkedEntryIDs retrieves the time entry IDs linked to an invoice.
func (r *PgxInvoiceRepository) FindLinkedEntryIDs(ctx context.Context, invoiceID string) ([]string, error) {
	query := `SELECT time_entry_id FROM invoice_time_entries WHERE invoice_id = $1;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query linked entries for invoice "+invoiceID, err)
	}
	defer rows.Close()

	entryIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan linked entry row for invoice "+invoiceID, err)
		}
		entryIDs = append(entryIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating linked entry rows for invoice "+invoiceID, err)
	}
	return entryIDs, nil
}

// UpdateInvoiceDetails updates notes, invoice number, issue/due dates and
// discount on an editable invoice, then re-derives the totals.
func (r *PgxInvoiceRepository) UpdateInvoiceDetails(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, invoice.InvoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET notes = $2,
		    invoice_number = $3,
		    issue_date = $4,
		    due_date = $5,
		    discount = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE invoice_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.Notes,
		m.InvoiceNumber,
		m.IssueDate,
		m.DueDate,
		m.Discount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}

	if err := recomputeTotalsTx(ctx, tx, m.InvoiceID, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// TransitionInvoiceStatus validates the move against the lifecycle table under
// the row lock, applies it, re-derives the totals in the same transaction and
// returns the invoice as persisted.
func (r *PgxInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, to domain.InvoiceStatus, updatedBy string, updatedAt time.Time) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	from := domain.InvoiceStatus(locked.Status)
	if !from.CanTransition(to) {
		return nil, apperrors.NewAppError(409, "invoice "+invoiceID+" cannot move from "+string(from)+" to "+string(to), apperrors.ErrInvalidTransition)
	}

	query := `
		UPDATE invoices
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE invoice_id = $1;
	`
	_, err = tx.Exec(ctx, query, invoiceID, string(to), updatedAt, updatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to transition invoice "+invoiceID, err)
	}

	if err := recomputeTotalsTx(ctx, tx, invoiceID, updatedBy, updatedAt); err != nil {
		return nil, err
	}

	readBack := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(tx.QueryRow(ctx, readBack, invoiceID))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read back invoice "+invoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainInvoice := mapping.ToDomainInvoice(m)
	return &domainInvoice, nil
}

// UpdateLineRates overwrites rate_snapshot, role_name and amount on the given
// lines of an editable invoice, leaving hours untouched, then re-derives the
// totals. Used by recalculation.
func (r *PgxInvoiceRepository) UpdateLineRates(ctx context.Context, invoiceID string, lines []domain.InvoiceLine, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	query := `
		UPDATE invoice_lines
		SET rate_snapshot = $3,
		    role_name = $4,
		    amount = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE invoice_id = $1 AND line_id = $2;
	`
	for _, line := range lines {
		ml := mapping.ToModelInvoiceLine(line)
		batch.Queue(query, invoiceID, ml.LineID, ml.RateSnapshot, ml.RoleName, ml.Amount, updatedAt, updatedBy)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute rate update batch for invoice "+invoiceID, err)
	}

	if err := recomputeTotalsTx(ctx, tx, invoiceID, updatedBy, updatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateLineHours rewrites a line's hours and re-derives its amount from the
// stored rate snapshot, then re-derives the invoice totals.
func (r *PgxInvoiceRepository) UpdateLineHours(ctx context.Context, invoiceID, lineID string, hours decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	query := `
		UPDATE invoice_lines
		SET hours = $3,
		    amount = $3 * rate_snapshot,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE invoice_id = $1 AND line_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query, invoiceID, lineID, hours, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update hours on line "+lineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("line " + lineID + " not found on invoice " + invoiceID)
	}

	if err := recomputeTotalsTx(ctx, tx, invoiceID, updatedBy, updatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteLine removes a billed-time line from an editable invoice and
// re-derives the totals. The time entries behind the line stay linked.
func (r *PgxInvoiceRepository) DeleteLine(ctx context.Context, invoiceID, lineID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1 AND line_id = $2;`, invoiceID, lineID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete line "+lineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("line " + lineID + " not found on invoice " + invoiceID)
	}

	if err := recomputeTotalsTx(ctx, tx, invoiceID, locked.LastUpdatedBy, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftInvoice removes a draft invoice with all children and links,
// freeing its time entries for future billing.
func (r *PgxInvoiceRepository) DeleteDraftInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if domain.InvoiceStatus(locked.Status) != domain.InvoiceDraft {
		return apperrors.NewAppError(409, "invoice "+invoiceID+" is not a draft", apperrors.ErrNotEditable)
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM invoice_fee_attachments WHERE fee_id IN (SELECT fee_id FROM invoice_fees WHERE invoice_id = $1);`, invoiceID)
	batch.Queue(`DELETE FROM invoice_fees WHERE invoice_id = $1;`, invoiceID)
	batch.Queue(`DELETE FROM invoice_manual_lines WHERE invoice_id = $1;`, invoiceID)
	batch.Queue(`DELETE FROM invoice_lines WHERE invoice_id = $1;`, invoiceID)
	batch.Queue(`DELETE FROM invoice_time_entries WHERE invoice_id = $1;`, invoiceID)
	batch.Queue(`DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to delete draft invoice "+invoiceID, err)
	}

	return r.Commit(ctx, tx)
}
