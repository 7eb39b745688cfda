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
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxInvoiceExtrasRepository manages manual people lines, flat fees and fee
// attachments. Every mutation locks the owning invoice row, checks
// editability and re-derives the invoice totals in the same transaction.
type PgxInvoiceExtrasRepository struct {
	BaseRepository
}

func newPgxInvoiceExtrasRepository(pool *pgxpool.Pool) portsrepo.InvoiceExtrasRepositoryFacade {
	return &PgxInvoiceExtrasRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceExtrasRepositoryFacade = (*PgxInvoiceExtrasRepository)(nil)

// FindManualLinesByInvoiceID retrieves all manual people lines of an invoice.
func (r *PgxInvoiceExtrasRepository) FindManualLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceManualLine, error) {
	query := `
		SELECT manual_line_id, invoice_id, person_name, hours, rate_usd, description, line_total, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_manual_lines
		WHERE invoice_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query manual lines for invoice "+invoiceID, err)
	}
	defer rows.Close()

	lines := []models.InvoiceManualLine{}
	for rows.Next() {
		var m models.InvoiceManualLine
		if err := rows.Scan(
			&m.ManualLineID,
			&m.InvoiceID,
			&m.PersonName,
			&m.Hours,
			&m.RateUSD,
			&m.Description,
			&m.LineTotal,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan manual line row for invoice "+invoiceID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating manual line rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainInvoiceManualLineSlice(lines), nil
}

// FindManualLineByID retrieves a single manual line.
func (r *PgxInvoiceExtrasRepository) FindManualLineByID(ctx context.Context, manualLineID string) (*domain.InvoiceManualLine, error) {
	query := `
		SELECT manual_line_id, invoice_id, person_name, hours, rate_usd, description, line_total, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_manual_lines
		WHERE manual_line_id = $1;
	`
	var m models.InvoiceManualLine
	err := r.Pool.QueryRow(ctx, query, manualLineID).Scan(
		&m.ManualLineID,
		&m.InvoiceID,
		&m.PersonName,
		&m.Hours,
		&m.RateUSD,
		&m.Description,
		&m.LineTotal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find manual line by ID "+manualLineID, err)
	}

	domainLine := mapping.ToDomainInvoiceManualLine(m)
	return &domainLine, nil
}

// AddManualLine appends a manual line to an editable invoice and re-derives
// the totals.
func (r *PgxInvoiceExtrasRepository) AddManualLine(ctx context.Context, line domain.InvoiceManualLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, line.InvoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	m := mapping.ToModelInvoiceManualLine(line)
	query := `
		INSERT INTO invoice_manual_lines (manual_line_id, invoice_id, person_name, hours, rate_usd, description, line_total, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.ManualLineID,
		m.InvoiceID,
		m.PersonName,
		m.Hours,
		m.RateUSD,
		m.Description,
		m.LineTotal,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert manual line "+m.ManualLineID, err)
	}

	if err := recomputeTotalsTx(ctx, tx, m.InvoiceID, m.CreatedBy, m.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateManualLine updates a manual line on an editable invoice and
// re-derives the totals.
func (r *PgxInvoiceExtrasRepository) UpdateManualLine(ctx context.Context, line domain.InvoiceManualLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, line.InvoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	m := mapping.ToModelInvoiceManualLine(line)
	query := `
		UPDATE invoice_manual_lines
		SET person_name = $3,
		    hours = $4,
		    rate_usd = $5,
		    description = $6,
		    line_total = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE invoice_id = $1 AND manual_line_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.ManualLineID,
		m.PersonName,
		m.Hours,
		m.RateUSD,
		m.Description,
		m.LineTotal,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update manual line "+m.ManualLineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("manual line " + m.ManualLineID + " not found on invoice " + m.InvoiceID)
	}

	if err := recomputeTotalsTx(ctx, tx, m.InvoiceID, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteManualLine removes a manual line from an editable invoice and
// re-derives the totals.
func (r *PgxInvoiceExtrasRepository) DeleteManualLine(ctx context.Context, invoiceID, manualLineID string) error {
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

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoice_manual_lines WHERE invoice_id = $1 AND manual_line_id = $2;`, invoiceID, manualLineID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete manual line "+manualLineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("manual line " + manualLineID + " not found on invoice " + invoiceID)
	}

	if err := recomputeTotalsTx(ctx, tx, invoiceID, locked.LastUpdatedBy, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindFeesByInvoiceID retrieves all flat fees of an invoice.
func (r *PgxInvoiceExtrasRepository) FindFeesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceFee, error) {
	query := `
		SELECT fee_id, invoice_id, label, quantity, unit_price_usd, description, fee_total, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_fees
		WHERE invoice_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fees for invoice "+invoiceID, err)
	}
	defer rows.Close()

	fees := []models.InvoiceFee{}
	for rows.Next() {
		var m models.InvoiceFee
		if err := rows.Scan(
			&m.FeeID,
			&m.InvoiceID,
			&m.Label,
			&m.Quantity,
			&m.UnitPriceUSD,
			&m.Description,
			&m.FeeTotal,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fee row for invoice "+invoiceID, err)
		}
		fees = append(fees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fee rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainInvoiceFeeSlice(fees), nil
}

// FindFeeByID retrieves a single fee.
func (r *PgxInvoiceExtrasRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.InvoiceFee, error) {
	query := `
		SELECT fee_id, invoice_id, label, quantity, unit_price_usd, description, fee_total, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_fees
		WHERE fee_id = $1;
	`
	var m models.InvoiceFee
	err := r.Pool.QueryRow(ctx, query, feeID).Scan(
		&m.FeeID,
		&m.InvoiceID,
		&m.Label,
		&m.Quantity,
		&m.UnitPriceUSD,
		&m.Description,
		&m.FeeTotal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fee by ID "+feeID, err)
	}

	domainFee := mapping.ToDomainInvoiceFee(m)
	return &domainFee, nil
}

// AddFee appends a fee to an editable invoice and re-derives the totals.
func (r *PgxInvoiceExtrasRepository) AddFee(ctx context.Context, fee domain.InvoiceFee) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, fee.InvoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	m := mapping.ToModelInvoiceFee(fee)
	query := `
		INSERT INTO invoice_fees (fee_id, invoice_id, label, quantity, unit_price_usd, description, fee_total, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.FeeID,
		m.InvoiceID,
		m.Label,
		m.Quantity,
		m.UnitPriceUSD,
		m.Description,
		m.FeeTotal,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fee "+m.FeeID, err)
	}

	if err := recomputeTotalsTx(ctx, tx, m.InvoiceID, m.CreatedBy, m.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateFee updates a fee on an editable invoice and re-derives the totals.
func (r *PgxInvoiceExtrasRepository) UpdateFee(ctx context.Context, fee domain.InvoiceFee) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockInvoiceTx(ctx, tx, fee.InvoiceID)
	if err != nil {
		return err
	}
	if err := requireEditableTx(locked); err != nil {
		return err
	}

	m := mapping.ToModelInvoiceFee(fee)
	query := `
		UPDATE invoice_fees
		SET label = $3,
		    quantity = $4,
		    unit_price_usd = $5,
		    description = $6,
		    fee_total = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE invoice_id = $1 AND fee_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.FeeID,
		m.Label,
		m.Quantity,
		m.UnitPriceUSD,
		m.Description,
		m.FeeTotal,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fee "+m.FeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fee " + m.FeeID + " not found on invoice " + m.InvoiceID)
	}

	if err := recomputeTotalsTx(ctx, tx, m.InvoiceID, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteFee removes a fee along with its attachment records and re-derives
// the totals.
func (r *PgxInvoiceExtrasRepository) DeleteFee(ctx context.Context, invoiceID, feeID string) error {
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

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_fee_attachments WHERE fee_id = $1;`, feeID); err != nil {
		return apperrors.NewAppError(500, "failed to delete attachments for fee "+feeID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoice_fees WHERE invoice_id = $1 AND fee_id = $2;`, invoiceID, feeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete fee "+feeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fee " + feeID + " not found on invoice " + invoiceID)
	}

	if err := recomputeTotalsTx(ctx, tx, invoiceID, locked.LastUpdatedBy, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindAttachmentsByFeeID retrieves the attachment records of a fee.
func (r *PgxInvoiceExtrasRepository) FindAttachmentsByFeeID(ctx context.Context, feeID string) ([]domain.InvoiceFeeAttachment, error) {
	query := `
		SELECT attachment_id, fee_id, file_name, file_url, file_size, created_at, created_by
		FROM invoice_fee_attachments
		WHERE fee_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, feeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachments for fee "+feeID, err)
	}
	defer rows.Close()

	attachments := []models.InvoiceFeeAttachment{}
	for rows.Next() {
		var m models.InvoiceFeeAttachment
		if err := rows.Scan(
			&m.AttachmentID,
			&m.FeeID,
			&m.FileName,
			&m.FileURL,
			&m.FileSize,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row for fee "+feeID, err)
		}
		attachments = append(attachments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows for fee "+feeID, err)
	}

	return mapping.ToDomainFeeAttachmentSlice(attachments), nil
}

// AddFeeAttachment records attachment metadata on a fee. Attachments are
// documentary and do not affect totals, but the invoice must still be
// editable.
func (r *PgxInvoiceExtrasRepository) AddFeeAttachment(ctx context.Context, invoiceID string, attachment domain.InvoiceFeeAttachment) error {
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
		INSERT INTO invoice_fee_attachments (attachment_id, fee_id, file_name, file_url, file_size, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		attachment.AttachmentID,
		attachment.FeeID,
		attachment.FileName,
		attachment.FileURL,
		attachment.FileSize,
		attachment.CreatedAt,
		attachment.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert attachment "+attachment.AttachmentID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteFeeAttachment removes an attachment record.
func (r *PgxInvoiceExtrasRepository) DeleteFeeAttachment(ctx context.Context, invoiceID, feeID, attachmentID string) error {
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

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoice_fee_attachments WHERE fee_id = $1 AND attachment_id = $2;`, feeID, attachmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete attachment "+attachmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("attachment " + attachmentID + " not found on fee " + feeID)
	}

	return r.Commit(ctx, tx)
}
