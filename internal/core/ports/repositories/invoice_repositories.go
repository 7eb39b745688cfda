package repositories

import (
	"context"
	"time"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices using token-based
	// pagination, optionally filtered by project and status.
	// It returns the invoices, a token for the next page, and an error.
	ListInvoices(ctx context.Context, projectID *string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ListUnpaidInvoicesByProject retrieves the project's draft and sent
	// invoices ordered newest first. With latestOnly, at most one is returned.
	ListUnpaidInvoicesByProject(ctx context.Context, projectID string, latestOnly bool) ([]domain.Invoice, error)

	// GetInvoiceSummary aggregates counts and totals per status bucket.
	GetInvoiceSummary(ctx context.Context) (*domain.InvoiceSummary, error)
}

// InvoiceLineReader defines read operations for billed-time lines and links
type InvoiceLineReader interface {
	// FindLinesByInvoiceID retrieves all billed-time lines for an invoice.
	FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)

	// FindLinkedEntryIDs retrieves the time entry IDs linked to an invoice.
	FindLinkedEntryIDs(ctx context.Context, invoiceID string) ([]string, error)
}

// InvoiceWriter defines write operations for invoices. Every method that
// mutates an existing invoice runs in a single database transaction that
// locks the invoice row, enforces the editability gate on the locked state
// and recomputes subtotal/total before committing.
type InvoiceWriter interface {
	// SaveInvoiceWithLines persists the invoice, its billed-time lines and the
	// time-entry links atomically, then derives the stored totals. A link
	// conflict on any entry aborts the whole pipeline with ErrDuplicateBilling.
	SaveInvoiceWithLines(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine, entryIDs []string) error

	// UpdateInvoiceDetails updates notes, invoice number, issue/due dates and
	// discount on an editable invoice, then resums.
	UpdateInvoiceDetails(ctx context.Context, invoice domain.Invoice) error

	// TransitionInvoiceStatus validates the move against the domain transition
	// table under the row lock, applies it and resums in the same transaction.
	// Returns the invoice as persisted.
	TransitionInvoiceStatus(ctx context.Context, invoiceID string, to domain.InvoiceStatus, updatedBy string, updatedAt time.Time) (*domain.Invoice, error)

	// UpdateLineRates overwrites rate_snapshot, role_name and amount on the
	// given lines of an editable invoice, leaving hours untouched, then resums.
	UpdateLineRates(ctx context.Context, invoiceID string, lines []domain.InvoiceLine, updatedBy string, updatedAt time.Time) error

	// UpdateLineHours rewrites a line's hours, re-derives its amount from the
	// stored rate snapshot and resums.
	UpdateLineHours(ctx context.Context, invoiceID, lineID string, hours decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// DeleteLine removes a billed-time line from an editable invoice and
	// resums. The time entries stay linked; removing a line does not free
	// the underlying entries for re-billing.
	DeleteLine(ctx context.Context, invoiceID, lineID string) error

	// DeleteDraftInvoice removes a draft invoice with all children and links,
	// freeing its time entries for future billing. Non-draft invoices are
	// rejected with ErrNotEditable.
	DeleteDraftInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceLineReader
	InvoiceWriter
}

// InvoiceExtrasReader defines read operations for manual lines, fees and
// fee attachments.
type InvoiceExtrasReader interface {
	// FindManualLinesByInvoiceID retrieves all manual people lines.
	FindManualLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceManualLine, error)

	// FindManualLineByID retrieves a single manual line.
	FindManualLineByID(ctx context.Context, manualLineID string) (*domain.InvoiceManualLine, error)

	// FindFeesByInvoiceID retrieves all flat fees.
	FindFeesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceFee, error)

	// FindFeeByID retrieves a single fee.
	FindFeeByID(ctx context.Context, feeID string) (*domain.InvoiceFee, error)

	// FindAttachmentsByFeeID retrieves the attachment records of a fee.
	FindAttachmentsByFeeID(ctx context.Context, feeID string) ([]domain.InvoiceFeeAttachment, error)
}

// InvoiceExtrasWriter defines write operations for manual lines and fees.
// As with InvoiceWriter, each mutation locks the owning invoice row, checks
// editability and resums inside one transaction.
type InvoiceExtrasWriter interface {
	AddManualLine(ctx context.Context, line domain.InvoiceManualLine) error
	UpdateManualLine(ctx context.Context, line domain.InvoiceManualLine) error
	DeleteManualLine(ctx context.Context, invoiceID, manualLineID string) error

	AddFee(ctx context.Context, fee domain.InvoiceFee) error
	UpdateFee(ctx context.Context, fee domain.InvoiceFee) error
	DeleteFee(ctx context.Context, invoiceID, feeID string) error

	// AddFeeAttachment records attachment metadata on a fee. Attachments are
	// documentary; no resum is needed.
	AddFeeAttachment(ctx context.Context, invoiceID string, attachment domain.InvoiceFeeAttachment) error
	DeleteFeeAttachment(ctx context.Context, invoiceID, feeID, attachmentID string) error
}

// InvoiceExtrasRepositoryFacade combines the extras repository interfaces.
type InvoiceExtrasRepositoryFacade interface {
	InvoiceExtrasReader
	InvoiceExtrasWriter
}
