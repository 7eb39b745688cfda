package services

import (
	"context"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/hourstack/time_billing_app/internal/dto"
)

// RateResolverSvc resolves the effective hourly rate for an employee on a
// project by following the assignment to its billing role.
type RateResolverSvc interface {
	// ResolveRate returns the hourly rate and role name for the employee on
	// the project. Missing assignments or role-less assignments resolve to a
	// zero rate with no role name rather than an error.
	ResolveRate(ctx context.Context, employeeID string, projectID string) (domain.ResolvedRate, error)
}

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice by its ID.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// GetInvoiceDetail retrieves an invoice with its billed-time lines,
	// manual lines and fees.
	GetInvoiceDetail(ctx context.Context, invoiceID string) (*dto.InvoiceDetailResponse, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// GetInvoiceSummary aggregates draft counts and unpaid/paid totals.
	GetInvoiceSummary(ctx context.Context) (*domain.InvoiceSummary, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice aggregates the project's unbilled billable hours into a
	// new draft invoice, snapshotting rates and names at creation time.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoice updates metadata and discount on an editable invoice.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// TransitionInvoice moves the invoice through its lifecycle.
	TransitionInvoice(ctx context.Context, invoiceID string, req dto.TransitionInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// UpdateLineHours rewrites the hours on a billed-time line; the amount
	// follows from the stored rate snapshot.
	UpdateLineHours(ctx context.Context, invoiceID string, lineID string, req dto.UpdateLineHoursRequest, requestingUserID string) error

	// DeleteLine removes a billed-time line from an editable invoice.
	DeleteLine(ctx context.Context, invoiceID string, lineID string) error

	// DeleteInvoice removes a draft invoice and frees its time entries.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// RecalculationSvcFacade re-resolves current role rates onto existing
// editable invoices, preserving billed hours.
type RecalculationSvcFacade interface {
	// RecalculateInvoice refreshes rate snapshots and amounts on one invoice.
	RecalculateInvoice(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error)

	// RecalculateUnpaidForProject refreshes the project's unpaid invoices
	// according to scope and returns how many were processed. Failures on
	// individual invoices do not stop the batch.
	RecalculateUnpaidForProject(ctx context.Context, projectID string, scope domain.RecalcScope, requestingUserID string) (int, error)
}

// InvoiceExtrasSvcFacade manages manual people lines, flat fees and fee
// attachments on editable invoices.
type InvoiceExtrasSvcFacade interface {
	// ListManualLines retrieves the manual lines of an invoice.
	ListManualLines(ctx context.Context, invoiceID string) ([]domain.InvoiceManualLine, error)

	// AddManualLine appends a manual people line; the line total is derived
	// from hours and rate.
	AddManualLine(ctx context.Context, invoiceID string, req dto.CreateManualLineRequest, creatorUserID string) (*domain.InvoiceManualLine, error)

	// UpdateManualLine updates a manual line and re-derives its total.
	UpdateManualLine(ctx context.Context, invoiceID string, manualLineID string, req dto.UpdateManualLineRequest, requestingUserID string) (*domain.InvoiceManualLine, error)

	// DeleteManualLine removes a manual line.
	DeleteManualLine(ctx context.Context, invoiceID string, manualLineID string) error

	// ListFees retrieves the flat fees of an invoice.
	ListFees(ctx context.Context, invoiceID string) ([]domain.InvoiceFee, error)

	// AddFee appends a flat fee; the fee total is derived from quantity and
	// unit price.
	AddFee(ctx context.Context, invoiceID string, req dto.CreateFeeRequest, creatorUserID string) (*domain.InvoiceFee, error)

	// UpdateFee updates a fee and re-derives its total.
	UpdateFee(ctx context.Context, invoiceID string, feeID string, req dto.UpdateFeeRequest, requestingUserID string) (*domain.InvoiceFee, error)

	// DeleteFee removes a fee along with its attachment records.
	DeleteFee(ctx context.Context, invoiceID string, feeID string) error

	// ListFeeAttachments retrieves the attachment records of a fee.
	ListFeeAttachments(ctx context.Context, invoiceID string, feeID string) ([]domain.InvoiceFeeAttachment, error)

	// AddFeeAttachment records attachment metadata on a fee.
	AddFeeAttachment(ctx context.Context, invoiceID string, feeID string, req dto.CreateFeeAttachmentRequest, creatorUserID string) (*domain.InvoiceFeeAttachment, error)

	// DeleteFeeAttachment removes an attachment record.
	DeleteFeeAttachment(ctx context.Context, invoiceID string, feeID string, attachmentID string) error
}
