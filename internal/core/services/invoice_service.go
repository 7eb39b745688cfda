package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/hourstack/time_billing_app/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// invoiceService owns invoice creation (the billing aggregation), lifecycle
// transitions, metadata updates and line edits.
type invoiceService struct {
	invoiceRepo       portsrepo.InvoiceRepositoryFacade
	invoiceExtrasRepo portsrepo.InvoiceExtrasRepositoryFacade
	timeEntryRepo     portsrepo.TimeEntryRepositoryFacade
	projectRepo       portsrepo.ProjectRepositoryFacade
	employeeRepo      portsrepo.EmployeeRepositoryFacade
	rateResolver      portssvc.RateResolverSvc
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	invoiceExtrasRepo portsrepo.InvoiceExtrasRepositoryFacade,
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	rateResolver portssvc.RateResolverSvc,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:       invoiceRepo,
		invoiceExtrasRepo: invoiceExtrasRepo,
		timeEntryRepo:     timeEntryRepo,
		projectRepo:       projectRepo,
		employeeRepo:      employeeRepo,
		rateResolver:      rateResolver,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice aggregates the project's unbilled billable hours into a new
// draft invoice. Entries are grouped per employee into one line each, with
// the employee name, role name and hourly rate snapshotted at creation time.
// A project with no unbilled hours still gets an empty draft invoice.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	entries, err := s.timeEntryRepo.FindUnbilledEntries(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unbilled entries for project %s: %w", req.ProjectID, err)
	}

	// Group hours per employee and remember which entries feed each line.
	hoursByEmployee := make(map[string]decimal.Decimal)
	entryIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		hoursByEmployee[entry.EmployeeID] = hoursByEmployee[entry.EmployeeID].Add(entry.Hours)
		entryIDs = append(entryIDs, entry.EntryID)
	}

	employeeIDs := make([]string, 0, len(hoursByEmployee))
	for employeeID := range hoursByEmployee {
		employeeIDs = append(employeeIDs, employeeID)
	}
	sort.Strings(employeeIDs)

	employees, err := s.employeeRepo.FindEmployeesByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees for invoice lines: %w", err)
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.InvoiceLine, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		resolved, resolveErr := s.rateResolver.ResolveRate(ctx, employeeID, req.ProjectID)
		if resolveErr != nil {
			return nil, fmt.Errorf("failed to resolve rate for employee %s: %w", employeeID, resolveErr)
		}

		employeeName := employeeID
		if emp, found := employees[employeeID]; found {
			employeeName = emp.Name
		} else {
			logger.Warn("Employee missing from directory, using ID as name", slog.String("employee_id", employeeID))
		}

		hours := hoursByEmployee[employeeID]
		lines = append(lines, domain.InvoiceLine{
			LineID:       uuid.NewString(),
			InvoiceID:    invoiceID,
			EmployeeID:   employeeID,
			EmployeeName: employeeName,
			RoleName:     resolved.RoleName,
			Hours:        hours,
			RateSnapshot: resolved.Rate,
			Amount:       billing.LineAmount(hours, resolved.Rate),
			AuditFields:  audit,
		})
	}

	subtotal := billing.Subtotal(lines, nil, nil)
	invoice := domain.Invoice{
		InvoiceID:   invoiceID,
		ProjectID:   req.ProjectID,
		Status:      domain.InvoiceDraft,
		Subtotal:    subtotal,
		Discount:    decimal.Zero,
		Total:       billing.ComposeTotal(subtotal, decimal.Zero),
		Notes:       req.Notes,
		AuditFields: audit,
	}

	if err := s.invoiceRepo.SaveInvoiceWithLines(ctx, invoice, lines, entryIDs); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", invoiceID),
		slog.String("project_id", req.ProjectID),
		slog.Int("line_count", len(lines)),
		slog.Int("entry_count", len(entryIDs)),
	)

	return &invoice, nil
}

// GetInvoiceByID retrieves a single invoice.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// GetInvoiceDetail retrieves an invoice with all its child collections.
func (s *invoiceService) GetInvoiceDetail(ctx context.Context, invoiceID string) (*dto.InvoiceDetailResponse, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for invoice %s: %w", invoiceID, err)
	}
	manualLines, err := s.invoiceExtrasRepo.FindManualLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manual lines for invoice %s: %w", invoiceID, err)
	}
	fees, err := s.invoiceExtrasRepo.FindFeesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fees for invoice %s: %w", invoiceID, err)
	}
	entryIDs, err := s.invoiceRepo.FindLinkedEntryIDs(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linked entries for invoice %s: %w", invoiceID, err)
	}

	return &dto.InvoiceDetailResponse{
		Invoice:        dto.ToInvoiceResponse(invoice),
		Lines:          dto.ToListInvoiceLineResponse(lines),
		ManualLines:    dto.ToListManualLineResponse(manualLines),
		Fees:           dto.ToListFeeResponse(fees),
		LinkedEntryIDs: entryIDs,
	}, nil
}

// ListInvoices retrieves a paginated list of invoices.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	var status *domain.InvoiceStatus
	if params.Status != nil {
		st := domain.InvoiceStatus(*params.Status)
		if !domain.IsValidInvoiceStatus(st) {
			return nil, fmt.Errorf("unknown status %q: %w", *params.Status, apperrors.ErrValidation)
		}
		status = &st
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, params.ProjectID, status, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToListInvoiceResponse(invoices),
		NextToken: nextToken,
	}, nil
}

// GetInvoiceSummary aggregates draft counts and unpaid/paid totals.
func (s *invoiceService) GetInvoiceSummary(ctx context.Context) (*domain.InvoiceSummary, error) {
	return s.invoiceRepo.GetInvoiceSummary(ctx)
}

// UpdateInvoice updates metadata and discount on an editable invoice. The
// stored totals are re-derived by the repository under the invoice row lock.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = req.InvoiceNumber
	}
	if req.IssueDate != nil {
		issueDate, parseErr := time.Parse(dateLayout, *req.IssueDate)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid issue date %q: %w", *req.IssueDate, apperrors.ErrValidation)
		}
		invoice.IssueDate = &issueDate
	}
	if req.DueDate != nil {
		dueDate, parseErr := time.Parse(dateLayout, *req.DueDate)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid due date %q: %w", *req.DueDate, apperrors.ErrValidation)
		}
		invoice.DueDate = &dueDate
	}
	if req.Discount != nil {
		if req.Discount.IsNegative() {
			return nil, fmt.Errorf("discount cannot be negative: %w", apperrors.ErrValidation)
		}
		invoice.Discount = *req.Discount
	}
	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = requestingUserID

	if err := s.invoiceRepo.UpdateInvoiceDetails(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}

	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// TransitionInvoice moves the invoice through its lifecycle. The transition
// table is enforced against the locked row state, so two racing transitions
// serialize and the loser gets ErrInvalidTransition.
func (s *invoiceService) TransitionInvoice(ctx context.Context, invoiceID string, req dto.TransitionInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	to := domain.InvoiceStatus(req.Status)
	if !domain.IsValidInvoiceStatus(to) {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, apperrors.ErrValidation)
	}

	return s.invoiceRepo.TransitionInvoiceStatus(ctx, invoiceID, to, requestingUserID, time.Now().UTC())
}

// UpdateLineHours rewrites the hours on a billed-time line.
func (s *invoiceService) UpdateLineHours(ctx context.Context, invoiceID string, lineID string, req dto.UpdateLineHoursRequest, requestingUserID string) error {
	if req.Hours.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("hours must be positive: %w", apperrors.ErrValidation)
	}
	return s.invoiceRepo.UpdateLineHours(ctx, invoiceID, lineID, req.Hours, requestingUserID, time.Now().UTC())
}

// DeleteLine removes a billed-time line from an editable invoice. The time
// entries behind the line stay linked and cannot be re-billed.
func (s *invoiceService) DeleteLine(ctx context.Context, invoiceID string, lineID string) error {
	return s.invoiceRepo.DeleteLine(ctx, invoiceID, lineID)
}

// DeleteInvoice removes a draft invoice, freeing its time entries for future
// billing.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.invoiceRepo.DeleteDraftInvoice(ctx, invoiceID)
}
