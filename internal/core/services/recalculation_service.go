package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/hourstack/time_billing_app/internal/utils/billing"
)

// recalculationService re-resolves current role rates onto existing editable
// invoices. Billed hours are never touched; only rate snapshots, role names
// and derived amounts change.
type recalculationService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	rateResolver portssvc.RateResolverSvc
}

// NewRecalculationService creates a new RecalculationService.
func NewRecalculationService(invoiceRepo portsrepo.InvoiceRepositoryFacade, rateResolver portssvc.RateResolverSvc) portssvc.RecalculationSvcFacade {
	return &recalculationService{
		invoiceRepo:  invoiceRepo,
		rateResolver: rateResolver,
	}
}

var _ portssvc.RecalculationSvcFacade = (*recalculationService)(nil)

// RecalculateInvoice refreshes rate snapshots and amounts on one invoice.
// Running it twice in a row is a no-op the second time.
func (s *recalculationService) RecalculateInvoice(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.IsEditable() {
		return nil, fmt.Errorf("invoice %s is not editable in status %s: %w", invoiceID, invoice.Status, apperrors.ErrNotEditable)
	}

	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for invoice %s: %w", invoiceID, err)
	}

	updated := make([]domain.InvoiceLine, 0, len(lines))
	for _, line := range lines {
		resolved, resolveErr := s.rateResolver.ResolveRate(ctx, line.EmployeeID, invoice.ProjectID)
		if resolveErr != nil {
			return nil, fmt.Errorf("failed to resolve rate for employee %s: %w", line.EmployeeID, resolveErr)
		}

		line.RateSnapshot = resolved.Rate
		line.RoleName = resolved.RoleName
		line.Amount = billing.LineAmount(line.Hours, resolved.Rate)
		updated = append(updated, line)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateLineRates(ctx, invoiceID, updated, requestingUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update line rates for invoice %s: %w", invoiceID, err)
	}

	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// RecalculateUnpaidForProject refreshes the project's unpaid invoices
// according to scope. Each invoice is its own unit of work; one failure is
// logged and the batch continues. Returns how many invoices were processed.
func (s *recalculationService) RecalculateUnpaidForProject(ctx context.Context, projectID string, scope domain.RecalcScope, requestingUserID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	latestOnly := scope == domain.RecalcLatest
	invoices, err := s.invoiceRepo.ListUnpaidInvoicesByProject(ctx, projectID, latestOnly)
	if err != nil {
		return 0, fmt.Errorf("failed to list unpaid invoices for project %s: %w", projectID, err)
	}

	processed := 0
	for _, invoice := range invoices {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		if _, err := s.RecalculateInvoice(ctx, invoice.InvoiceID, requestingUserID); err != nil {
			logger.Error("Failed to recalculate invoice, continuing batch",
				slog.String("invoice_id", invoice.InvoiceID),
				slog.String("error", err.Error()),
			)
			continue
		}
		processed++
	}

	logger.Info("Project recalculation finished",
		slog.String("project_id", projectID),
		slog.Int("processed", processed),
		slog.Int("candidates", len(invoices)),
	)

	return processed, nil
}
