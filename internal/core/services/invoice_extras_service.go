package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/utils/billing"
)

// invoiceExtrasService manages manual people lines, flat fees and fee
// attachments. All money fields are derived server-side; request totals are
// never trusted.
type invoiceExtrasService struct {
	invoiceRepo       portsrepo.InvoiceRepositoryFacade
	invoiceExtrasRepo portsrepo.InvoiceExtrasRepositoryFacade
}

// NewInvoiceExtrasService creates a new InvoiceExtrasService.
func NewInvoiceExtrasService(invoiceRepo portsrepo.InvoiceRepositoryFacade, invoiceExtrasRepo portsrepo.InvoiceExtrasRepositoryFacade) portssvc.InvoiceExtrasSvcFacade {
	return &invoiceExtrasService{
		invoiceRepo:       invoiceRepo,
		invoiceExtrasRepo: invoiceExtrasRepo,
	}
}

var _ portssvc.InvoiceExtrasSvcFacade = (*invoiceExtrasService)(nil)

// ListManualLines retrieves the manual lines of an invoice.
func (s *invoiceExtrasService) ListManualLines(ctx context.Context, invoiceID string) ([]domain.InvoiceManualLine, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceExtrasRepo.FindManualLinesByInvoiceID(ctx, invoiceID)
}

// AddManualLine appends a manual people line to an editable invoice.
func (s *invoiceExtrasService) AddManualLine(ctx context.Context, invoiceID string, req dto.CreateManualLineRequest, creatorUserID string) (*domain.InvoiceManualLine, error) {
	now := time.Now().UTC()
	line := domain.InvoiceManualLine{
		ManualLineID: uuid.NewString(),
		InvoiceID:    invoiceID,
		PersonName:   req.PersonName,
		Hours:        req.Hours,
		RateUSD:      req.RateUSD,
		Description:  req.Description,
		LineTotal:    billing.ManualLineTotal(req.Hours, req.RateUSD),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceExtrasRepo.AddManualLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to add manual line: %w", err)
	}

	return &line, nil
}

// UpdateManualLine updates a manual line and re-derives its total.
func (s *invoiceExtrasService) UpdateManualLine(ctx context.Context, invoiceID string, manualLineID string, req dto.UpdateManualLineRequest, requestingUserID string) (*domain.InvoiceManualLine, error) {
	line, err := s.invoiceExtrasRepo.FindManualLineByID(ctx, manualLineID)
	if err != nil {
		return nil, err
	}
	if line.InvoiceID != invoiceID {
		return nil, apperrors.ErrNotFound
	}

	if req.PersonName != nil {
		line.PersonName = *req.PersonName
	}
	if req.Hours != nil {
		line.Hours = *req.Hours
	}
	if req.RateUSD != nil {
		line.RateUSD = *req.RateUSD
	}
	if req.Description != nil {
		line.Description = *req.Description
	}
	line.LineTotal = billing.ManualLineTotal(line.Hours, line.RateUSD)
	line.LastUpdatedAt = time.Now().UTC()
	line.LastUpdatedBy = requestingUserID

	if err := s.invoiceExtrasRepo.UpdateManualLine(ctx, *line); err != nil {
		return nil, fmt.Errorf("failed to update manual line %s: %w", manualLineID, err)
	}

	return line, nil
}

// DeleteManualLine removes a manual line.
func (s *invoiceExtrasService) DeleteManualLine(ctx context.Context, invoiceID string, manualLineID string) error {
	return s.invoiceExtrasRepo.DeleteManualLine(ctx, invoiceID, manualLineID)
}

// ListFees retrieves the flat fees of an invoice.
func (s *invoiceExtrasService) ListFees(ctx context.Context, invoiceID string) ([]domain.InvoiceFee, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceExtrasRepo.FindFeesByInvoiceID(ctx, invoiceID)
}

// AddFee appends a flat fee to an editable invoice.
func (s *invoiceExtrasService) AddFee(ctx context.Context, invoiceID string, req dto.CreateFeeRequest, creatorUserID string) (*domain.InvoiceFee, error) {
	now := time.Now().UTC()
	fee := domain.InvoiceFee{
		FeeID:        uuid.NewString(),
		InvoiceID:    invoiceID,
		Label:        req.Label,
		Quantity:     req.Quantity,
		UnitPriceUSD: req.UnitPriceUSD,
		Description:  req.Description,
		FeeTotal:     billing.FeeTotal(req.Quantity, req.UnitPriceUSD),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceExtrasRepo.AddFee(ctx, fee); err != nil {
		return nil, fmt.Errorf("failed to add fee: %w", err)
	}

	return &fee, nil
}

// UpdateFee updates a fee and re-derives its total.
func (s *invoiceExtrasService) UpdateFee(ctx context.Context, invoiceID string, feeID string, req dto.UpdateFeeRequest, requestingUserID string) (*domain.InvoiceFee, error) {
	fee, err := s.invoiceExtrasRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if fee.InvoiceID != invoiceID {
		return nil, apperrors.ErrNotFound
	}

	if req.Label != nil {
		fee.Label = *req.Label
	}
	if req.Quantity != nil {
		fee.Quantity = *req.Quantity
	}
	if req.UnitPriceUSD != nil {
		fee.UnitPriceUSD = *req.UnitPriceUSD
	}
	if req.Description != nil {
		fee.Description = *req.Description
	}
	fee.FeeTotal = billing.FeeTotal(fee.Quantity, fee.UnitPriceUSD)
	fee.LastUpdatedAt = time.Now().UTC()
	fee.LastUpdatedBy = requestingUserID

	if err := s.invoiceExtrasRepo.UpdateFee(ctx, *fee); err != nil {
		return nil, fmt.Errorf("failed to update fee %s: %w", feeID, err)
	}

	return fee, nil
}

// DeleteFee removes a fee along with its attachment records.
func (s *invoiceExtrasService) DeleteFee(ctx context.Context, invoiceID string, feeID string) error {
	return s.invoiceExtrasRepo.DeleteFee(ctx, invoiceID, feeID)
}

// ListFeeAttachments retrieves the attachment records of a fee.
func (s *invoiceExtrasService) ListFeeAttachments(ctx context.Context, invoiceID string, feeID string) ([]domain.InvoiceFeeAttachment, error) {
	fee, err := s.invoiceExtrasRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if fee.InvoiceID != invoiceID {
		return nil, apperrors.ErrNotFound
	}
	return s.invoiceExtrasRepo.FindAttachmentsByFeeID(ctx, feeID)
}

// AddFeeAttachment records attachment metadata on a fee. The file itself is
// uploaded to external storage before this call.
func (s *invoiceExtrasService) AddFeeAttachment(ctx context.Context, invoiceID string, feeID string, req dto.CreateFeeAttachmentRequest, creatorUserID string) (*domain.InvoiceFeeAttachment, error) {
	fee, err := s.invoiceExtrasRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if fee.InvoiceID != invoiceID {
		return nil, apperrors.ErrNotFound
	}

	attachment := domain.InvoiceFeeAttachment{
		AttachmentID: uuid.NewString(),
		FeeID:        feeID,
		FileName:     req.FileName,
		FileURL:      req.FileURL,
		FileSize:     req.FileSize,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    creatorUserID,
	}

	if err := s.invoiceExtrasRepo.AddFeeAttachment(ctx, invoiceID, attachment); err != nil {
		return nil, fmt.Errorf("failed to add attachment: %w", err)
	}

	return &attachment, nil
}

// DeleteFeeAttachment removes an attachment record.
func (s *invoiceExtrasService) DeleteFeeAttachment(ctx context.Context, invoiceID string, feeID string, attachmentID string) error {
	return s.invoiceExtrasRepo.DeleteFeeAttachment(ctx, invoiceID, feeID, attachmentID)
}
