package dto

import (
	"time"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateManualLineRequest defines the data for a manual people line. The line
// total is always derived server-side from hours × rate.
type CreateManualLineRequest struct {
	PersonName  string          `json:"personName" binding:"required"`
	Hours       decimal.Decimal `json:"hours" binding:"required,decimalgt0"`
	RateUSD     decimal.Decimal `json:"rateUSD" binding:"required,decimalgte0"`
	Description string          `json:"description"`
}

// UpdateManualLineRequest defines the data allowed for updating a manual line.
type UpdateManualLineRequest struct {
	PersonName  *string          `json:"personName"`
	Hours       *decimal.Decimal `json:"hours" binding:"omitempty,decimalgt0"`
	RateUSD     *decimal.Decimal `json:"rateUSD" binding:"omitempty,decimalgte0"`
	Description *string          `json:"description"`
}

// ManualLineResponse defines the data returned for a manual line.
type ManualLineResponse struct {
	ManualLineID string          `json:"manualLineID"`
	InvoiceID    string          `json:"invoiceID"`
	PersonName   string          `json:"personName"`
	Hours        decimal.Decimal `json:"hours"`
	RateUSD      decimal.Decimal `json:"rateUSD"`
	Description  string          `json:"description"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// CreateFeeRequest defines the data for a flat fee. The fee total is always
// derived server-side from quantity × unit price.
type CreateFeeRequest struct {
	Label        string          `json:"label" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required,decimalgt0"`
	UnitPriceUSD decimal.Decimal `json:"unitPriceUSD" binding:"required,decimalgte0"`
	Description  string          `json:"description"`
}

// UpdateFeeRequest defines the data allowed for updating a fee.
type UpdateFeeRequest struct {
	Label        *string          `json:"label"`
	Quantity     *decimal.Decimal `json:"quantity" binding:"omitempty,decimalgt0"`
	UnitPriceUSD *decimal.Decimal `json:"unitPriceUSD" binding:"omitempty,decimalgte0"`
	Description  *string          `json:"description"`
}

// FeeResponse defines the data returned for a fee.
type FeeResponse struct {
	FeeID        string          `json:"feeID"`
	InvoiceID    string          `json:"invoiceID"`
	Label        string          `json:"label"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceUSD decimal.Decimal `json:"unitPriceUSD"`
	Description  string          `json:"description"`
	FeeTotal     decimal.Decimal `json:"feeTotal"`
}

// CreateFeeAttachmentRequest records attachment metadata on a fee. The blob
// itself is uploaded to external storage before this call.
type CreateFeeAttachmentRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileURL  string `json:"fileURL" binding:"required,url"`
	FileSize int64  `json:"fileSize" binding:"gte=0"`
}

// FeeAttachmentResponse defines the data returned for a fee attachment.
type FeeAttachmentResponse struct {
	AttachmentID string    `json:"attachmentID"`
	FeeID        string    `json:"feeID"`
	FileName     string    `json:"fileName"`
	FileURL      string    `json:"fileURL"`
	FileSize     int64     `json:"fileSize"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToManualLineResponse converts a domain.InvoiceManualLine to its DTO
func ToManualLineResponse(l *domain.InvoiceManualLine) ManualLineResponse {
	return ManualLineResponse{
		ManualLineID: l.ManualLineID,
		InvoiceID:    l.InvoiceID,
		PersonName:   l.PersonName,
		Hours:        l.Hours,
		RateUSD:      l.RateUSD,
		Description:  l.Description,
		LineTotal:    l.LineTotal,
	}
}

// ToListManualLineResponse converts domain manual lines to ManualLineResponse DTOs
func ToListManualLineResponse(lines []domain.InvoiceManualLine) []ManualLineResponse {
	res := make([]ManualLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ToManualLineResponse(&l)
	}
	return res
}

// ToFeeResponse converts a domain.InvoiceFee to its DTO
func ToFeeResponse(f *domain.InvoiceFee) FeeResponse {
	return FeeResponse{
		FeeID:        f.FeeID,
		InvoiceID:    f.InvoiceID,
		Label:        f.Label,
		Quantity:     f.Quantity,
		UnitPriceUSD: f.UnitPriceUSD,
		Description:  f.Description,
		FeeTotal:     f.FeeTotal,
	}
}

// ToListFeeResponse converts domain fees to FeeResponse DTOs
func ToListFeeResponse(fees []domain.InvoiceFee) []FeeResponse {
	res := make([]FeeResponse, len(fees))
	for i, f := range fees {
		res[i] = ToFeeResponse(&f)
	}
	return res
}

// ToFeeAttachmentResponse converts a domain.InvoiceFeeAttachment to its DTO
func ToFeeAttachmentResponse(a *domain.InvoiceFeeAttachment) FeeAttachmentResponse {
	return FeeAttachmentResponse{
		AttachmentID: a.AttachmentID,
		FeeID:        a.FeeID,
		FileName:     a.FileName,
		FileURL:      a.FileURL,
		FileSize:     a.FileSize,
		CreatedAt:    a.CreatedAt,
	}
}

// ToListFeeAttachmentResponse converts domain attachments to FeeAttachmentResponse DTOs
func ToListFeeAttachmentResponse(attachments []domain.InvoiceFeeAttachment) []FeeAttachmentResponse {
	res := make([]FeeAttachmentResponse, len(attachments))
	for i, a := range attachments {
		res[i] = ToFeeAttachmentResponse(&a)
	}
	return res
}
