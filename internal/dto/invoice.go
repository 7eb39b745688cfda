package dto

import (
	"time"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create an invoice. Creation
// runs the time entry aggregator for the project; an empty billable backlog
// still yields a draft invoice with zero totals.
type CreateInvoiceRequest struct {
	ProjectID string `json:"projectID" binding:"required"`
	Notes     string `json:"notes"`
}

// UpdateInvoiceRequest defines the metadata and discount updates allowed
// while an invoice is editable.
type UpdateInvoiceRequest struct {
	Notes         *string          `json:"notes"`
	InvoiceNumber *string          `json:"invoiceNumber"`
	IssueDate     *string          `json:"issueDate" binding:"omitempty,datetime=2006-01-02"`
	DueDate       *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Discount      *decimal.Decimal `json:"discount" binding:"omitempty,decimalgte0"`
}

// TransitionInvoiceRequest defines a requested status move.
type TransitionInvoiceRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent paid cancelled voided"`
}

// RecalculateProjectRequest selects the bulk recalculation scope.
type RecalculateProjectRequest struct {
	Scope string `json:"scope" binding:"required,oneof=all latest"`
}

// RecalculateProjectResponse reports how many invoices a batch touched.
type RecalculateProjectResponse struct {
	InvoicesProcessed int `json:"invoicesProcessed"`
}

// UpdateLineHoursRequest rewrites the hours of a billed-time line. The amount
// is re-derived server-side from the stored rate snapshot.
type UpdateLineHoursRequest struct {
	Hours decimal.Decimal `json:"hours" binding:"required,decimalgt0"`
}

// ListInvoicesParams defines the query parameters for listing invoices.
type ListInvoicesParams struct {
	ProjectID *string `form:"project_id"`
	Status    *string `form:"status" binding:"omitempty,oneof=draft sent paid cancelled voided"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"next_token"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	ProjectID     string          `json:"projectID"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes"`
	InvoiceNumber *string         `json:"invoiceNumber"`
	IssueDate     *time.Time      `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListInvoicesResponse wraps a page of invoices with the next page token.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// InvoiceLineResponse defines the data returned for a billed-time line.
type InvoiceLineResponse struct {
	LineID       string          `json:"lineID"`
	InvoiceID    string          `json:"invoiceID"`
	EmployeeID   string          `json:"employeeID"`
	EmployeeName string          `json:"employeeName"`
	RoleName     *string         `json:"roleName"`
	Hours        decimal.Decimal `json:"hours"`
	RateSnapshot decimal.Decimal `json:"rateSnapshot"`
	Amount       decimal.Decimal `json:"amount"`
}

// InvoiceDetailResponse combines an invoice with all its child collections.
type InvoiceDetailResponse struct {
	Invoice        InvoiceResponse       `json:"invoice"`
	Lines          []InvoiceLineResponse `json:"lines"`
	ManualLines    []ManualLineResponse  `json:"manualLines"`
	Fees           []FeeResponse         `json:"fees"`
	LinkedEntryIDs []string              `json:"linkedEntryIds"`
}

// InvoiceSummaryResponse aggregates invoices by lifecycle bucket.
type InvoiceSummaryResponse struct {
	DraftCount  int64           `json:"draftCount"`
	UnpaidTotal decimal.Decimal `json:"unpaidTotal"`
	PaidTotal   decimal.Decimal `json:"paidTotal"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		ProjectID:     inv.ProjectID,
		Status:        string(inv.Status),
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		Total:         inv.Total,
		Notes:         inv.Notes,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
		LastUpdatedAt: inv.LastUpdatedAt,
		LastUpdatedBy: inv.LastUpdatedBy,
	}
}

// ToListInvoiceResponse converts domain invoices to InvoiceResponse DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}

// ToInvoiceLineResponse converts a domain.InvoiceLine to its DTO
func ToInvoiceLineResponse(l *domain.InvoiceLine) InvoiceLineResponse {
	return InvoiceLineResponse{
		LineID:       l.LineID,
		InvoiceID:    l.InvoiceID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		RoleName:     l.RoleName,
		Hours:        l.Hours,
		RateSnapshot: l.RateSnapshot,
		Amount:       l.Amount,
	}
}

// ToListInvoiceLineResponse converts domain lines to InvoiceLineResponse DTOs
func ToListInvoiceLineResponse(lines []domain.InvoiceLine) []InvoiceLineResponse {
	res := make([]InvoiceLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ToInvoiceLineResponse(&l)
	}
	return res
}

// ToInvoiceSummaryResponse converts a domain.InvoiceSummary to its DTO
func ToInvoiceSummaryResponse(s *domain.InvoiceSummary) InvoiceSummaryResponse {
	return InvoiceSummaryResponse{
		DraftCount:  s.DraftCount,
		UnpaidTotal: s.UnpaidTotal,
		PaidTotal:   s.PaidTotal,
	}
}
