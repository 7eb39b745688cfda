package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
	InvoiceVoided    InvoiceStatus = "voided"
)

// validTransitions is the full status table. Anything absent is disallowed;
// no transition may skip a state (draft cannot go straight to paid).
var validTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft: {InvoiceSent, InvoiceCancelled},
	InvoiceSent:  {InvoicePaid, InvoiceVoided},
}

// CanTransition reports whether moving from into to is allowed.
func (s InvoiceStatus) CanTransition(to InvoiceStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func (s InvoiceStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsEditable reports whether child collections, notes, discount and metadata
// may still be mutated. Only draft and sent invoices are editable.
func (s InvoiceStatus) IsEditable() bool {
	return s == InvoiceDraft || s == InvoiceSent
}

// IsValidInvoiceStatus reports whether the string is a known status label.
func IsValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceCancelled, InvoiceVoided:
		return true
	}
	return false
}

// Invoice owns the composed totals of its three child collections and a
// discount. Subtotal and Total are always derived server-side:
// subtotal = Σ line.amount + Σ manual.lineTotal + Σ fee.feeTotal,
// total = max(subtotal − discount, 0).
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	ProjectID     string          `json:"projectID"`
	Status        InvoiceStatus   `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes"`
	InvoiceNumber *string         `json:"invoiceNumber"`
	IssueDate     *time.Time      `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate"`
	AuditFields
}

// InvoiceLine is a billed-time line: one per (invoice, employee), hours
// pre-summed across that employee's linked time entries. EmployeeName and
// RoleName are deliberate denormalized snapshots so historical invoices stay
// readable after the live records change.
type InvoiceLine struct {
	LineID       string          `json:"lineID"`
	InvoiceID    string          `json:"invoiceID"`
	EmployeeID   string          `json:"employeeID"`
	EmployeeName string          `json:"employeeName"`
	RoleName     *string         `json:"roleName"`
	Hours        decimal.Decimal `json:"hours"`
	RateSnapshot decimal.Decimal `json:"rateSnapshot"`
	Amount       decimal.Decimal `json:"amount"`
	AuditFields
}

// InvoiceManualLine is a people line added by hand, independent of time
// entries. PersonName is free text; no employee reference is required.
type InvoiceManualLine struct {
	ManualLineID string          `json:"manualLineID"`
	InvoiceID    string          `json:"invoiceID"`
	PersonName   string          `json:"personName"`
	Hours        decimal.Decimal `json:"hours"`
	RateUSD      decimal.Decimal `json:"rateUSD"`
	Description  string          `json:"description"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
	AuditFields
}

// InvoiceFee is a flat charge (quantity × unit price) on an invoice.
type InvoiceFee struct {
	FeeID        string          `json:"feeID"`
	InvoiceID    string          `json:"invoiceID"`
	Label        string          `json:"label"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceUSD decimal.Decimal `json:"unitPriceUSD"`
	Description  string          `json:"description"`
	FeeTotal     decimal.Decimal `json:"feeTotal"`
	AuditFields
}

// InvoiceFeeAttachment is a documentary file reference on a fee. The blob
// itself lives in external storage; only the metadata is kept here and it has
// no computation impact.
type InvoiceFeeAttachment struct {
	AttachmentID string    `json:"attachmentID"`
	FeeID        string    `json:"feeID"`
	FileName     string    `json:"fileName"`
	FileURL      string    `json:"fileURL"`
	FileSize     int64     `json:"fileSize"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}
