package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus matches the status column of invoices.
type InvoiceStatus string

// Invoice mirrors the invoices table.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	ProjectID     string          `db:"project_id"`
	Status        InvoiceStatus   `db:"status"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Discount      decimal.Decimal `db:"discount"`
	Total         decimal.Decimal `db:"total"`
	Notes         string          `db:"notes"`
	InvoiceNumber *string         `db:"invoice_number"`
	IssueDate     *time.Time      `db:"issue_date"`
	DueDate       *time.Time      `db:"due_date"`
	AuditFields
}

// InvoiceLine mirrors the invoice_lines table. EmployeeName and RoleName are
// snapshot columns, not joins.
type InvoiceLine struct {
	LineID       string          `db:"line_id"`
	InvoiceID    string          `db:"invoice_id"`
	EmployeeID   string          `db:"employee_id"`
	EmployeeName string          `db:"employee_name"`
	RoleName     *string         `db:"role_name"`
	Hours        decimal.Decimal `db:"hours"`
	RateSnapshot decimal.Decimal `db:"rate_snapshot"`
	Amount       decimal.Decimal `db:"amount"`
	AuditFields
}

// InvoiceTimeEntryLink mirrors the invoice_time_entries junction table,
// unique on time_entry_id across the whole system.
type InvoiceTimeEntryLink struct {
	LinkID      string `db:"link_id"`
	InvoiceID   string `db:"invoice_id"`
	TimeEntryID string `db:"time_entry_id"`
}

// InvoiceManualLine mirrors the invoice_manual_lines table.
type InvoiceManualLine struct {
	ManualLineID string          `db:"manual_line_id"`
	InvoiceID    string          `db:"invoice_id"`
	PersonName   string          `db:"person_name"`
	Hours        decimal.Decimal `db:"hours"`
	RateUSD      decimal.Decimal `db:"rate_usd"`
	Description  string          `db:"description"`
	LineTotal    decimal.Decimal `db:"line_total"`
	AuditFields
}

// InvoiceFee mirrors the invoice_fees table.
type InvoiceFee struct {
	FeeID        string          `db:"fee_id"`
	InvoiceID    string          `db:"invoice_id"`
	Label        string          `db:"label"`
	Quantity     decimal.Decimal `db:"quantity"`
	UnitPriceUSD decimal.Decimal `db:"unit_price_usd"`
	Description  string          `db:"description"`
	FeeTotal     decimal.Decimal `db:"fee_total"`
	AuditFields
}

// InvoiceFeeAttachment mirrors the invoice_fee_attachments table.
type InvoiceFeeAttachment struct {
	AttachmentID string    `db:"attachment_id"`
	FeeID        string    `db:"fee_id"`
	FileName     string    `db:"file_name"`
	FileURL      string    `db:"file_url"`
	FileSize     int64     `db:"file_size"`
	CreatedAt    time.Time `db:"created_at"`
	CreatedBy    string    `db:"created_by"`
}
