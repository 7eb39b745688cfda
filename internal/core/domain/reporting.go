package domain

import "github.com/shopspring/decimal"

// RecalcScope selects which unpaid invoices of a project a bulk
// recalculation touches.
type RecalcScope string

const (
	RecalcAll    RecalcScope = "all"
	RecalcLatest RecalcScope = "latest"
)

// InvoiceSummary aggregates invoice totals by lifecycle bucket for the
// dashboard: draft count, outstanding (sent) total and collected (paid) total.
type InvoiceSummary struct {
	DraftCount  int64           `json:"draftCount"`
	UnpaidTotal decimal.Decimal `json:"unpaidTotal"`
	PaidTotal   decimal.Decimal `json:"paidTotal"`
}
