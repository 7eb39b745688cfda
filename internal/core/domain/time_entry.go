package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntryStatus indicates whether an entry participates in billing.
type TimeEntryStatus string

const (
	EntryNormal TimeEntryStatus = "normal"
	EntryOnHold TimeEntryStatus = "on_hold"
)

// TimeEntry is one employee's logged hours on a project for a calendar date.
// On-hold entries are excluded from billing aggregation until moved back to
// normal. Billable is forced false for internal projects at creation time.
type TimeEntry struct {
	EntryID    string          `json:"entryID"`
	EmployeeID string          `json:"employeeID"`
	ProjectID  string          `json:"projectID"`
	Date       time.Time       `json:"date"`
	Hours      decimal.Decimal `json:"hours"`
	Billable   bool            `json:"billable"`
	Status     TimeEntryStatus `json:"status"`
	Notes      string          `json:"notes"`
	AuditFields
}
