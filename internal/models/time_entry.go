package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntryStatus matches the status column of time_entries.
type TimeEntryStatus string

const (
	EntryNormal TimeEntryStatus = "normal"
	EntryOnHold TimeEntryStatus = "on_hold"
)

// TimeEntry mirrors the time_entries table.
type TimeEntry struct {
	EntryID    string          `db:"entry_id"`
	EmployeeID string          `db:"employee_id"`
	ProjectID  string          `db:"project_id"`
	Date       time.Time       `db:"date"`
	Hours      decimal.Decimal `db:"hours"`
	Billable   bool            `db:"billable"`
	Status     TimeEntryStatus `db:"status"`
	Notes      string          `db:"notes"`
	AuditFields
}
