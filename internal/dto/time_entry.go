package dto

import (
	"time"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTimeEntryRequest defines the data needed to log hours.
// Date uses the calendar-date format the timesheet works in.
type CreateTimeEntryRequest struct {
	EmployeeID string          `json:"employeeID" binding:"required"`
	ProjectID  string          `json:"projectID" binding:"required"`
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	Hours      decimal.Decimal `json:"hours" binding:"required,decimalgt0"`
	Billable   bool            `json:"billable"`
	Notes      string          `json:"notes"`
}

// UpdateTimeEntryRequest defines the data allowed for updating a time entry.
type UpdateTimeEntryRequest struct {
	Date     *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Hours    *decimal.Decimal `json:"hours" binding:"omitempty,decimalgt0"`
	Billable *bool            `json:"billable"`
	Status   *string          `json:"status" binding:"omitempty,oneof=normal on_hold"`
	Notes    *string          `json:"notes"`
}

// ListTimeEntriesParams defines the query parameters for listing entries.
type ListTimeEntriesParams struct {
	From       string  `form:"from" binding:"required,datetime=2006-01-02"`
	To         string  `form:"to" binding:"required,datetime=2006-01-02"`
	EmployeeID *string `form:"employee_id"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	EntryID    string          `json:"entryID"`
	EmployeeID string          `json:"employeeID"`
	ProjectID  string          `json:"projectID"`
	Date       string          `json:"date"`
	Hours      decimal.Decimal `json:"hours"`
	Billable   bool            `json:"billable"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToTimeEntryResponse converts a domain.TimeEntry to its DTO
func ToTimeEntryResponse(e *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		EntryID:    e.EntryID,
		EmployeeID: e.EmployeeID,
		ProjectID:  e.ProjectID,
		Date:       e.Date.Format("2006-01-02"),
		Hours:      e.Hours,
		Billable:   e.Billable,
		Status:     string(e.Status),
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}

// ToListTimeEntryResponse converts domain entries to TimeEntryResponse DTOs
func ToListTimeEntryResponse(entries []domain.TimeEntry) []TimeEntryResponse {
	res := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToTimeEntryResponse(&e)
	}
	return res
}
