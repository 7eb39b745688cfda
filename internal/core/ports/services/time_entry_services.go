package services

import (
	"context"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/hourstack/time_billing_app/internal/dto"
)

// TimeEntryReaderSvc defines read operations for time entry data
type TimeEntryReaderSvc interface {
	// GetTimeEntryByID retrieves a specific time entry by its ID.
	GetTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error)

	// ListTimeEntries retrieves entries within a date range, optionally
	// filtered by employee.
	ListTimeEntries(ctx context.Context, params dto.ListTimeEntriesParams) ([]domain.TimeEntry, error)
}

// TimeEntryWriterSvc defines write operations for time entry data
type TimeEntryWriterSvc interface {
	// CreateTimeEntry logs hours for an employee on a project. Entries on
	// internal projects are forced non-billable.
	CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error)

	// UpdateTimeEntry updates an entry's date, hours, billable flag, status
	// or notes.
	UpdateTimeEntry(ctx context.Context, entryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error)

	// DeleteTimeEntry removes an unbilled time entry.
	DeleteTimeEntry(ctx context.Context, entryID string) error
}

// TimeEntrySvcFacade combines all time-entry-related service interfaces
type TimeEntrySvcFacade interface {
	TimeEntryReaderSvc
	TimeEntryWriterSvc
}
