package repositories

import (
	"context"
	"time"

	"github.com/hourstack/time_billing_app/internal/core/domain"
)

// TimeEntryReader defines read operations for time entry data
type TimeEntryReader interface {
	// FindTimeEntryByID retrieves a time entry by its unique identifier.
	FindTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error)

	// ListTimeEntries retrieves entries within [from, to], optionally
	// restricted to one employee, ordered by date.
	ListTimeEntries(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.TimeEntry, error)

	// FindUnbilledEntries retrieves the project's billable, normal-status
	// entries that are not linked to any invoice. The link check is global
	// across all invoices of all projects, not scoped to the target project.
	FindUnbilledEntries(ctx context.Context, projectID string) ([]domain.TimeEntry, error)
}

// TimeEntryWriter defines write operations for time entry data
type TimeEntryWriter interface {
	// SaveTimeEntry persists a new time entry. A second entry for the same
	// (employee, project, date) maps to ErrDuplicate.
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// UpdateTimeEntry updates hours, billable flag, status and notes.
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// DeleteTimeEntry removes an entry.
	DeleteTimeEntry(ctx context.Context, entryID string) error
}

// TimeEntryRepositoryFacade combines all time entry repository interfaces.
type TimeEntryRepositoryFacade interface {
	TimeEntryReader
	TimeEntryWriter
}
