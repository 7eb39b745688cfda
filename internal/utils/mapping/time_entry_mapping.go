package mapping

import (
	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/hourstack/time_billing_app/internal/models"
)

// ToModelTimeEntry converts a domain TimeEntry to a model TimeEntry
func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	return models.TimeEntry{
		EntryID:     d.EntryID,
		EmployeeID:  d.EmployeeID,
		ProjectID:   d.ProjectID,
		Date:        d.Date,
		Hours:       d.Hours,
		Billable:    d.Billable,
		Status:      models.TimeEntryStatus(d.Status),
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimeEntry converts a model TimeEntry to a domain TimeEntry
func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		EntryID:     m.EntryID,
		EmployeeID:  m.EmployeeID,
		ProjectID:   m.ProjectID,
		Date:        m.Date,
		Hours:       m.Hours,
		Billable:    m.Billable,
		Status:      domain.TimeEntryStatus(m.Status),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTimeEntrySlice converts model TimeEntries to domain TimeEntries
func ToDomainTimeEntrySlice(ms []models.TimeEntry) []domain.TimeEntry {
	ds := make([]domain.TimeEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTimeEntry(m)
	}
	return ds
}
