package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// timeEntryService manages logged hours.
type timeEntryService struct {
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	projectRepo   portsrepo.ProjectRepositoryFacade
	employeeRepo  portsrepo.EmployeeRepositoryFacade
}

// NewTimeEntryService creates a new TimeEntryService.
func NewTimeEntryService(timeEntryRepo portsrepo.TimeEntryRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.TimeEntrySvcFacade {
	return &timeEntryService{
		timeEntryRepo: timeEntryRepo,
		projectRepo:   projectRepo,
		employeeRepo:  employeeRepo,
	}
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

// CreateTimeEntry logs hours for an employee on a project. Hours on internal
// projects are forced non-billable no matter what the request says.
func (s *timeEntryService) CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Hours.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("hours must be positive: %w", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, apperrors.ErrValidation)
	}

	billable := req.Billable
	if project.IsInternal && billable {
		logger.Info("Forcing non-billable entry on internal project")
		billable = false
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		EntryID:    uuid.NewString(),
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		Date:       date,
		Hours:      req.Hours,
		Billable:   billable,
		Status:     domain.EntryNormal,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.timeEntryRepo.SaveTimeEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save time entry: %w", err)
	}

	return &entry, nil
}

// GetTimeEntryByID retrieves a single time entry.
func (s *timeEntryService) GetTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	return s.timeEntryRepo.FindTimeEntryByID(ctx, entryID)
}

// ListTimeEntries retrieves entries within a date range.
func (s *timeEntryService) ListTimeEntries(ctx context.Context, params dto.ListTimeEntriesParams) ([]domain.TimeEntry, error) {
	from, err := time.Parse(dateLayout, params.From)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", params.From, apperrors.ErrValidation)
	}
	to, err := time.Parse(dateLayout, params.To)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", params.To, apperrors.ErrValidation)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("to date precedes from date: %w", apperrors.ErrValidation)
	}

	return s.timeEntryRepo.ListTimeEntries(ctx, from, to, params.EmployeeID)
}

// UpdateTimeEntry updates an entry's date, hours, billable flag, status or
// notes. The internal-project rule applies to billable updates too.
func (s *timeEntryService) UpdateTimeEntry(ctx context.Context, entryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error) {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, parseErr := time.Parse(dateLayout, *req.Date)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid date %q: %w", *req.Date, apperrors.ErrValidation)
		}
		entry.Date = date
	}
	if req.Hours != nil {
		if req.Hours.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("hours must be positive: %w", apperrors.ErrValidation)
		}
		entry.Hours = *req.Hours
	}
	if req.Billable != nil {
		billable := *req.Billable
		if billable {
			project, findErr := s.projectRepo.FindProjectByID(ctx, entry.ProjectID)
			if findErr != nil {
				return nil, findErr
			}
			if project.IsInternal {
				billable = false
			}
		}
		entry.Billable = billable
	}
	if req.Status != nil {
		entry.Status = domain.TimeEntryStatus(*req.Status)
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = requestingUserID

	if err := s.timeEntryRepo.UpdateTimeEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to update time entry %s: %w", entryID, err)
	}

	return entry, nil
}

// DeleteTimeEntry removes an entry.
func (s *timeEntryService) DeleteTimeEntry(ctx context.Context, entryID string) error {
	return s.timeEntryRepo.DeleteTimeEntry(ctx, entryID)
}
