package services_test

import (
	"context"
	"testing"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/core/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type TimeEntryServiceTestSuite struct {
	suite.Suite
	mockTimeEntryRepo *MockTimeEntryRepository
	mockProjectRepo   *MockProjectRepository
	mockEmployeeRepo  *MockEmployeeRepository
	service           portssvc.TimeEntrySvcFacade
	employeeID        string
	projectID         string
	userID            string
}

func (suite *TimeEntryServiceTestSuite) SetupTest() {
	suite.mockTimeEntryRepo = new(MockTimeEntryRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.service = services.NewTimeEntryService(suite.mockTimeEntryRepo, suite.mockProjectRepo, suite.mockEmployeeRepo)

	suite.employeeID = uuid.NewString()
	suite.projectID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TimeEntryServiceTestSuite) createRequest(billable bool) dto.CreateTimeEntryRequest {
	return dto.CreateTimeEntryRequest{
		EmployeeID: suite.employeeID,
		ProjectID:  suite.projectID,
		Date:       "2025-06-02",
		Hours:      decimal.NewFromInt(6),
		Billable:   billable,
	}
}

// --- Test Cases ---

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_Success() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&domain.Project{
		ProjectID: suite.projectID,
		IsActive:  true,
	}, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, suite.employeeID).Return(&domain.Employee{EmployeeID: suite.employeeID}, nil).Once()

	var savedEntry domain.TimeEntry
	suite.mockTimeEntryRepo.On("SaveTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.TimeEntry)
		}).Return(nil).Once()

	entry, err := suite.service.CreateTimeEntry(ctx, suite.createRequest(true), suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Billable)
	suite.Equal(domain.EntryNormal, entry.Status)
	suite.True(savedEntry.Hours.Equal(decimal.NewFromInt(6)))
	suite.Equal(suite.userID, savedEntry.CreatedBy)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_InternalProjectForcesNonBillable() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&domain.Project{
		ProjectID:  suite.projectID,
		IsActive:   true,
		IsInternal: true,
	}, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, suite.employeeID).Return(&domain.Employee{EmployeeID: suite.employeeID}, nil).Once()

	var savedEntry domain.TimeEntry
	suite.mockTimeEntryRepo.On("SaveTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.TimeEntry)
		}).Return(nil).Once()

	entry, err := suite.service.CreateTimeEntry(ctx, suite.createRequest(true), suite.userID)

	suite.Require().NoError(err)
	suite.False(entry.Billable)
	suite.False(savedEntry.Billable)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_NonPositiveHoursRejected() {
	ctx := context.Background()

	req := suite.createRequest(true)
	req.Hours = decimal.Zero

	_, err := suite.service.CreateTimeEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTimeEntryRepo.AssertNotCalled(suite.T(), "SaveTimeEntry")
}

func (suite *TimeEntryServiceTestSuite) TestListTimeEntries_ReversedRangeRejected() {
	ctx := context.Background()

	_, err := suite.service.ListTimeEntries(ctx, dto.ListTimeEntriesParams{
		From: "2025-06-30",
		To:   "2025-06-01",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTimeEntryRepo.AssertNotCalled(suite.T(), "ListTimeEntries")
}

func (suite *TimeEntryServiceTestSuite) TestUpdateTimeEntry_BillableOnInternalProjectStaysOff() {
	ctx := context.Background()
	entryID := uuid.NewString()
	billable := true

	suite.mockTimeEntryRepo.On("FindTimeEntryByID", ctx, entryID).Return(&domain.TimeEntry{
		EntryID:    entryID,
		EmployeeID: suite.employeeID,
		ProjectID:  suite.projectID,
		Billable:   false,
		Status:     domain.EntryNormal,
	}, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&domain.Project{
		ProjectID:  suite.projectID,
		IsInternal: true,
	}, nil).Once()
	suite.mockTimeEntryRepo.On("UpdateTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil).Once()

	entry, err := suite.service.UpdateTimeEntry(ctx, entryID, dto.UpdateTimeEntryRequest{Billable: &billable}, suite.userID)

	suite.Require().NoError(err)
	suite.False(entry.Billable)
}

func (suite *TimeEntryServiceTestSuite) TestDeleteTimeEntry_BilledEntryConflictPropagates() {
	ctx := context.Background()
	entryID := uuid.NewString()

	// The repository maps the invoice link FK violation to a conflict; the
	// service must surface it unchanged so the handler answers 409.
	repoErr := apperrors.NewAppError(409, "time entry "+entryID+" is billed on an invoice and cannot be deleted", apperrors.ErrDuplicateBilling)
	suite.mockTimeEntryRepo.On("DeleteTimeEntry", ctx, entryID).Return(repoErr).Once()

	err := suite.service.DeleteTimeEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateBilling)
	suite.mockTimeEntryRepo.AssertExpectations(suite.T())
}

func TestTimeEntryService(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}
