package services_test

import (
	"context"
	"testing"
	"time"

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
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo       *MockInvoiceRepository
	mockInvoiceExtrasRepo *MockInvoiceExtrasRepository
	mockTimeEntryRepo     *MockTimeEntryRepository
	mockProjectRepo       *MockProjectRepository
	mockEmployeeRepo      *MockEmployeeRepository
	mockRateResolver      *MockRateResolver
	service               portssvc.InvoiceSvcFacade
	project               domain.Project
	userID                string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockInvoiceExtrasRepo = new(MockInvoiceExtrasRepository)
	suite.mockTimeEntryRepo = new(MockTimeEntryRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockRateResolver = new(MockRateResolver)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockInvoiceExtrasRepo,
		suite.mockTimeEntryRepo,
		suite.mockProjectRepo,
		suite.mockEmployeeRepo,
		suite.mockRateResolver,
	)

	suite.userID = uuid.NewString()
	suite.project = domain.Project{
		ProjectID: uuid.NewString(),
		Name:      "Acme Website",
		ClientID:  uuid.NewString(),
		IsActive:  true,
	}
}

func (suite *InvoiceServiceTestSuite) newEntry(employeeID string, day int, hours int64) domain.TimeEntry {
	return domain.TimeEntry{
		EntryID:    uuid.NewString(),
		EmployeeID: employeeID,
		ProjectID:  suite.project.ProjectID,
		Date:       time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		Hours:      decimal.NewFromInt(hours),
		Billable:   true,
		Status:     domain.EntryNormal,
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AggregatesHoursPerEmployee() {
	ctx := context.Background()
	employeeID := "emp-1"
	roleName := "Developer"

	// 5h + 3h across two days should collapse into one 8h line at $50/h.
	entries := []domain.TimeEntry{
		suite.newEntry(employeeID, 1, 5),
		suite.newEntry(employeeID, 2, 3),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(&suite.project, nil).Once()
	suite.mockTimeEntryRepo.On("FindUnbilledEntries", ctx, suite.project.ProjectID).Return(entries, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{employeeID}).Return(map[string]domain.Employee{
		employeeID: {EmployeeID: employeeID, Name: "Alice"},
	}, nil).Once()
	suite.mockRateResolver.On("ResolveRate", ctx, employeeID, suite.project.ProjectID).Return(domain.ResolvedRate{
		Rate:     decimal.NewFromInt(50),
		RoleName: &roleName,
	}, nil).Once()

	var savedLines []domain.InvoiceLine
	var savedEntryIDs []string
	suite.mockInvoiceRepo.On("SaveInvoiceWithLines", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine"), mock.AnythingOfType("[]string")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.InvoiceLine)
			savedEntryIDs = args.Get(3).([]string)
		}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, dto.CreateInvoiceRequest{ProjectID: suite.project.ProjectID}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.InvoiceDraft, invoice.Status)
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(400)))
	suite.True(invoice.Total.Equal(decimal.NewFromInt(400)))
	suite.True(invoice.Discount.IsZero())

	suite.Require().Len(savedLines, 1)
	suite.Equal(employeeID, savedLines[0].EmployeeID)
	suite.Equal("Alice", savedLines[0].EmployeeName)
	suite.True(savedLines[0].Hours.Equal(decimal.NewFromInt(8)))
	suite.True(savedLines[0].RateSnapshot.Equal(decimal.NewFromInt(50)))
	suite.True(savedLines[0].Amount.Equal(decimal.NewFromInt(400)))
	suite.Len(savedEntryIDs, 2)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoUnbilledEntriesYieldsEmptyDraft() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(&suite.project, nil).Once()
	suite.mockTimeEntryRepo.On("FindUnbilledEntries", ctx, suite.project.ProjectID).Return([]domain.TimeEntry{}, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{}).Return(map[string]domain.Employee{}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithLines", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine"), mock.AnythingOfType("[]string")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, dto.CreateInvoiceRequest{ProjectID: suite.project.ProjectID}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.InvoiceDraft, invoice.Status)
	suite.True(invoice.Subtotal.IsZero())
	suite.True(invoice.Total.IsZero())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ZeroRateFallbackProducesZeroAmountLine() {
	ctx := context.Background()
	employeeID := "emp-2"

	entries := []domain.TimeEntry{suite.newEntry(employeeID, 3, 4)}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(&suite.project, nil).Once()
	suite.mockTimeEntryRepo.On("FindUnbilledEntries", ctx, suite.project.ProjectID).Return(entries, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{employeeID}).Return(map[string]domain.Employee{
		employeeID: {EmployeeID: employeeID, Name: "Bob"},
	}, nil).Once()
	suite.mockRateResolver.On("ResolveRate", ctx, employeeID, suite.project.ProjectID).Return(domain.ResolvedRate{Rate: decimal.Zero}, nil).Once()

	var savedLines []domain.InvoiceLine
	suite.mockInvoiceRepo.On("SaveInvoiceWithLines", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine"), mock.AnythingOfType("[]string")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.InvoiceLine)
		}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, dto.CreateInvoiceRequest{ProjectID: suite.project.ProjectID}, suite.userID)

	suite.Require().NoError(err)
	suite.True(invoice.Subtotal.IsZero())
	suite.Require().Len(savedLines, 1)
	suite.True(savedLines[0].RateSnapshot.IsZero())
	suite.True(savedLines[0].Amount.IsZero())
	suite.Nil(savedLines[0].RoleName)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateBillingAborts() {
	ctx := context.Background()
	employeeID := "emp-3"

	entries := []domain.TimeEntry{suite.newEntry(employeeID, 4, 2)}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(&suite.project, nil).Once()
	suite.mockTimeEntryRepo.On("FindUnbilledEntries", ctx, suite.project.ProjectID).Return(entries, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{employeeID}).Return(map[string]domain.Employee{}, nil).Once()
	suite.mockRateResolver.On("ResolveRate", ctx, employeeID, suite.project.ProjectID).Return(domain.ResolvedRate{Rate: decimal.NewFromInt(60)}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithLines", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine"), mock.AnythingOfType("[]string")).Return(apperrors.ErrDuplicateBilling).Once()

	_, err := suite.service.CreateInvoice(ctx, dto.CreateInvoiceRequest{ProjectID: suite.project.ProjectID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateBilling)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_NegativeDiscountRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	negative := decimal.NewFromInt(-5)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&domain.Invoice{
		InvoiceID: invoiceID,
		Status:    domain.InvoiceDraft,
	}, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{Discount: &negative}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceDetails")
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_UnknownStatusRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	_, err := suite.service.TransitionInvoice(ctx, invoiceID, dto.TransitionInvoiceRequest{Status: "archived"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "TransitionInvoiceStatus")
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_DelegatesToRepository() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	transitioned := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSent}

	suite.mockInvoiceRepo.On("TransitionInvoiceStatus", ctx, invoiceID, domain.InvoiceSent, suite.userID, mock.AnythingOfType("time.Time")).Return(transitioned, nil).Once()

	invoice, err := suite.service.TransitionInvoice(ctx, invoiceID, dto.TransitionInvoiceRequest{Status: "sent"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, invoice.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_ReturnsRederivedTotals() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	// The repository re-derives subtotal/total inside the transition
	// transaction; the service must surface the persisted row unchanged.
	persisted := &domain.Invoice{
		InvoiceID: invoiceID,
		Status:    domain.InvoiceSent,
		Subtotal:  decimal.NewFromInt(550),
		Discount:  decimal.NewFromInt(25),
		Total:     decimal.NewFromInt(525),
	}

	suite.mockInvoiceRepo.On("TransitionInvoiceStatus", ctx, invoiceID, domain.InvoiceSent, suite.userID, mock.AnythingOfType("time.Time")).Return(persisted, nil).Once()

	invoice, err := suite.service.TransitionInvoice(ctx, invoiceID, dto.TransitionInvoiceRequest{Status: "sent"}, suite.userID)

	suite.Require().NoError(err)
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(550)))
	suite.True(invoice.Total.Equal(decimal.NewFromInt(525)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateLineHours_NonPositiveRejected() {
	ctx := context.Background()

	err := suite.service.UpdateLineHours(ctx, uuid.NewString(), uuid.NewString(), dto.UpdateLineHoursRequest{Hours: decimal.Zero}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateLineHours")
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceDetail_ComposesChildCollections() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&domain.Invoice{
		InvoiceID: invoiceID,
		Status:    domain.InvoiceDraft,
	}, nil).Once()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).Return([]domain.InvoiceLine{
		{LineID: uuid.NewString(), InvoiceID: invoiceID, EmployeeName: "Alice"},
	}, nil).Once()
	suite.mockInvoiceExtrasRepo.On("FindManualLinesByInvoiceID", ctx, invoiceID).Return([]domain.InvoiceManualLine{
		{ManualLineID: uuid.NewString(), InvoiceID: invoiceID, PersonName: "Contractor"},
	}, nil).Once()
	suite.mockInvoiceExtrasRepo.On("FindFeesByInvoiceID", ctx, invoiceID).Return([]domain.InvoiceFee{
		{FeeID: uuid.NewString(), InvoiceID: invoiceID, Label: "Hosting"},
	}, nil).Once()
	entryID := uuid.NewString()
	suite.mockInvoiceRepo.On("FindLinkedEntryIDs", ctx, invoiceID).Return([]string{entryID}, nil).Once()

	detail, err := suite.service.GetInvoiceDetail(ctx, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(invoiceID, detail.Invoice.InvoiceID)
	suite.Len(detail.Lines, 1)
	suite.Len(detail.ManualLines, 1)
	suite.Len(detail.Fees, 1)
	suite.Equal([]string{entryID}, detail.LinkedEntryIDs)
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
