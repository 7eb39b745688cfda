package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type RecalculationServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockRateResolver *MockRateResolver
	service          portssvc.RecalculationSvcFacade
	projectID        string
	userID           string
}

func (suite *RecalculationServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockRateResolver = new(MockRateResolver)
	suite.service = services.NewRecalculationService(suite.mockInvoiceRepo, suite.mockRateResolver)

	suite.projectID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *RecalculationServiceTestSuite) draftInvoice(invoiceID string) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID: invoiceID,
		ProjectID: suite.projectID,
		Status:    domain.InvoiceDraft,
	}
}

// --- Test Cases ---

func (suite *RecalculationServiceTestSuite) TestRecalculateInvoice_RefreshesRatesAndAmounts() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	employeeID := "emp-1"
	newRoleName := "Lead Developer"

	// Line was billed at $50 for 8h; the role rate has since moved to $60.
	staleLine := domain.InvoiceLine{
		LineID:       uuid.NewString(),
		InvoiceID:    invoiceID,
		EmployeeID:   employeeID,
		Hours:        decimal.NewFromInt(8),
		RateSnapshot: decimal.NewFromInt(50),
		Amount:       decimal.NewFromInt(400),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(suite.draftInvoice(invoiceID), nil).Twice()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).Return([]domain.InvoiceLine{staleLine}, nil).Once()
	suite.mockRateResolver.On("ResolveRate", ctx, employeeID, suite.projectID).Return(domain.ResolvedRate{
		Rate:     decimal.NewFromInt(60),
		RoleName: &newRoleName,
	}, nil).Once()

	var updatedLines []domain.InvoiceLine
	suite.mockInvoiceRepo.On("UpdateLineRates", ctx, invoiceID, mock.AnythingOfType("[]domain.InvoiceLine"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			updatedLines = args.Get(2).([]domain.InvoiceLine)
		}).Return(nil).Once()

	_, err := suite.service.RecalculateInvoice(ctx, invoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(updatedLines, 1)
	suite.True(updatedLines[0].Hours.Equal(decimal.NewFromInt(8)), "billed hours must be preserved")
	suite.True(updatedLines[0].RateSnapshot.Equal(decimal.NewFromInt(60)))
	suite.True(updatedLines[0].Amount.Equal(decimal.NewFromInt(480)))
	suite.Require().NotNil(updatedLines[0].RoleName)
	suite.Equal("Lead Developer", *updatedLines[0].RoleName)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *RecalculationServiceTestSuite) TestRecalculateInvoice_NotEditableRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&domain.Invoice{
		InvoiceID: invoiceID,
		ProjectID: suite.projectID,
		Status:    domain.InvoicePaid,
	}, nil).Once()

	_, err := suite.service.RecalculateInvoice(ctx, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotEditable)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateLineRates")
}

func (suite *RecalculationServiceTestSuite) TestRecalculateUnpaidForProject_ContinuesPastFailures() {
	ctx := context.Background()
	goodID := uuid.NewString()
	badID := uuid.NewString()

	suite.mockInvoiceRepo.On("ListUnpaidInvoicesByProject", ctx, suite.projectID, false).Return([]domain.Invoice{
		{InvoiceID: badID, ProjectID: suite.projectID, Status: domain.InvoiceDraft},
		{InvoiceID: goodID, ProjectID: suite.projectID, Status: domain.InvoiceSent},
	}, nil).Once()

	// First invoice blows up on fetch; the batch must keep going.
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, badID).Return(nil, errors.New("connection reset")).Once()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, goodID).Return(&domain.Invoice{
		InvoiceID: goodID,
		ProjectID: suite.projectID,
		Status:    domain.InvoiceSent,
	}, nil).Twice()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, goodID).Return([]domain.InvoiceLine{}, nil).Once()
	suite.mockInvoiceRepo.On("UpdateLineRates", ctx, goodID, mock.AnythingOfType("[]domain.InvoiceLine"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	processed, err := suite.service.RecalculateUnpaidForProject(ctx, suite.projectID, domain.RecalcAll, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, processed)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *RecalculationServiceTestSuite) TestRecalculateUnpaidForProject_LatestScopeUsesLatestOnly() {
	ctx := context.Background()

	suite.mockInvoiceRepo.On("ListUnpaidInvoicesByProject", ctx, suite.projectID, true).Return([]domain.Invoice{}, nil).Once()

	processed, err := suite.service.RecalculateUnpaidForProject(ctx, suite.projectID, domain.RecalcLatest, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, processed)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *RecalculationServiceTestSuite) TestRecalculateUnpaidForProject_StopsOnCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())

	suite.mockInvoiceRepo.On("ListUnpaidInvoicesByProject", ctx, suite.projectID, false).Return([]domain.Invoice{
		{InvoiceID: uuid.NewString(), ProjectID: suite.projectID, Status: domain.InvoiceDraft},
	}, nil).Once()

	cancel()

	processed, err := suite.service.RecalculateUnpaidForProject(ctx, suite.projectID, domain.RecalcAll, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, context.Canceled)
	suite.Equal(0, processed)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID")
}

func TestRecalculationService(t *testing.T) {
	suite.Run(t, new(RecalculationServiceTestSuite))
}
