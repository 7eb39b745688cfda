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
type InvoiceExtrasServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo       *MockInvoiceRepository
	mockInvoiceExtrasRepo *MockInvoiceExtrasRepository
	service               portssvc.InvoiceExtrasSvcFacade
	invoiceID             string
	userID                string
}

func (suite *InvoiceExtrasServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockInvoiceExtrasRepo = new(MockInvoiceExtrasRepository)
	suite.service = services.NewInvoiceExtrasService(suite.mockInvoiceRepo, suite.mockInvoiceExtrasRepo)

	suite.invoiceID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *InvoiceExtrasServiceTestSuite) TestAddManualLine_DerivesTotalServerSide() {
	ctx := context.Background()

	var savedLine domain.InvoiceManualLine
	suite.mockInvoiceExtrasRepo.On("AddManualLine", ctx, mock.AnythingOfType("domain.InvoiceManualLine")).
		Run(func(args mock.Arguments) {
			savedLine = args.Get(1).(domain.InvoiceManualLine)
		}).Return(nil).Once()

	line, err := suite.service.AddManualLine(ctx, suite.invoiceID, dto.CreateManualLineRequest{
		PersonName: "External Contractor",
		Hours:      decimal.NewFromInt(10),
		RateUSD:    decimal.NewFromInt(75),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(line.LineTotal.Equal(decimal.NewFromInt(750)))
	suite.True(savedLine.LineTotal.Equal(decimal.NewFromInt(750)))
	suite.Equal(suite.invoiceID, savedLine.InvoiceID)
	suite.Equal(suite.userID, savedLine.CreatedBy)
}

func (suite *InvoiceExtrasServiceTestSuite) TestUpdateManualLine_RederivesTotal() {
	ctx := context.Background()
	manualLineID := uuid.NewString()
	newHours := decimal.NewFromInt(4)

	existing := &domain.InvoiceManualLine{
		ManualLineID: manualLineID,
		InvoiceID:    suite.invoiceID,
		PersonName:   "External Contractor",
		Hours:        decimal.NewFromInt(10),
		RateUSD:      decimal.NewFromInt(75),
		LineTotal:    decimal.NewFromInt(750),
	}

	suite.mockInvoiceExtrasRepo.On("FindManualLineByID", ctx, manualLineID).Return(existing, nil).Once()

	var savedLine domain.InvoiceManualLine
	suite.mockInvoiceExtrasRepo.On("UpdateManualLine", ctx, mock.AnythingOfType("domain.InvoiceManualLine")).
		Run(func(args mock.Arguments) {
			savedLine = args.Get(1).(domain.InvoiceManualLine)
		}).Return(nil).Once()

	line, err := suite.service.UpdateManualLine(ctx, suite.invoiceID, manualLineID, dto.UpdateManualLineRequest{Hours: &newHours}, suite.userID)

	suite.Require().NoError(err)
	suite.True(line.LineTotal.Equal(decimal.NewFromInt(300)))
	suite.True(savedLine.LineTotal.Equal(decimal.NewFromInt(300)))
	suite.Equal(suite.userID, savedLine.LastUpdatedBy)
}

func (suite *InvoiceExtrasServiceTestSuite) TestUpdateManualLine_WrongInvoiceNotFound() {
	ctx := context.Background()
	manualLineID := uuid.NewString()

	suite.mockInvoiceExtrasRepo.On("FindManualLineByID", ctx, manualLineID).Return(&domain.InvoiceManualLine{
		ManualLineID: manualLineID,
		InvoiceID:    uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.UpdateManualLine(ctx, suite.invoiceID, manualLineID, dto.UpdateManualLineRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceExtrasRepo.AssertNotCalled(suite.T(), "UpdateManualLine")
}

func (suite *InvoiceExtrasServiceTestSuite) TestAddFee_DerivesTotalServerSide() {
	ctx := context.Background()

	var savedFee domain.InvoiceFee
	suite.mockInvoiceExtrasRepo.On("AddFee", ctx, mock.AnythingOfType("domain.InvoiceFee")).
		Run(func(args mock.Arguments) {
			savedFee = args.Get(1).(domain.InvoiceFee)
		}).Return(nil).Once()

	fee, err := suite.service.AddFee(ctx, suite.invoiceID, dto.CreateFeeRequest{
		Label:        "Hosting",
		Quantity:     decimal.NewFromInt(3),
		UnitPriceUSD: decimal.NewFromInt(20),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(fee.FeeTotal.Equal(decimal.NewFromInt(60)))
	suite.True(savedFee.FeeTotal.Equal(decimal.NewFromInt(60)))
	suite.Equal(suite.invoiceID, savedFee.InvoiceID)
}

func (suite *InvoiceExtrasServiceTestSuite) TestUpdateFee_WrongInvoiceNotFound() {
	ctx := context.Background()
	feeID := uuid.NewString()

	suite.mockInvoiceExtrasRepo.On("FindFeeByID", ctx, feeID).Return(&domain.InvoiceFee{
		FeeID:     feeID,
		InvoiceID: uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.UpdateFee(ctx, suite.invoiceID, feeID, dto.UpdateFeeRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceExtrasRepo.AssertNotCalled(suite.T(), "UpdateFee")
}

func (suite *InvoiceExtrasServiceTestSuite) TestAddFeeAttachment_VerifiesFeeOwnership() {
	ctx := context.Background()
	feeID := uuid.NewString()

	suite.mockInvoiceExtrasRepo.On("FindFeeByID", ctx, feeID).Return(&domain.InvoiceFee{
		FeeID:     feeID,
		InvoiceID: suite.invoiceID,
	}, nil).Once()
	suite.mockInvoiceExtrasRepo.On("AddFeeAttachment", ctx, suite.invoiceID, mock.AnythingOfType("domain.InvoiceFeeAttachment")).Return(nil).Once()

	attachment, err := suite.service.AddFeeAttachment(ctx, suite.invoiceID, feeID, dto.CreateFeeAttachmentRequest{
		FileName: "receipt.pdf",
		FileURL:  "https://files.example.com/receipt.pdf",
		FileSize: 2048,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(feeID, attachment.FeeID)
	suite.Equal("receipt.pdf", attachment.FileName)
	suite.mockInvoiceExtrasRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceExtrasServiceTestSuite) TestListManualLines_MissingInvoicePropagates() {
	ctx := context.Background()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListManualLines(ctx, suite.invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceExtrasRepo.AssertNotCalled(suite.T(), "FindManualLinesByInvoiceID")
}

func TestInvoiceExtrasService(t *testing.T) {
	suite.Run(t, new(InvoiceExtrasServiceTestSuite))
}
