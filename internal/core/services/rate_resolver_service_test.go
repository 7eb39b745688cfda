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
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type RateResolverServiceTestSuite struct {
	suite.Suite
	mockAssignmentRepo *MockAssignmentRepository
	mockRoleRepo       *MockRoleRepository
	service            portssvc.RateResolverSvc
	employeeID         string
	projectID          string
}

func (suite *RateResolverServiceTestSuite) SetupTest() {
	suite.mockAssignmentRepo = new(MockAssignmentRepository)
	suite.mockRoleRepo = new(MockRoleRepository)
	suite.service = services.NewRateResolverService(suite.mockAssignmentRepo, suite.mockRoleRepo)

	suite.employeeID = uuid.NewString()
	suite.projectID = uuid.NewString()
}

// --- Test Cases ---

func (suite *RateResolverServiceTestSuite) TestResolveRate_AssignedWithRole() {
	ctx := context.Background()
	roleID := uuid.NewString()

	assignment := &domain.ProjectAssignment{
		AssignmentID: uuid.NewString(),
		EmployeeID:   suite.employeeID,
		ProjectID:    suite.projectID,
		RoleID:       &roleID,
	}
	role := &domain.ProjectRole{
		RoleID:        roleID,
		ProjectID:     suite.projectID,
		Name:          "Senior Developer",
		HourlyRateUSD: decimal.NewFromInt(50),
	}

	suite.mockAssignmentRepo.On("FindAssignment", ctx, suite.employeeID, suite.projectID).Return(assignment, nil).Once()
	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).Return(role, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, suite.employeeID, suite.projectID)

	suite.Require().NoError(err)
	suite.True(resolved.Rate.Equal(decimal.NewFromInt(50)))
	suite.Require().NotNil(resolved.RoleName)
	suite.Equal("Senior Developer", *resolved.RoleName)

	suite.mockAssignmentRepo.AssertExpectations(suite.T())
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_NoAssignmentFallsBackToZero() {
	ctx := context.Background()

	suite.mockAssignmentRepo.On("FindAssignment", ctx, suite.employeeID, suite.projectID).Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveRate(ctx, suite.employeeID, suite.projectID)

	suite.Require().NoError(err)
	suite.True(resolved.Rate.IsZero())
	suite.Nil(resolved.RoleName)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_AssignmentWithoutRoleFallsBackToZero() {
	ctx := context.Background()

	assignment := &domain.ProjectAssignment{
		AssignmentID: uuid.NewString(),
		EmployeeID:   suite.employeeID,
		ProjectID:    suite.projectID,
		RoleID:       nil,
	}
	suite.mockAssignmentRepo.On("FindAssignment", ctx, suite.employeeID, suite.projectID).Return(assignment, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, suite.employeeID, suite.projectID)

	suite.Require().NoError(err)
	suite.True(resolved.Rate.IsZero())
	suite.Nil(resolved.RoleName)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "FindRoleByID")
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_DeletedRoleFallsBackToZero() {
	ctx := context.Background()
	roleID := uuid.NewString()

	assignment := &domain.ProjectAssignment{
		AssignmentID: uuid.NewString(),
		EmployeeID:   suite.employeeID,
		ProjectID:    suite.projectID,
		RoleID:       &roleID,
	}
	suite.mockAssignmentRepo.On("FindAssignment", ctx, suite.employeeID, suite.projectID).Return(assignment, nil).Once()
	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveRate(ctx, suite.employeeID, suite.projectID)

	suite.Require().NoError(err)
	suite.True(resolved.Rate.IsZero())
	suite.Nil(resolved.RoleName)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_RepositoryErrorPropagates() {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	suite.mockAssignmentRepo.On("FindAssignment", ctx, suite.employeeID, suite.projectID).Return(nil, dbErr).Once()

	_, err := suite.service.ResolveRate(ctx, suite.employeeID, suite.projectID)

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
}

func TestRateResolverService(t *testing.T) {
	suite.Run(t, new(RateResolverServiceTestSuite))
}
