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
type ProjectServiceTestSuite struct {
	suite.Suite
	mockProjectRepo    *MockProjectRepository
	mockRoleRepo       *MockRoleRepository
	mockAssignmentRepo *MockAssignmentRepository
	mockEmployeeRepo   *MockEmployeeRepository
	service            portssvc.ProjectSvcFacade
	projectID          string
	userID             string
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockRoleRepo = new(MockRoleRepository)
	suite.mockAssignmentRepo = new(MockAssignmentRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.service = services.NewProjectService(suite.mockProjectRepo, suite.mockRoleRepo, suite.mockAssignmentRepo, suite.mockEmployeeRepo)

	suite.projectID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ProjectServiceTestSuite) TestCreateProject_Success() {
	ctx := context.Background()

	var savedProject domain.Project
	suite.mockProjectRepo.On("SaveProject", ctx, mock.AnythingOfType("domain.Project")).
		Run(func(args mock.Arguments) {
			savedProject = args.Get(1).(domain.Project)
		}).Return(nil).Once()

	project, err := suite.service.CreateProject(ctx, dto.CreateProjectRequest{
		Name:     "Acme Website",
		ClientID: uuid.NewString(),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(project.IsActive)
	suite.NotEmpty(savedProject.ProjectID)
	suite.Equal(suite.userID, savedProject.CreatedBy)
}

func (suite *ProjectServiceTestSuite) TestCreateRole_MissingProjectRejected() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateRole(ctx, suite.projectID, dto.CreateProjectRoleRequest{
		Name:          "Developer",
		HourlyRateUSD: decimal.NewFromInt(50),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "SaveRole")
}

func (suite *ProjectServiceTestSuite) TestUpdateRole_WrongProjectNotFound() {
	ctx := context.Background()
	roleID := uuid.NewString()
	newName := "Architect"

	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).Return(&domain.ProjectRole{
		RoleID:    roleID,
		ProjectID: uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.UpdateRole(ctx, suite.projectID, roleID, dto.UpdateProjectRoleRequest{Name: &newName}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "UpdateRole")
}

func (suite *ProjectServiceTestSuite) TestDeleteRole_InUseRejected() {
	ctx := context.Background()
	roleID := uuid.NewString()

	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).Return(&domain.ProjectRole{
		RoleID:    roleID,
		ProjectID: suite.projectID,
	}, nil).Once()
	suite.mockRoleRepo.On("CountAssignmentsByRole", ctx, roleID).Return(int64(2), nil).Once()

	err := suite.service.DeleteRole(ctx, suite.projectID, roleID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRoleInUse)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "DeleteRole")
}

func (suite *ProjectServiceTestSuite) TestDeleteRole_UnreferencedRoleDeleted() {
	ctx := context.Background()
	roleID := uuid.NewString()

	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).Return(&domain.ProjectRole{
		RoleID:    roleID,
		ProjectID: suite.projectID,
	}, nil).Once()
	suite.mockRoleRepo.On("CountAssignmentsByRole", ctx, roleID).Return(int64(0), nil).Once()
	suite.mockRoleRepo.On("DeleteRole", ctx, roleID).Return(nil).Once()

	err := suite.service.DeleteRole(ctx, suite.projectID, roleID)

	suite.Require().NoError(err)
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestAssignEmployee_RoleFromOtherProjectRejected() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	roleID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&domain.Project{ProjectID: suite.projectID}, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, employeeID).Return(&domain.Employee{EmployeeID: employeeID}, nil).Once()
	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).Return(&domain.ProjectRole{
		RoleID:    roleID,
		ProjectID: uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.AssignEmployee(ctx, suite.projectID, employeeID, dto.AssignEmployeeRequest{RoleID: &roleID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "UpsertAssignment")
}

func (suite *ProjectServiceTestSuite) TestAssignEmployee_UpsertsAndReturnsStoredRow() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	roleID := uuid.NewString()

	stored := &domain.ProjectAssignment{
		AssignmentID: uuid.NewString(),
		EmployeeID:   employeeID,
		ProjectID:    suite.projectID,
		RoleID:       &roleID,
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&domain.Project{ProjectID: suite.projectID}, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, employeeID).Return(&domain.Employee{EmployeeID: employeeID}, nil).Once()
	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).Return(&domain.ProjectRole{
		RoleID:    roleID,
		ProjectID: suite.projectID,
	}, nil).Once()
	suite.mockAssignmentRepo.On("UpsertAssignment", ctx, mock.AnythingOfType("domain.ProjectAssignment")).Return(nil).Once()
	suite.mockAssignmentRepo.On("FindAssignment", ctx, employeeID, suite.projectID).Return(stored, nil).Once()

	assignment, err := suite.service.AssignEmployee(ctx, suite.projectID, employeeID, dto.AssignEmployeeRequest{RoleID: &roleID}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(stored.AssignmentID, assignment.AssignmentID)
	suite.mockAssignmentRepo.AssertExpectations(suite.T())
}

func TestProjectService(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
