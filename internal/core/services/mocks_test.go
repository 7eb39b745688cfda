package services_test

import (
	"context"
	"time"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

var _ portsrepo.EmployeeRepositoryFacade = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	args := m.Called(ctx, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryFacade = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// --- Mock RoleRepository ---
type MockRoleRepository struct {
	mock.Mock
}

var _ portsrepo.RoleRepositoryFacade = (*MockRoleRepository)(nil)

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.ProjectRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.ProjectRole, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectRole), args.Error(1)
}

func (m *MockRoleRepository) ListRolesByProject(ctx context.Context, projectID string) ([]domain.ProjectRole, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectRole), args.Error(1)
}

func (m *MockRoleRepository) CountAssignmentsByRole(ctx context.Context, roleID string) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, role domain.ProjectRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}

// --- Mock AssignmentRepository ---
type MockAssignmentRepository struct {
	mock.Mock
}

var _ portsrepo.AssignmentRepositoryFacade = (*MockAssignmentRepository)(nil)

func (m *MockAssignmentRepository) FindAssignment(ctx context.Context, employeeID, projectID string) (*domain.ProjectAssignment, error) {
	args := m.Called(ctx, employeeID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) UpsertAssignment(ctx context.Context, assignment domain.ProjectAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) DeleteAssignment(ctx context.Context, employeeID, projectID string) error {
	args := m.Called(ctx, employeeID, projectID)
	return args.Error(0)
}

// --- Mock TimeEntryRepository ---
type MockTimeEntryRepository struct {
	mock.Mock
}

var _ portsrepo.TimeEntryRepositoryFacade = (*MockTimeEntryRepository)(nil)

func (m *MockTimeEntryRepository) FindTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) ListTimeEntries(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, from, to, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindUnbilledEntries(ctx context.Context, projectID string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) DeleteTimeEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, projectID *string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, projectID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) ListUnpaidInvoicesByProject(ctx context.Context, projectID string, latestOnly bool) ([]domain.Invoice, error) {
	args := m.Called(ctx, projectID, latestOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetInvoiceSummary(ctx context.Context) (*domain.InvoiceSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSummary), args.Error(1)
}

func (m *MockInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) FindLinkedEntryIDs(ctx context.Context, invoiceID string) ([]string, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoiceWithLines(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine, entryIDs []string) error {
	args := m.Called(ctx, invoice, lines, entryIDs)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceDetails(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, to domain.InvoiceStatus, updatedBy string, updatedAt time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, to, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateLineRates(ctx context.Context, invoiceID string, lines []domain.InvoiceLine, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, lines, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateLineHours(ctx context.Context, invoiceID, lineID string, hours decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, lineID, hours, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteLine(ctx context.Context, invoiceID, lineID string) error {
	args := m.Called(ctx, invoiceID, lineID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteDraftInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Mock InvoiceExtrasRepository ---
type MockInvoiceExtrasRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceExtrasRepositoryFacade = (*MockInvoiceExtrasRepository)(nil)

func (m *MockInvoiceExtrasRepository) FindManualLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceManualLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceManualLine), args.Error(1)
}

func (m *MockInvoiceExtrasRepository) FindManualLineByID(ctx context.Context, manualLineID string) (*domain.InvoiceManualLine, error) {
	args := m.Called(ctx, manualLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceManualLine), args.Error(1)
}

func (m *MockInvoiceExtrasRepository) FindFeesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceFee, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceFee), args.Error(1)
}

func (m *MockInvoiceExtrasRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.InvoiceFee, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceFee), args.Error(1)
}

func (m *MockInvoiceExtrasRepository) FindAttachmentsByFeeID(ctx context.Context, feeID string) ([]domain.InvoiceFeeAttachment, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceFeeAttachment), args.Error(1)
}

func (m *MockInvoiceExtrasRepository) AddManualLine(ctx context.Context, line domain.InvoiceManualLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockInvoiceExtrasRepository) UpdateManualLine(ctx context.Context, line domain.InvoiceManualLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockInvoiceExtrasRepository) DeleteManualLine(ctx context.Context, invoiceID, manualLineID string) error {
	args := m.Called(ctx, invoiceID, manualLineID)
	return args.Error(0)
}

func (m *MockInvoiceExtrasRepository) AddFee(ctx context.Context, fee domain.InvoiceFee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockInvoiceExtrasRepository) UpdateFee(ctx context.Context, fee domain.InvoiceFee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockInvoiceExtrasRepository) DeleteFee(ctx context.Context, invoiceID, feeID string) error {
	args := m.Called(ctx, invoiceID, feeID)
	return args.Error(0)
}

func (m *MockInvoiceExtrasRepository) AddFeeAttachment(ctx context.Context, invoiceID string, attachment domain.InvoiceFeeAttachment) error {
	args := m.Called(ctx, invoiceID, attachment)
	return args.Error(0)
}

func (m *MockInvoiceExtrasRepository) DeleteFeeAttachment(ctx context.Context, invoiceID, feeID, attachmentID string) error {
	args := m.Called(ctx, invoiceID, feeID, attachmentID)
	return args.Error(0)
}

// --- Mock RateResolver ---
type MockRateResolver struct {
	mock.Mock
}

var _ portssvc.RateResolverSvc = (*MockRateResolver)(nil)

func (m *MockRateResolver) ResolveRate(ctx context.Context, employeeID string, projectID string) (domain.ResolvedRate, error) {
	args := m.Called(ctx, employeeID, projectID)
	return args.Get(0).(domain.ResolvedRate), args.Error(1)
}
