package pgsql

import (
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	employeeRepo := newPgxEmployeeRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	roleRepo := newPgxRoleRepository(dbPool)
	assignmentRepo := newPgxAssignmentRepository(dbPool)
	timeEntryRepo := newPgxTimeEntryRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	invoiceExtrasRepo := newPgxInvoiceExtrasRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EmployeeRepo:      employeeRepo,
		ProjectRepo:       projectRepo,
		RoleRepo:          roleRepo,
		AssignmentRepo:    assignmentRepo,
		TimeEntryRepo:     timeEntryRepo,
		InvoiceRepo:       invoiceRepo,
		InvoiceExtrasRepo: invoiceExtrasRepo,
	}
}
