package services

import (
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate resolver comes first since invoicing and recalculation depend
	// on it.
	container.RateResolver = NewRateResolverService(repos.AssignmentRepo, repos.RoleRepo)

	container.Employee = NewEmployeeService(repos.EmployeeRepo)
	container.Project = NewProjectService(repos.ProjectRepo, repos.RoleRepo, repos.AssignmentRepo, repos.EmployeeRepo)
	container.TimeEntry = NewTimeEntryService(repos.TimeEntryRepo, repos.ProjectRepo, repos.EmployeeRepo)
	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.InvoiceExtrasRepo,
		repos.TimeEntryRepo,
		repos.ProjectRepo,
		repos.EmployeeRepo,
		container.RateResolver,
	)
	container.InvoiceExtras = NewInvoiceExtrasService(repos.InvoiceRepo, repos.InvoiceExtrasRepo)
	container.Recalculation = NewRecalculationService(repos.InvoiceRepo, container.RateResolver)

	return container
}
