package services

import (
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first since period creation verifies the tenant.
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, container.Company)
	container.Entry = NewEntryService(repos.EntryRepo, container.Account, container.Period)
	container.Ledger = NewLedgerService(repos.ReportingRepo)

	return container
}

// Compile-time interface implementation checks
var (
	_ portssvc.CompanySvcFacade = (*companyService)(nil)
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.PeriodSvcFacade  = (*periodService)(nil)
	_ portssvc.EntrySvcFacade   = (*entryService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
)
