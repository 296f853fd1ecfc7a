package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	CompanyRepo   CompanyRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	PeriodRepo    PeriodRepositoryWithTx
	EntryRepo     EntryRepositoryWithTx
	ReportingRepo ReportingRepository
}
