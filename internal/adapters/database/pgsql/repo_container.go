package pgsql

import (
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the concrete pgx repositories into the bundle
// the service container consumes.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	companyRepo := NewPgxCompanyRepository(dbPool)
	accountRepo := NewPgxAccountRepository(dbPool)
	periodRepo := NewPgxPeriodRepository(dbPool)
	sequencer := NewPgxSequenceRepository()
	entryRepo := NewPgxEntryRepository(dbPool, sequencer)
	reportingRepo := NewPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CompanyRepo:   companyRepo,
		AccountRepo:   accountRepo,
		PeriodRepo:    periodRepo,
		EntryRepo:     entryRepo,
		ReportingRepo: reportingRepo,
	}
}
