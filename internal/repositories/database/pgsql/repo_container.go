package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	fiscalPeriodRepo := newPgxFiscalPeriodRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	apiKeyRepo := newPgxAPIKeyRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TenantRepo:       tenantRepo,
		AccountRepo:      accountRepo,
		FiscalPeriodRepo: fiscalPeriodRepo,
		JournalRepo:      journalRepo,
		ReportingRepo:    reportingRepo,
		APIKeyRepo:       apiKeyRepo,
	}
}
