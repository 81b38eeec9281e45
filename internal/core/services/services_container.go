package services

import (
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
)

// NewServiceContainer wires all application services from the repository
// provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Tenant:       NewTenantService(repos.TenantRepo),
		Account:      NewAccountService(repos.AccountRepo),
		FiscalPeriod: NewFiscalPeriodService(repos.FiscalPeriodRepo),
		Journal:      NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.FiscalPeriodRepo),
		Reporting:    NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.FiscalPeriodRepo),
		APIKey:       NewAPIKeyService(repos.APIKeyRepo),
	}
}
