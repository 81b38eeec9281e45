package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
	"github.com/contabix/contabix_backend/internal/utils/accounting"
)

// reportingService derives read-only reports by replaying POSTED lines.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	periodRepo    portsrepo.FiscalPeriodRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodRepositoryFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		periodRepo:    periodRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance builds the per-account activity summary for one fiscal
// period. Rows carry raw debit/credit sums plus a balance signed per the
// normal-balance convention; accounts with no activity in the window are
// omitted. Works on OPEN and CLOSED periods alike.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, fiscalPeriodID string) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, fiscalPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", fiscalPeriodID, err)
	}

	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, tenantID, period.StartDate, period.EndDate)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()), slog.String("period_id", fiscalPeriodID))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	report := &domain.TrialBalanceReport{
		PeriodID:    period.PeriodID,
		StartDate:   period.StartDate,
		EndDate:     period.EndDate,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for i := range report.Rows {
		row := &report.Rows[i]
		row.Debit = accounting.Round(row.Debit)
		row.Credit = accounting.Round(row.Credit)

		net := row.Debit.Sub(row.Credit)
		if row.AccountType.IsDebitNormal() {
			row.Balance = net
		} else {
			row.Balance = net.Neg()
		}

		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}

	return report, nil
}

// GeneralLedger builds the chronological detail of one account over a date
// range. The running balance starts at zero at the range start; each POSTED
// line adds its signed amount per the account's normal-balance convention.
func (s *reportingService) GeneralLedger(ctx context.Context, tenantID string, params dto.GeneralLedgerParams) (*domain.GeneralLedgerReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", params.AccountID, err)
	}

	rows, err := s.reportingRepo.GetGeneralLedgerRows(ctx, tenantID, account.AccountID, params.StartDate, params.EndDate)
	if err != nil {
		logger.Error("Failed to compute general ledger", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to compute general ledger: %w", err)
	}

	running := decimal.Zero
	for i := range rows {
		row := &rows[i]
		row.Debit = accounting.Round(row.Debit)
		row.Credit = accounting.Round(row.Credit)

		net := row.Debit.Sub(row.Credit)
		if !account.AccountType.IsDebitNormal() {
			net = net.Neg()
		}
		running = running.Add(net)
		row.RunningBalance = running
	}

	return &domain.GeneralLedgerReport{
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		AccountName: account.Name,
		AccountType: account.AccountType,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Rows:        rows,
	}, nil
}
