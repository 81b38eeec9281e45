package services

import (
	"context"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/contabix/contabix_backend/internal/dto"
)

// ReportingSvcFacade is the ledger query engine: read-only reports derived
// by replaying POSTED lines. It never writes.
type ReportingSvcFacade interface {
	// TrialBalance builds the per-account activity summary for one fiscal
	// period, signed per the normal-balance convention.
	TrialBalance(ctx context.Context, tenantID string, fiscalPeriodID string) (*domain.TrialBalanceReport, error)

	// GeneralLedger builds the chronological running-balance detail of one
	// account over a date range, zero-seeded at the range start.
	GeneralLedger(ctx context.Context, tenantID string, params dto.GeneralLedgerParams) (*domain.GeneralLedgerReport, error)
}
