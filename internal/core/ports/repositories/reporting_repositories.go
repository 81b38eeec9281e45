package repositories

import (
	"context"
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
)

// ReportingRepository defines the read-only queries behind the derived
// reports. Both queries see only POSTED entries; DRAFT is never visible and
// VOIDED is never counted.
type ReportingRepository interface {
	// GetTrialBalanceRows aggregates debit/credit sums per account for
	// POSTED lines whose entry date falls within [startDate, endDate].
	// Accounts with no activity in the range are not returned. The signed
	// Balance column is left for the service to compute.
	GetTrialBalanceRows(ctx context.Context, tenantID string, startDate, endDate time.Time) ([]domain.TrialBalanceRow, error)

	// GetGeneralLedgerRows retrieves POSTED lines for one account within
	// [startDate, endDate], ordered by (entry_date, entry_number,
	// line_number) ascending. RunningBalance is left for the service.
	GetGeneralLedgerRows(ctx context.Context, tenantID string, accountID string, startDate, endDate time.Time) ([]domain.GeneralLedgerRow, error)
}
