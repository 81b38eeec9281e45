package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
)

// reportingRepository runs the aggregate queries behind the derived reports.
// Both queries filter on status = POSTED, so drafts never surface and voided
// entries stop counting the moment the void commits.
type reportingRepository struct {
	pool *pgxpool.Pool
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceRows aggregates debit/credit sums per account for POSTED
// lines within the date range, ordered by account code.
func (r *reportingRepository) GetTrialBalanceRows(ctx context.Context, tenantID string, startDate, endDate time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.tenant_id = $1
		  AND e.status = 'POSTED'
		  AND e.entry_date BETWEEN $2 AND $3
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance rows: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetGeneralLedgerRows retrieves POSTED lines for one account within the
// date range in chronological order. Ties on the same date resolve by entry
// number, then line number, so reruns always produce the same sequence.
func (r *reportingRepository) GetGeneralLedgerRows(ctx context.Context, tenantID string, accountID string, startDate, endDate time.Time) ([]domain.GeneralLedgerRow, error) {
	query := `
		SELECT
			e.entry_id,
			e.entry_number,
			e.entry_date,
			e.description,
			l.debit,
			l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1
		  AND l.account_id = $2
		  AND e.status = 'POSTED'
		  AND e.entry_date BETWEEN $3 AND $4
		ORDER BY e.entry_date, e.entry_number, l.line_number;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, accountID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query general ledger rows: %w", err)
	}
	defer rows.Close()

	var result []domain.GeneralLedgerRow
	for rows.Next() {
		var row domain.GeneralLedgerRow
		err := rows.Scan(
			&row.EntryID,
			&row.EntryNumber,
			&row.EntryDate,
			&row.Description,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan general ledger row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general ledger rows: %w", err)
	}
	return result, nil
}
