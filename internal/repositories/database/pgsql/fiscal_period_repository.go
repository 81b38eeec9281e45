package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	"github.com/contabix/contabix_backend/internal/models"
	"github.com/contabix/contabix_backend/internal/utils/mapping"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

const fiscalPeriodColumns = `period_id, tenant_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalPeriod(row pgx.Row) (*models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.TenantID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePeriod persists a new period. The exclusion constraint on the tenant's
// date ranges rejects overlapping windows.
func (r *PgxFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (period_id, tenant_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.TenantID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23P01": // Exclusion violation on the daterange
				return fmt.Errorf("%w: period %s overlaps an existing period", apperrors.ErrConflict, m.Name)
			case "23505":
				return fmt.Errorf("%w: period %s already exists", apperrors.ErrDuplicate, m.PeriodID)
			}
		}
		return fmt.Errorf("failed to save fiscal period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period within the tenant.
func (r *PgxFiscalPeriodRepository) FindPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND period_id = $2;`

	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, tenantID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period by ID %s: %w", periodID, err)
	}

	period := mapping.ToDomainFiscalPeriod(*m)
	return &period, nil
}

// FindPeriodForDate retrieves the period covering the given date. Periods
// never overlap, so at most one row matches.
func (r *PgxFiscalPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND $2::date BETWEEN start_date AND end_date;`

	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period for date %s: %w", date.Format("2006-01-02"), err)
	}

	period := mapping.ToDomainFiscalPeriod(*m)
	return &period, nil
}

// ListPeriods retrieves every period of the tenant ordered by start date.
func (r *PgxFiscalPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	for rows.Next() {
		m, err := scanFiscalPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}
	return periods, nil
}

// ClosePeriod transitions the period to CLOSED with a status-guarded update.
// Closing an already CLOSED period affects zero rows and is a no-op; the
// stored row is returned either way so callers see the final state.
func (r *PgxFiscalPeriodRepository) ClosePeriod(ctx context.Context, tenantID string, periodID string, userID string, now time.Time) (*domain.FiscalPeriod, error) {
	query := `
		UPDATE fiscal_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND period_id = $2 AND status = $6;
	`
	_, err := r.Pool.Exec(ctx, query, tenantID, periodID, models.PeriodClosed, now, userID, models.PeriodOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to close fiscal period %s: %w", periodID, err)
	}

	return r.FindPeriodByID(ctx, tenantID, periodID)
}
