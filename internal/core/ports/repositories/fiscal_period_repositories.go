package repositories

import (
	"context"
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal period data.
type FiscalPeriodReader interface {
	// FindPeriodByID retrieves a specific period within the tenant.
	FindPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period covering the given date, or
	// ErrNotFound when no period covers it.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves every period of the tenant ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal period data.
type FiscalPeriodWriter interface {
	// SavePeriod persists a new period. Returns ErrConflict when the window
	// overlaps an existing period of the same tenant.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// ClosePeriod transitions the period to CLOSED. Closing an already
	// CLOSED period is a no-op; the stored row is returned either way.
	ClosePeriod(ctx context.Context, tenantID string, periodID string, userID string, now time.Time) (*domain.FiscalPeriod, error)
}

// FiscalPeriodRepositoryFacade combines all period repository interfaces.
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
