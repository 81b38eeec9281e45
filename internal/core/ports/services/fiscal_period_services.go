package services

import (
	"context"
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/contabix/contabix_backend/internal/dto"
)

// FiscalPeriodSvcFacade is the fiscal period manager: the gate deciding
// which entry dates may be posted.
type FiscalPeriodSvcFacade interface {
	// CreatePeriod creates a non-overlapping posting window for the tenant.
	CreatePeriod(ctx context.Context, tenantID string, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)

	// GetPeriodByID retrieves one period within the tenant.
	GetPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period covering the date, or
	// ErrNotFound when none does.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods of the tenant ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error)

	// ClosePeriod transitions OPEN to CLOSED. Closing an already CLOSED
	// period is an idempotent no-op. There is no reopen.
	ClosePeriod(ctx context.Context, tenantID string, periodID string, userID string) (*domain.FiscalPeriod, error)
}
