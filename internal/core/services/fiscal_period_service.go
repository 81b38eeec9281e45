package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
)

var (
	ErrPeriodOverlap    = errors.New("fiscal period overlaps an existing period")
	ErrInvalidDateRange = errors.New("period end date precedes start date")

	// Shared with the storage layer, which re-checks the gate at post time.
	ErrNoPeriodForDate = domain.ErrNoOpenPeriod
	ErrPeriodClosed    = domain.ErrPeriodClosed
)

// fiscalPeriodService provides operations on posting windows.
type fiscalPeriodService struct {
	periodRepo portsrepo.FiscalPeriodRepositoryFacade
}

// NewFiscalPeriodService creates a new FiscalPeriodService.
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepositoryFacade) portssvc.FiscalPeriodSvcFacade {
	return &fiscalPeriodService{periodRepo: periodRepo}
}

var _ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)

// CreatePeriod creates a non-overlapping posting window for the tenant.
func (s *fiscalPeriodService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidDateRange,
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  tenantID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Pre-check overlap for a precise error message; the exclusion
	// constraint remains the authority under concurrency.
	existing, err := s.periodRepo.ListPeriods(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	for _, other := range existing {
		if period.Overlaps(other) {
			return nil, fmt.Errorf("%w: %s", ErrPeriodOverlap, other.Name)
		}
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s to %s", ErrPeriodOverlap,
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
		}
		logger.Error("Failed to save fiscal period", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save fiscal period: %w", err)
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// GetPeriodByID retrieves one period within the tenant.
func (s *fiscalPeriodService) GetPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", periodID, err)
	}
	return period, nil
}

// FindPeriodForDate retrieves the period covering the date.
func (s *fiscalPeriodService) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, tenantID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoPeriodForDate, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find period for date: %w", err)
	}
	return period, nil
}

// ListPeriods retrieves all periods of the tenant ordered by start date.
func (s *fiscalPeriodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	return periods, nil
}

// ClosePeriod transitions OPEN to CLOSED. Closing an already CLOSED period
// returns the stored period unchanged. Entries already POSTED inside the
// window are untouched; the close only blocks future posting.
func (s *fiscalPeriodService) ClosePeriod(ctx context.Context, tenantID string, periodID string, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	period, err := s.periodRepo.ClosePeriod(ctx, tenantID, periodID, userID, now)
	if err != nil {
		logger.Error("Failed to close fiscal period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close fiscal period %s: %w", periodID, err)
	}

	logger.Info("Fiscal period closed", slog.String("period_id", periodID))
	return period, nil
}
