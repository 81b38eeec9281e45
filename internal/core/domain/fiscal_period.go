package domain

import (
	"errors"
	"time"
)

// FiscalPeriodStatus indicates whether a period still accepts postings.
type FiscalPeriodStatus string

const (
	PeriodOpen   FiscalPeriodStatus = "OPEN"
	PeriodClosed FiscalPeriodStatus = "CLOSED"
)

var (
	// ErrPeriodAlreadyClosed is returned by Close when the period is already
	// CLOSED. Callers treating close as idempotent may ignore it.
	ErrPeriodAlreadyClosed = errors.New("fiscal period is already closed")

	// ErrPeriodClosed rejects posting into a CLOSED period.
	ErrPeriodClosed = errors.New("fiscal period is closed")

	// ErrNoOpenPeriod rejects an entry date no period covers.
	ErrNoOpenPeriod = errors.New("no fiscal period covers the entry date")
)

// FiscalPeriod is a bounded, non-overlapping time window that gates which
// entry dates may be posted. Closing is one-way; there is no reopen.
type FiscalPeriod struct {
	PeriodID  string             `json:"periodID"` // Primary Key (UUID)
	TenantID  string             `json:"tenantID"` // FK -> tenants.tenant_id (Not Null)
	Name      string             `json:"name"`
	StartDate time.Time          `json:"startDate"` // Inclusive
	EndDate   time.Time          `json:"endDate"`   // Inclusive
	Status    FiscalPeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether the given date falls inside [StartDate, EndDate].
// Dates are compared at day granularity.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
}

// IsOpen reports whether the period still accepts postings.
func (p FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}

// Close transitions the period to CLOSED. Returns ErrPeriodAlreadyClosed if
// it has been closed before.
func (p *FiscalPeriod) Close(now time.Time, userID string) error {
	if p.Status == PeriodClosed {
		return ErrPeriodAlreadyClosed
	}
	p.Status = PeriodClosed
	p.LastUpdatedAt = now
	p.LastUpdatedBy = userID
	return nil
}

// Overlaps reports whether two periods share at least one day.
func (p FiscalPeriod) Overlaps(other FiscalPeriod) bool {
	return !p.StartDate.After(other.EndDate) && !other.StartDate.After(p.EndDate)
}
