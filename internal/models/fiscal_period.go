package models

import "time"

// FiscalPeriodStatus mirrors domain.FiscalPeriodStatus at the storage layer.
type FiscalPeriodStatus string

const (
	PeriodOpen   FiscalPeriodStatus = "OPEN"
	PeriodClosed FiscalPeriodStatus = "CLOSED"
)

// FiscalPeriod is the database representation of a posting window.
type FiscalPeriod struct {
	PeriodID  string             `json:"periodID"`
	TenantID  string             `json:"tenantID"`
	Name      string             `json:"name"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
	Status    FiscalPeriodStatus `json:"status"`
	AuditFields
}
