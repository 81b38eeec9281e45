package dto

import (
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
)

// CreateFiscalPeriodRequest is the payload for creating a posting window.
type CreateFiscalPeriodRequest struct {
	Name      string    `json:"name" binding:"required,max=100"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// FiscalPeriodResponse is the API representation of a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID  string                    `json:"periodID"`
	TenantID  string                    `json:"tenantID"`
	Name      string                    `json:"name"`
	StartDate time.Time                 `json:"startDate"`
	EndDate   time.Time                 `json:"endDate"`
	Status    domain.FiscalPeriodStatus `json:"status"`
}

// ToFiscalPeriodResponse converts a domain period to its API representation.
func ToFiscalPeriodResponse(p domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:  p.PeriodID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
	}
}

// ToFiscalPeriodResponses converts a slice of domain periods to API shapes.
func ToFiscalPeriodResponses(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	out := make([]FiscalPeriodResponse, len(periods))
	for i, p := range periods {
		out[i] = ToFiscalPeriodResponse(p)
	}
	return out
}
