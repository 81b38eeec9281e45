package dto

import "github.com/contabix/contabix_backend/internal/core/domain"

// CreateTenantRequest is the payload for provisioning a new tenant.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// TenantResponse is the API representation of a tenant.
type TenantResponse struct {
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// ToTenantResponse converts a domain Tenant to its API representation.
func ToTenantResponse(t domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID: t.TenantID,
		Name:     t.Name,
		IsActive: t.IsActive,
	}
}
