package services

import (
	"context"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/contabix/contabix_backend/internal/dto"
)

// TenantSvcFacade manages tenant records. Identity and membership live
// outside this service; the tenant row exists mainly to anchor the entry
// number sequence and the isolation boundary.
type TenantSvcFacade interface {
	// CreateTenant provisions a new tenant.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)

	// GetTenantByID retrieves a tenant by id.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// APIKeySvcFacade manages tenant-scoped machine credentials.
type APIKeySvcFacade interface {
	// IssueKey creates a key and returns its plaintext exactly once.
	IssueKey(ctx context.Context, tenantID string, req dto.CreateAPIKeyRequest, creatorUserID string) (*dto.CreateAPIKeyResponse, error)

	// ListKeys retrieves the tenant's keys without secrets.
	ListKeys(ctx context.Context, tenantID string) ([]domain.APIKey, error)

	// RevokeKey revokes a key. Idempotent.
	RevokeKey(ctx context.Context, tenantID string, keyID string) error

	// ValidateKey checks a presented token and returns the owning tenant id.
	ValidateKey(ctx context.Context, presented string) (string, error)
}
