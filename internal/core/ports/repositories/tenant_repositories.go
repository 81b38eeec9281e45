package repositories

import (
	"context"
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
)

// TenantRepositoryFacade defines operations on the tenant record itself.
// The per-tenant entry number counter lives on this row and is only ever
// advanced inside the journal repository's create transaction.
type TenantRepositoryFacade interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// FindTenantByID retrieves a tenant by id.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// APIKeyRepositoryFacade defines operations on tenant API credentials.
type APIKeyRepositoryFacade interface {
	// SaveAPIKey persists a newly issued key (hash only).
	SaveAPIKey(ctx context.Context, key domain.APIKey) error

	// FindAPIKeyByID retrieves a key by its id, revoked or not.
	FindAPIKeyByID(ctx context.Context, keyID string) (*domain.APIKey, error)

	// ListAPIKeysByTenant retrieves every key issued to the tenant.
	ListAPIKeysByTenant(ctx context.Context, tenantID string) ([]domain.APIKey, error)

	// RevokeAPIKey marks the key revoked. Idempotent.
	RevokeAPIKey(ctx context.Context, tenantID string, keyID string, now time.Time) error

	// TouchAPIKey records the key's last successful use.
	TouchAPIKey(ctx context.Context, keyID string, now time.Time) error
}
