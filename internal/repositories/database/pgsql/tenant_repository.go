package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	"github.com/contabix/contabix_backend/internal/models"
	"github.com/contabix/contabix_backend/internal/utils/mapping"
)

type PgxTenantRepository struct {
	pool *pgxpool.Pool
}

func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{pool: pool}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// SaveTenant persists a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	modelTenant := mapping.ToModelTenant(tenant)

	query := `
		INSERT INTO tenants (tenant_id, name, next_entry_number, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		modelTenant.TenantID,
		modelTenant.Name,
		modelTenant.NextEntryNumber,
		modelTenant.IsActive,
		modelTenant.CreatedAt,
		modelTenant.CreatedBy,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tenant %s already exists", apperrors.ErrDuplicate, modelTenant.TenantID)
		}
		return fmt.Errorf("failed to save tenant %s: %w", modelTenant.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by id.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, next_entry_number, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var modelTenant models.Tenant
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&modelTenant.TenantID,
		&modelTenant.Name,
		&modelTenant.NextEntryNumber,
		&modelTenant.IsActive,
		&modelTenant.CreatedAt,
		&modelTenant.CreatedBy,
		&modelTenant.LastUpdatedAt,
		&modelTenant.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by ID %s: %w", tenantID, err)
	}

	domainTenant := mapping.ToDomainTenant(modelTenant)
	return &domainTenant, nil
}
