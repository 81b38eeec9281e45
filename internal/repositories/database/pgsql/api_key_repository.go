package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	"github.com/contabix/contabix_backend/internal/models"
)

type PgxAPIKeyRepository struct {
	pool *pgxpool.Pool
}

func newPgxAPIKeyRepository(pool *pgxpool.Pool) portsrepo.APIKeyRepositoryFacade {
	return &PgxAPIKeyRepository{pool: pool}
}

var _ portsrepo.APIKeyRepositoryFacade = (*PgxAPIKeyRepository)(nil)

func toDomainAPIKey(m models.APIKey) domain.APIKey {
	return domain.APIKey{
		KeyID:      m.KeyID,
		TenantID:   m.TenantID,
		Name:       m.Name,
		SecretHash: m.SecretHash,
		LastUsedAt: m.LastUsedAt,
		RevokedAt:  m.RevokedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveAPIKey persists a newly issued key.
func (r *PgxAPIKeyRepository) SaveAPIKey(ctx context.Context, key domain.APIKey) error {
	query := `
		INSERT INTO api_keys (key_id, tenant_id, name, secret_hash, last_used_at, revoked_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		key.KeyID,
		key.TenantID,
		key.Name,
		key.SecretHash,
		key.LastUsedAt,
		key.RevokedAt,
		key.CreatedAt,
		key.CreatedBy,
		key.LastUpdatedAt,
		key.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save api key %s: %w", key.KeyID, err)
	}
	return nil
}

const apiKeyColumns = `key_id, tenant_id, name, secret_hash, last_used_at, revoked_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAPIKey(row pgx.Row) (*models.APIKey, error) {
	var m models.APIKey
	err := row.Scan(
		&m.KeyID,
		&m.TenantID,
		&m.Name,
		&m.SecretHash,
		&m.LastUsedAt,
		&m.RevokedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAPIKeyByID retrieves a key by its id, revoked or not.
func (r *PgxAPIKeyRepository) FindAPIKeyByID(ctx context.Context, keyID string) (*domain.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key_id = $1;`

	m, err := scanAPIKey(r.pool.QueryRow(ctx, query, keyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api key by ID %s: %w", keyID, err)
	}

	key := toDomainAPIKey(*m)
	return &key, nil
}

// ListAPIKeysByTenant retrieves every key issued to the tenant.
func (r *PgxAPIKeyRepository) ListAPIKeysByTenant(ctx context.Context, tenantID string) ([]domain.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE tenant_id = $1 ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api keys: %w", err)
	}
	defer rows.Close()

	var keys []domain.APIKey
	for rows.Next() {
		m, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api key row: %w", err)
		}
		keys = append(keys, toDomainAPIKey(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating api key rows: %w", err)
	}
	return keys, nil
}

// RevokeAPIKey marks the key revoked. Already revoked keys are untouched so
// the original revocation time survives.
func (r *PgxAPIKeyRepository) RevokeAPIKey(ctx context.Context, tenantID string, keyID string, now time.Time) error {
	query := `
		UPDATE api_keys
		SET revoked_at = $3, last_updated_at = $3
		WHERE tenant_id = $1 AND key_id = $2 AND revoked_at IS NULL;
	`
	_, err := r.pool.Exec(ctx, query, tenantID, keyID, now)
	if err != nil {
		return fmt.Errorf("failed to revoke api key %s: %w", keyID, err)
	}
	return nil
}

// TouchAPIKey records the key's last successful use.
func (r *PgxAPIKeyRepository) TouchAPIKey(ctx context.Context, keyID string, now time.Time) error {
	query := `UPDATE api_keys SET last_used_at = $2 WHERE key_id = $1;`
	if _, err := r.pool.Exec(ctx, query, keyID, now); err != nil {
		return fmt.Errorf("failed to touch api key %s: %w", keyID, err)
	}
	return nil
}
