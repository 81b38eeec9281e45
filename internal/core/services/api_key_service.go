package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
)

// ErrInvalidAPIKey is returned for any presented key that does not resolve
// to a live credential. The cause (unknown, revoked, bad secret) is not
// distinguished to the caller.
var ErrInvalidAPIKey = errors.New("invalid api key")

const apiKeyPrefix = "cbx"

// apiKeyService manages tenant-scoped machine credentials. Only the bcrypt
// hash of the secret is stored; the plaintext is shown once at issuance.
type apiKeyService struct {
	apiKeyRepo portsrepo.APIKeyRepositoryFacade
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(apiKeyRepo portsrepo.APIKeyRepositoryFacade) portssvc.APIKeySvcFacade {
	return &apiKeyService{apiKeyRepo: apiKeyRepo}
}

var _ portssvc.APIKeySvcFacade = (*apiKeyService)(nil)

// IssueKey creates a key and returns its plaintext exactly once. The token
// format is "cbx_<keyID>_<secret>" so validation can look the hash up by id
// instead of scanning.
func (s *apiKeyService) IssueKey(ctx context.Context, tenantID string, req dto.CreateAPIKeyRequest, creatorUserID string) (*dto.CreateAPIKeyResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	secretBytes := make([]byte, 24)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key secret: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash key secret: %w", err)
	}

	now := time.Now().UTC()
	key := domain.APIKey{
		KeyID:      uuid.NewString(),
		TenantID:   tenantID,
		Name:       req.Name,
		SecretHash: string(hash),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.apiKeyRepo.SaveAPIKey(ctx, key); err != nil {
		logger.Error("Failed to save api key", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save api key: %w", err)
	}

	logger.Info("API key issued", slog.String("key_id", key.KeyID), slog.String("tenant_id", tenantID))
	return &dto.CreateAPIKeyResponse{
		KeyID: key.KeyID,
		Name:  key.Name,
		Key:   fmt.Sprintf("%s_%s_%s", apiKeyPrefix, key.KeyID, secret),
	}, nil
}

// ListKeys retrieves the tenant's keys without secrets.
func (s *apiKeyService) ListKeys(ctx context.Context, tenantID string) ([]domain.APIKey, error) {
	keys, err := s.apiKeyRepo.ListAPIKeysByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	return keys, nil
}

// RevokeKey revokes a key. Revoking an already revoked key is a no-op.
func (s *apiKeyService) RevokeKey(ctx context.Context, tenantID string, keyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	key, err := s.apiKeyRepo.FindAPIKeyByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to find api key %s: %w", keyID, err)
	}
	if key.TenantID != tenantID {
		return fmt.Errorf("%w: api key %s", apperrors.ErrNotFound, keyID)
	}
	if key.IsRevoked() {
		return nil
	}

	if err := s.apiKeyRepo.RevokeAPIKey(ctx, tenantID, keyID, time.Now().UTC()); err != nil {
		logger.Error("Failed to revoke api key", slog.String("error", err.Error()), slog.String("key_id", keyID))
		return fmt.Errorf("failed to revoke api key %s: %w", keyID, err)
	}

	logger.Info("API key revoked", slog.String("key_id", keyID))
	return nil
}

// ValidateKey checks a presented token and returns the owning tenant id.
func (s *apiKeyService) ValidateKey(ctx context.Context, presented string) (string, error) {
	parts := strings.SplitN(presented, "_", 3)
	if len(parts) != 3 || parts[0] != apiKeyPrefix {
		return "", ErrInvalidAPIKey
	}
	keyID, secret := parts[1], parts[2]

	key, err := s.apiKeyRepo.FindAPIKeyByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", ErrInvalidAPIKey
		}
		return "", fmt.Errorf("failed to look up api key: %w", err)
	}
	if key.IsRevoked() {
		return "", ErrInvalidAPIKey
	}

	if err := bcrypt.CompareHashAndPassword([]byte(key.SecretHash), []byte(secret)); err != nil {
		return "", ErrInvalidAPIKey
	}

	// Last-use tracking is best effort; a failure never blocks the request.
	_ = s.apiKeyRepo.TouchAPIKey(ctx, key.KeyID, time.Now().UTC())

	return key.TenantID, nil
}
