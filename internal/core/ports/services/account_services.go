package services

import (
	"context"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/contabix/contabix_backend/internal/dto"
)

// AccountSvcFacade is the account registry: the hierarchical chart of
// accounts of one tenant.
type AccountSvcFacade interface {
	// CreateAccount creates a chart-of-accounts node. Fails with
	// ErrDuplicateAccountCode when (tenant, code) exists and with
	// ErrInvalidParentAccount when the parent does not resolve within the
	// tenant.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves one account within the tenant.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts within the tenant.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// GetTree reconstructs the chart of accounts as a forest sorted by code.
	GetTree(ctx context.Context, tenantID string) ([]*domain.AccountNode, error)

	// SetAccountActive flips the reversible soft-deactivation flag.
	SetAccountActive(ctx context.Context, tenantID string, accountID string, active bool, userID string) (*domain.Account, error)

	// DeleteAccount removes an account with no journal line references;
	// fails with ErrAccountInUse otherwise.
	DeleteAccount(ctx context.Context, tenantID string, accountID string) error

	// SeedDefaultChart installs the default chart-of-accounts template for
	// a fresh tenant. Fails when the tenant already has accounts.
	SeedDefaultChart(ctx context.Context, tenantID string, userID string) ([]domain.Account, error)
}
