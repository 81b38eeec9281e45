package repositories

import (
	"context"
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
)

// AccountReader defines read operations for account data. Every operation is
// scoped to one tenant; ids from other tenants resolve to ErrNotFound.
type AccountReader interface {
	// FindAccountByID retrieves a specific account within the tenant.
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its hierarchical code.
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts of the tenant by id.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account of the tenant sorted by code.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, tenantID string, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns ErrDuplicate when the
	// (tenant, code) pair already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the soft-deactivation flag.
	SetAccountActive(ctx context.Context, tenantID string, accountID string, active bool, userID string, now time.Time) error

	// DeleteAccount removes an account that has no journal line references.
	// Returns ErrConflict when postings exist.
	DeleteAccount(ctx context.Context, tenantID string, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
