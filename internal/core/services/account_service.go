package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
)

var (
	ErrDuplicateAccountCode = errors.New("account code already exists in this tenant")
	ErrInvalidParentAccount = errors.New("parent account does not resolve within this tenant")
	ErrAccountInUse         = errors.New("account is referenced by journal lines and cannot be deleted")
	ErrChartNotEmpty        = errors.New("tenant already has a chart of accounts")
)

// defaultChartEntry describes one row of the seeded chart-of-accounts template.
type defaultChartEntry struct {
	code       string
	name       string
	accType    domain.AccountType
	parentCode string
}

// defaultChart is the template installed by SeedDefaultChart. Codes follow
// the dotted hierarchical convention; parents precede children.
var defaultChart = []defaultChartEntry{
	{"1", "Activos", domain.Asset, ""},
	{"1.1", "Activo Circulante", domain.Asset, "1"},
	{"1.1.01", "Caja", domain.Asset, "1.1"},
	{"1.1.02", "Banco", domain.Asset, "1.1"},
	{"1.1.03", "Clientes", domain.Asset, "1.1"},
	{"2", "Pasivos", domain.Liability, ""},
	{"2.1", "Proveedores", domain.Liability, "2"},
	{"2.2", "Impuestos por Pagar", domain.Liability, "2"},
	{"3", "Patrimonio", domain.Equity, ""},
	{"3.1", "Capital", domain.Equity, "3"},
	{"4", "Ingresos", domain.Revenue, ""},
	{"4.1", "Ventas", domain.Revenue, "4"},
	{"5", "Gastos", domain.Expense, ""},
	{"5.1", "Gastos Generales", domain.Expense, "5"},
	{"5.2", "Remuneraciones", domain.Expense, "5"},
}

// accountService provides the account registry operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a chart-of-accounts node after validating code
// uniqueness and the parent reference.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	// Code uniqueness is scoped to (tenant, code). The unique constraint is
	// the authority; this pre-check just produces a friendlier error for
	// the common case.
	if existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: code %s", ErrDuplicateAccountCode, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent %s", ErrInvalidParentAccount, req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to resolve parent account: %w", err)
		}
		if parent.TenantID != tenantID {
			// FindAccountByID is tenant-scoped, but keep the invariant explicit.
			return nil, fmt.Errorf("%w: parent %s", ErrInvalidParentAccount, req.ParentAccountID)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: code %s", ErrDuplicateAccountCode, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves one account within the tenant.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts within the tenant.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// GetTree reconstructs the chart of accounts as a forest sorted by code.
// The hierarchy is stored flat with parent ids; the nested shape only ever
// exists in this read-side view.
func (s *accountService) GetTree(ctx context.Context, tenantID string) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for _, acc := range accounts {
		nodes[acc.AccountID] = &domain.AccountNode{Account: acc}
	}

	var roots []*domain.AccountNode
	for _, acc := range accounts {
		node := nodes[acc.AccountID]
		if acc.ParentAccountID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[acc.ParentAccountID]
		if !ok {
			// Orphaned parent reference; surface the node at the root
			// rather than dropping it from the view.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodesByCode(roots)
	for _, node := range nodes {
		sortNodesByCode(node.Children)
	}

	return roots, nil
}

func sortNodesByCode(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Account.Code < nodes[j].Account.Code
	})
}

// SetAccountActive flips the reversible soft-deactivation flag.
func (s *accountService) SetAccountActive(ctx context.Context, tenantID string, accountID string, active bool, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if account.IsActive == active {
		return account, nil
	}

	now := time.Now().UTC()
	if err := s.accountRepo.SetAccountActive(ctx, tenantID, accountID, active, userID, now); err != nil {
		logger.Error("Failed to update account active flag", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	account.IsActive = active
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	logger.Info("Account active flag updated", slog.String("account_id", accountID), slog.Bool("active", active))
	return account, nil
}

// DeleteAccount removes an account with no journal line references.
// Accounts that have ever been posted to are deactivated, never deleted.
func (s *accountService) DeleteAccount(ctx context.Context, tenantID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	inUse, err := s.accountRepo.HasJournalLines(ctx, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account references: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: account %s", ErrAccountInUse, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A line was inserted between the check and the delete; the FK
			// restriction is the authority.
			return fmt.Errorf("%w: account %s", ErrAccountInUse, accountID)
		}
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// SeedDefaultChart installs the default chart-of-accounts template for a
// fresh tenant.
func (s *accountService) SeedDefaultChart(ctx context.Context, tenantID string, userID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrChartNotEmpty
	}

	now := time.Now().UTC()
	created := make([]domain.Account, 0, len(defaultChart))
	idByCode := make(map[string]string, len(defaultChart))

	for _, tpl := range defaultChart {
		parentID := ""
		if tpl.parentCode != "" {
			parentID = idByCode[tpl.parentCode]
		}
		account := domain.Account{
			AccountID:       uuid.NewString(),
			TenantID:        tenantID,
			Code:            tpl.code,
			Name:            tpl.name,
			AccountType:     tpl.accType,
			ParentAccountID: parentID,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			logger.Error("Failed to seed account", slog.String("error", err.Error()), slog.String("code", tpl.code))
			return nil, fmt.Errorf("failed to seed chart of accounts at code %s: %w", tpl.code, err)
		}
		idByCode[tpl.code] = account.AccountID
		created = append(created, account)
	}

	logger.Info("Default chart of accounts seeded", slog.String("tenant_id", tenantID), slog.Int("accounts", len(created)))
	return created, nil
}
