package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
	"github.com/contabix/contabix_backend/internal/utils/accounting"
)

var (
	// Shared with the storage layer, which re-sums the lines inside the
	// posting transaction.
	ErrUnbalanced = domain.ErrUnbalanced

	ErrUnknownAccount  = errors.New("journal line references an account outside this tenant")
	ErrInactiveAccount = errors.New("journal line references a deactivated account")

	defaultListLimit = 50
	maxListLimit     = 200
)

// journalService orchestrates the DRAFT/POSTED/VOIDED lifecycle of journal
// entries.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.FiscalPeriodRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodRepositoryFacade,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines to domain lines, assigning line numbers
// in request order.
func buildLines(entryID string, reqLines []dto.CreateEntryLineRequest, userID string, now time.Time) []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(reqLines))
	for i, rl := range reqLines {
		lines[i] = domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   rl.AccountID,
			LineNumber:  i + 1,
			Debit:       accounting.Round(rl.Debit),
			Credit:      accounting.Round(rl.Credit),
			Description: rl.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// validateAccounts checks every referenced account resolves within the
// tenant and is active.
func (s *journalService) validateAccounts(ctx context.Context, tenantID string, lines []domain.JournalEntryLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve line accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s", ErrInactiveAccount, id)
		}
	}
	return nil
}

// validateEntryDate checks the entry date falls inside an OPEN period.
func (s *journalService) validateEntryDate(ctx context.Context, tenantID string, date time.Time) error {
	period, err := s.periodRepo.FindPeriodForDate(ctx, tenantID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNoPeriodForDate, date.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to find period for entry date: %w", err)
	}
	if !period.IsOpen() {
		return fmt.Errorf("%w: %s", ErrPeriodClosed, period.Name)
	}
	return nil
}

// CreateEntry validates a draft and persists it with the tenant's next
// sequential entry number. Drafts need valid shape and an open period but
// not balance; balance is enforced at post time.
func (s *journalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines, creatorUserID, now)

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := s.validateAccounts(ctx, tenantID, lines); err != nil {
		return nil, err
	}
	if err := s.validateEntryDate(ctx, tenantID, req.Date); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    tenantID,
		EntryDate:   req.Date,
		Description: req.Description,
		Status:      domain.EntryDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	created, err := s.journalRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to create journal entry", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", created.EntryID),
		slog.Int64("entry_number", created.EntryNumber))
	return created, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a token-paginated page of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, tenantID, params.Status, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// UpdateEntry mutates a DRAFT entry. When Lines is present the draft's lines
// are replaced wholesale; partial line edits are not supported.
func (s *journalService) UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if !entry.IsEditable() {
		return nil, fmt.Errorf("%w: entry %s is %s", domain.ErrEntryNotDraft, entryID, entry.Status)
	}

	now := time.Now().UTC()
	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	var lines []domain.JournalEntryLine
	if req.Lines != nil {
		lines = buildLines(entry.EntryID, req.Lines, userID, now)
		if err := accounting.ValidateLines(lines); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if err := s.validateAccounts(ctx, tenantID, lines); err != nil {
			return nil, err
		}
	} else {
		lines, err = s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
		if err != nil {
			return nil, fmt.Errorf("failed to find lines for entry %s: %w", entryID, err)
		}
	}

	if req.Date != nil {
		if err := s.validateEntryDate(ctx, tenantID, entry.EntryDate); err != nil {
			return nil, err
		}
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateDraftEntry(ctx, *entry, lines); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry %s: %w", entryID, err)
	}

	entry.Lines = lines
	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry removes a DRAFT entry and its lines. POSTED and VOIDED entries
// are permanent history and cannot be deleted.
func (s *journalService) DeleteEntry(ctx context.Context, tenantID string, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if !entry.IsEditable() {
		return fmt.Errorf("%w: entry %s is %s", domain.ErrEntryNotDraft, entryID, entry.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, tenantID, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// PostEntry transitions DRAFT to POSTED. Balance is checked here first for a
// fast failure; the repository re-validates balance and period openness
// inside its own transaction, so a concurrent close or second post cannot
// slip through. Exactly one of two concurrent posts succeeds.
func (s *journalService) PostEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		switch entry.Status {
		case domain.EntryPosted:
			return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyPosted, entryID)
		case domain.EntryVoided:
			return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyVoided, entryID)
		}
	}

	if err := accounting.ValidateLines(entry.Lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := accounting.ValidateBalance(entry.Lines); err != nil {
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced,
			entry.TotalDebits().String(), entry.TotalCredits().String())
	}

	now := time.Now().UTC()
	posted, err := s.journalRepo.PostEntry(ctx, tenantID, entryID, userID, now)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyPosted) || errors.Is(err, domain.ErrAlreadyVoided) ||
			errors.Is(err, ErrUnbalanced) ||
			errors.Is(err, ErrPeriodClosed) || errors.Is(err, ErrNoPeriodForDate) {
			return nil, err
		}
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	// Re-read the lines: a draft edit may have replaced them between the
	// initial read and the posting transaction.
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lines for entry %s: %w", entryID, err)
	}
	posted.Lines = lines
	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.Int64("entry_number", posted.EntryNumber))
	return posted, nil
}

// VoidEntry transitions POSTED to VOIDED. The entry stays retrievable for
// audit but its lines stop contributing to every balance and report.
func (s *journalService) VoidEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	switch entry.Status {
	case domain.EntryPosted:
		// Proceed; the repository's status guard settles any race.
	case domain.EntryVoided:
		return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyVoided, entryID)
	default:
		return nil, fmt.Errorf("%w: entry %s is %s", domain.ErrNotPosted, entryID, entry.Status)
	}

	now := time.Now().UTC()
	voided, err := s.journalRepo.VoidEntry(ctx, tenantID, entryID, userID, now)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyVoided) || errors.Is(err, domain.ErrNotPosted) {
			return nil, err
		}
		logger.Error("Failed to void journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to void journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lines for entry %s: %w", entryID, err)
	}
	voided.Lines = lines

	logger.Info("Journal entry voided", slog.String("entry_id", entryID))
	return voided, nil
}
