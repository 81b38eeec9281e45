package services

import (
	"context"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/contabix/contabix_backend/internal/dto"
)

// JournalSvcFacade is the journal entry store: the DRAFT/POSTED/VOIDED
// lifecycle of double-entry journal entries.
type JournalSvcFacade interface {
	// CreateEntry validates the draft (lines, accounts, open period) and
	// persists it with the tenant's next sequential number. Balance is not
	// required at creation.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a token-paginated page of entries.
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// UpdateEntry mutates a DRAFT entry; fails with domain.ErrEntryNotDraft
	// on POSTED/VOIDED entries.
	UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a DRAFT entry; fails with domain.ErrEntryNotDraft
	// on POSTED/VOIDED entries.
	DeleteEntry(ctx context.Context, tenantID string, entryID string, userID string) error

	// PostEntry transitions DRAFT to POSTED after re-validating balance and
	// period state atomically. Exactly one of two concurrent posts succeeds.
	PostEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error)

	// VoidEntry transitions POSTED to VOIDED. Irreversible; the entry stays
	// retrievable for audit but stops contributing to balances.
	VoidEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error)
}
