package repositories

import (
	"context"
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
)

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves an entry header within the tenant.
	FindEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a token-paginated page of entries ordered by
	// (entry_date, entry_number) descending, optionally filtered by status.
	ListEntries(ctx context.Context, tenantID string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines the lifecycle mutations of journal entries. Each
// method runs inside a single storage transaction; there is never partial
// visibility of an entry's lines.
type JournalWriter interface {
	// CreateEntry allocates the tenant's next entry number and persists the
	// draft header plus lines atomically. The stored entry is returned with
	// its assigned number.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error)

	// UpdateDraftEntry replaces a DRAFT entry's header fields and lines.
	// Returns domain.ErrEntryNotDraft when the stored status is not DRAFT.
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// DeleteDraftEntry removes a DRAFT entry and its lines. Returns
	// domain.ErrEntryNotDraft when the stored status is not DRAFT.
	DeleteDraftEntry(ctx context.Context, tenantID string, entryID string) error

	// PostEntry re-validates balance and period openness inside its own
	// transaction and flips DRAFT to POSTED with a status-guarded update.
	// A losing concurrent writer receives domain.ErrAlreadyPosted or
	// domain.ErrAlreadyVoided; posting into a closed or missing period
	// fails and leaves the entry DRAFT.
	PostEntry(ctx context.Context, tenantID string, entryID string, userID string, now time.Time) (*domain.JournalEntry, error)

	// VoidEntry flips POSTED to VOIDED with a status-guarded update. Only
	// legal from POSTED; the entry and lines remain stored for audit.
	VoidEntry(ctx context.Context, tenantID string, entryID string, userID string, now time.Time) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
