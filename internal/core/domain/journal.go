package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryDraft  EntryStatus = "DRAFT"
	EntryPosted EntryStatus = "POSTED"
	EntryVoided EntryStatus = "VOIDED"
)

// Lifecycle transition errors. These are returned by the transition methods
// below and by repositories when a status-guarded update loses a race.
var (
	ErrEntryNotDraft = errors.New("journal entry is not in draft status")
	ErrAlreadyPosted = errors.New("journal entry is already posted")
	ErrAlreadyVoided = errors.New("journal entry is already voided")
	ErrNotPosted     = errors.New("journal entry is not posted")
	ErrUnbalanced    = errors.New("journal entry debits and credits do not balance")
)

// JournalEntry represents a single financial event composed of multiple
// debit/credit lines. Entries are created as DRAFT, become immutable when
// POSTED and may only leave POSTED via VOIDED, which excludes the lines from
// balances but keeps them stored for audit.
type JournalEntry struct {
	EntryID     string             `json:"entryID"`     // Primary Key (UUID)
	TenantID    string             `json:"tenantID"`    // FK -> tenants.tenant_id (Not Null)
	EntryNumber int64              `json:"entryNumber"` // Sequential per tenant, assigned at creation, never reused
	EntryDate   time.Time          `json:"entryDate"`
	Description string             `json:"description"`
	Status      EntryStatus        `json:"status"`
	Lines       []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// JournalEntryLine is one side of a double entry. Exactly one of Debit or
// Credit is positive; the other is zero.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`     // Primary Key (UUID)
	EntryID     string          `json:"entryID"`    // FK -> journal_entries.entry_id (Not Null)
	AccountID   string          `json:"accountID"`  // FK -> accounts.account_id, same tenant
	LineNumber  int             `json:"lineNumber"` // Position within the entry, starting at 1
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}

// IsSingleSided reports whether the line satisfies the debit-xor-credit rule:
// exactly one of the two amounts is strictly positive and neither is negative.
func (l JournalEntryLine) IsSingleSided() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return l.Debit.IsPositive() != l.Credit.IsPositive()
}

// IsEditable reports whether the entry may still be mutated or deleted.
// Only DRAFT entries are editable; POSTED and VOIDED are append-only history.
func (e JournalEntry) IsEditable() bool {
	return e.Status == EntryDraft
}

// Post transitions the entry from DRAFT to POSTED. The caller is responsible
// for validating balance and period state before invoking this; Post only
// guards the state machine.
func (e *JournalEntry) Post(now time.Time, userID string) error {
	switch e.Status {
	case EntryDraft:
		e.Status = EntryPosted
		e.LastUpdatedAt = now
		e.LastUpdatedBy = userID
		return nil
	case EntryPosted:
		return ErrAlreadyPosted
	case EntryVoided:
		return ErrAlreadyVoided
	default:
		return ErrEntryNotDraft
	}
}

// Void transitions the entry from POSTED to VOIDED. Voiding is irreversible;
// the entry and its lines remain stored but stop contributing to balances.
func (e *JournalEntry) Void(now time.Time, userID string) error {
	switch e.Status {
	case EntryPosted:
		e.Status = EntryVoided
		e.LastUpdatedAt = now
		e.LastUpdatedBy = userID
		return nil
	case EntryVoided:
		return ErrAlreadyVoided
	default:
		return ErrNotPosted
	}
}

// TotalDebits sums the debit side of all lines.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of all lines.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
