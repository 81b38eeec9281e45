package dto

import (
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one debit/credit line of an entry. Amounts cross
// the boundary as decimals (string-encoded in JSON), never binary floats.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty" binding:"max=255"`
}

// CreateJournalEntryRequest is the payload for creating a draft entry.
// Balance is not required at creation; drafts may be composed incrementally.
type CreateJournalEntryRequest struct {
	Date        time.Time                `json:"date" binding:"required" time_format:"2006-01-02"`
	Description string                   `json:"description" binding:"required,max=255"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest mutates a DRAFT entry. Nil fields are untouched;
// when Lines is present it replaces the draft's lines wholesale.
type UpdateJournalEntryRequest struct {
	Date        *time.Time               `json:"date,omitempty"`
	Description *string                  `json:"description,omitempty" binding:"omitempty,max=255"`
	Lines       []CreateEntryLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// EntryLineResponse is the API representation of one journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalEntryResponse is the API representation of an entry with its lines.
type JournalEntryResponse struct {
	EntryID     string              `json:"entryID"`
	TenantID    string              `json:"tenantID"`
	EntryNumber int64               `json:"entryNumber"`
	EntryDate   time.Time           `json:"entryDate"`
	Description string              `json:"description"`
	Status      domain.EntryStatus  `json:"status"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams holds filters for listing journal entries.
type ListEntriesParams struct {
	Status    *domain.EntryStatus
	Limit     int
	NextToken *string
}

// ListEntriesResponse is a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain entry (with lines) to its API shape.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		TenantID:    e.TenantID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Status:      e.Status,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = EntryLineResponse{
				LineID:      l.LineID,
				AccountID:   l.AccountID,
				LineNumber:  l.LineNumber,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Description: l.Description,
			}
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of domain entries to API shapes.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToJournalEntryResponse(e)
	}
	return out
}
