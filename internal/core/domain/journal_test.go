package domain_test

import (
	"testing"
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalEntry_Post(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		status     domain.EntryStatus
		wantErr    error
		wantStatus domain.EntryStatus
	}{
		{
			name:       "draft entry posts successfully",
			status:     domain.EntryDraft,
			wantErr:    nil,
			wantStatus: domain.EntryPosted,
		},
		{
			name:       "posted entry rejects second post",
			status:     domain.EntryPosted,
			wantErr:    domain.ErrAlreadyPosted,
			wantStatus: domain.EntryPosted,
		},
		{
			name:       "voided entry cannot be reposted",
			status:     domain.EntryVoided,
			wantErr:    domain.ErrAlreadyVoided,
			wantStatus: domain.EntryVoided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{Status: tt.status}
			err := entry.Post(now, "user-1")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantStatus, entry.Status)
		})
	}
}

func TestJournalEntry_Void(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		status     domain.EntryStatus
		wantErr    error
		wantStatus domain.EntryStatus
	}{
		{
			name:       "posted entry voids successfully",
			status:     domain.EntryPosted,
			wantErr:    nil,
			wantStatus: domain.EntryVoided,
		},
		{
			name:       "draft entry cannot be voided",
			status:     domain.EntryDraft,
			wantErr:    domain.ErrNotPosted,
			wantStatus: domain.EntryDraft,
		},
		{
			name:       "voided entry cannot be voided twice",
			status:     domain.EntryVoided,
			wantErr:    domain.ErrAlreadyVoided,
			wantStatus: domain.EntryVoided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{Status: tt.status}
			err := entry.Void(now, "user-1")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantStatus, entry.Status)
		})
	}
}

func TestJournalEntryLine_IsSingleSided(t *testing.T) {
	tests := []struct {
		name string
		line domain.JournalEntryLine
		want bool
	}{
		{
			name: "debit only",
			line: domain.JournalEntryLine{Debit: decimal.NewFromInt(1000)},
			want: true,
		},
		{
			name: "credit only",
			line: domain.JournalEntryLine{Credit: decimal.NewFromInt(1000)},
			want: true,
		},
		{
			name: "both zero",
			line: domain.JournalEntryLine{},
			want: false,
		},
		{
			name: "both nonzero",
			line: domain.JournalEntryLine{Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(500)},
			want: false,
		},
		{
			name: "negative debit",
			line: domain.JournalEntryLine{Debit: decimal.NewFromInt(-100)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.IsSingleSided())
		})
	}
}

func TestFiscalPeriod_Contains(t *testing.T) {
	period := domain.FiscalPeriod{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, period.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestFiscalPeriod_Close(t *testing.T) {
	now := time.Now().UTC()
	period := domain.FiscalPeriod{Status: domain.PeriodOpen}

	assert.NoError(t, period.Close(now, "user-1"))
	assert.Equal(t, domain.PeriodClosed, period.Status)

	err := period.Close(now, "user-1")
	assert.ErrorIs(t, err, domain.ErrPeriodAlreadyClosed)
}
