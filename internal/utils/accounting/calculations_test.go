package accounting_test

import (
	"testing"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/contabix/contabix_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	debitLine := domain.JournalEntryLine{AccountID: "acc-1", Debit: decimal.NewFromInt(1000)}
	creditLine := domain.JournalEntryLine{AccountID: "acc-1", Credit: decimal.NewFromInt(1000)}

	tests := []struct {
		name        string
		line        domain.JournalEntryLine
		accountType domain.AccountType
		want        int64
	}{
		{"debit to asset is positive", debitLine, domain.Asset, 1000},
		{"credit to asset is negative", creditLine, domain.Asset, -1000},
		{"debit to expense is positive", debitLine, domain.Expense, 1000},
		{"debit to liability is negative", debitLine, domain.Liability, -1000},
		{"credit to revenue is positive", creditLine, domain.Revenue, 1000},
		{"credit to equity is positive", creditLine, domain.Equity, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}

	_, err := accounting.SignedAmount(debitLine, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidateLines(t *testing.T) {
	valid := []domain.JournalEntryLine{
		{LineNumber: 1, AccountID: "acc-1", Debit: decimal.NewFromInt(1000)},
		{LineNumber: 2, AccountID: "acc-2", Credit: decimal.NewFromInt(1000)},
	}
	assert.NoError(t, accounting.ValidateLines(valid))

	assert.Error(t, accounting.ValidateLines(valid[:1]), "single line must be rejected")

	bothSides := []domain.JournalEntryLine{
		{LineNumber: 1, AccountID: "acc-1", Debit: decimal.NewFromInt(1000), Credit: decimal.NewFromInt(1000)},
		{LineNumber: 2, AccountID: "acc-2", Credit: decimal.NewFromInt(1000)},
	}
	assert.Error(t, accounting.ValidateLines(bothSides))

	missingAccount := []domain.JournalEntryLine{
		{LineNumber: 1, Debit: decimal.NewFromInt(1000)},
		{LineNumber: 2, AccountID: "acc-2", Credit: decimal.NewFromInt(1000)},
	}
	assert.Error(t, accounting.ValidateLines(missingAccount))
}

func TestValidateBalance(t *testing.T) {
	balanced := []domain.JournalEntryLine{
		{LineNumber: 1, AccountID: "acc-1", Debit: decimal.NewFromInt(1000)},
		{LineNumber: 2, AccountID: "acc-2", Credit: decimal.NewFromInt(1000)},
	}
	assert.NoError(t, accounting.ValidateBalance(balanced))

	unbalanced := []domain.JournalEntryLine{
		{LineNumber: 1, AccountID: "acc-1", Debit: decimal.NewFromInt(500)},
		{LineNumber: 2, AccountID: "acc-2", Credit: decimal.NewFromInt(400)},
	}
	assert.Error(t, accounting.ValidateBalance(unbalanced))

	// Amounts differing only beyond the currency precision compare equal.
	subCent := []domain.JournalEntryLine{
		{LineNumber: 1, AccountID: "acc-1", Debit: decimal.RequireFromString("100.001")},
		{LineNumber: 2, AccountID: "acc-2", Credit: decimal.RequireFromString("100.0012")},
	}
	assert.NoError(t, accounting.ValidateBalance(subCent))
}
