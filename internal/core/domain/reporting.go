package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents one account's activity within a fiscal period.
// Balance is signed per the account's normal-balance convention: debit-positive
// for ASSET/EXPENSE, credit-positive for LIABILITY/EQUITY/REVENUE.
type TrialBalanceRow struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// TrialBalanceReport is the full trial balance for one fiscal period.
type TrialBalanceReport struct {
	PeriodID    string
	StartDate   time.Time
	EndDate     time.Time
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// GeneralLedgerRow is one posted line in an account's ledger detail, carrying
// the running balance up to and including that line.
type GeneralLedgerRow struct {
	EntryID        string
	EntryNumber    int64
	EntryDate      time.Time
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
}

// GeneralLedgerReport is the chronological detail of one account over a date
// range. The running balance is seeded from zero at StartDate; prior-period
// activity is not carried forward.
type GeneralLedgerReport struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType AccountType
	StartDate   time.Time
	EndDate     time.Time
	Rows        []GeneralLedgerRow
}
