package dto

import (
	"time"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report for one period.
type TrialBalanceResponse struct {
	PeriodID  string                    `json:"periodID"`
	StartDate string                    `json:"startDate"`
	EndDate   string                    `json:"endDate"`
	Rows      []TrialBalanceRowResponse `json:"rows"`
	Totals    struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// GeneralLedgerRowResponse is one line of an account's ledger detail.
type GeneralLedgerRowResponse struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    int64           `json:"entryNumber"`
	EntryDate      string          `json:"entryDate"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerResponse is an account's running-balance ledger detail.
type GeneralLedgerResponse struct {
	AccountID   string                     `json:"accountID"`
	AccountCode string                     `json:"accountCode"`
	AccountName string                     `json:"accountName"`
	AccountType string                     `json:"accountType"`
	StartDate   string                     `json:"startDate"`
	EndDate     string                     `json:"endDate"`
	Rows        []GeneralLedgerRowResponse `json:"rows"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		PeriodID:  report.PeriodID,
		StartDate: report.StartDate.Format("2006-01-02"),
		EndDate:   report.EndDate.Format("2006-01-02"),
		Rows:      make([]TrialBalanceRowResponse, len(report.Rows)),
	}
	for i, row := range report.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	resp.Totals.Debit = report.TotalDebit
	resp.Totals.Credit = report.TotalCredit
	return resp
}

// ToGeneralLedgerResponse converts a domain general ledger report to a DTO.
func ToGeneralLedgerResponse(report *domain.GeneralLedgerReport) GeneralLedgerResponse {
	resp := GeneralLedgerResponse{
		AccountID:   report.AccountID,
		AccountCode: report.AccountCode,
		AccountName: report.AccountName,
		AccountType: string(report.AccountType),
		StartDate:   report.StartDate.Format("2006-01-02"),
		EndDate:     report.EndDate.Format("2006-01-02"),
		Rows:        make([]GeneralLedgerRowResponse, len(report.Rows)),
	}
	for i, row := range report.Rows {
		resp.Rows[i] = GeneralLedgerRowResponse{
			EntryID:        row.EntryID,
			EntryNumber:    row.EntryNumber,
			EntryDate:      row.EntryDate.Format("2006-01-02"),
			Description:    row.Description,
			Debit:          row.Debit,
			Credit:         row.Credit,
			RunningBalance: row.RunningBalance,
		}
	}
	return resp
}

// GeneralLedgerParams holds the query parameters for the general ledger report.
type GeneralLedgerParams struct {
	AccountID string
	StartDate time.Time
	EndDate   time.Time
}
