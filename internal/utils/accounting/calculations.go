package accounting

import (
	"fmt"

	"github.com/contabix/contabix_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of decimal places monetary amounts are
// rounded to before comparison. Balance checks never use float tolerance;
// amounts are rounded to this precision and compared exactly.
const CurrencyPrecision = 2

// Round normalizes an amount to the configured currency precision.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPrecision)
}

// SignedAmount applies the normal-balance convention to a journal line:
// DEBIT to ASSET/EXPENSE is positive, CREDIT negative; the convention flips
// for LIABILITY/EQUITY/REVENUE.
func SignedAmount(line domain.JournalEntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s' for account ID %s", accountType, line.AccountID)
	}

	net := line.Debit.Sub(line.Credit)
	if accountType.IsDebitNormal() {
		return net, nil
	}
	return net.Neg(), nil
}

// ValidateLines checks the per-line shape rules that hold even for drafts:
// every line references an account and carries exactly one positive side.
func ValidateLines(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}
	for _, line := range lines {
		if line.AccountID == "" {
			return fmt.Errorf("journal line %d is missing an account reference", line.LineNumber)
		}
		if !line.IsSingleSided() {
			return fmt.Errorf("journal line %d must have exactly one of debit or credit positive", line.LineNumber)
		}
	}
	return nil
}

// ValidateBalance checks that debits equal credits at the configured currency
// precision. It assumes ValidateLines has already passed.
func ValidateBalance(lines []domain.JournalEntryLine) error {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !Round(totalDebit).Equal(Round(totalCredit)) {
		return fmt.Errorf("journal entry does not balance: debits sum to %s, credits sum to %s",
			totalDebit.String(), totalCredit.String())
	}
	return nil
}
