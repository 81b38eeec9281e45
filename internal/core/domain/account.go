package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the five known kinds.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account type carries a debit-positive
// normal balance (assets and expenses increase with debits).
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents one node of a tenant's chart of accounts.
// The hierarchy is stored flat: ParentAccountID is an id reference, never a
// nested structure; the tree shape is reconstructed on read.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary Key (UUID)
	TenantID        string      `json:"tenantID"`  // FK -> tenants.tenant_id (Not Null)
	Code            string      `json:"code"`      // Dotted hierarchical code, unique per tenant (e.g. "1.1.01")
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id, same tenant
	IsActive        bool        `json:"isActive"`        // Soft deactivation flag; accounts with postings are never deleted
	AuditFields
}

// AccountNode is a read-side reconstruction of one subtree of the chart of
// accounts. Children are sorted by code.
type AccountNode struct {
	Account  Account        `json:"account"`
	Children []*AccountNode `json:"children"`
}
