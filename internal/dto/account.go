package dto

import (
	"github.com/contabix/contabix_backend/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts node.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=50"`
	Name            string             `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID string             `json:"parentAccountID,omitempty" binding:"omitempty,uuid"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	TenantID        string             `json:"tenantID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	IsActive        bool               `json:"isActive"`
}

// AccountNodeResponse is one subtree of the chart-of-accounts view.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

// AccountTreeResponse is the full chart of accounts as a forest sorted by code.
type AccountTreeResponse struct {
	Accounts []AccountNodeResponse `json:"accounts"`
}

// ToAccountResponse converts a domain Account to its API representation.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		TenantID:        a.TenantID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		ParentAccountID: a.ParentAccountID,
		IsActive:        a.IsActive,
	}
}

// ToAccountTreeResponse converts a domain account forest to its API shape.
func ToAccountTreeResponse(forest []*domain.AccountNode) AccountTreeResponse {
	return AccountTreeResponse{Accounts: toAccountNodeResponses(forest)}
}

func toAccountNodeResponses(nodes []*domain.AccountNode) []AccountNodeResponse {
	out := make([]AccountNodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(n.Account),
			Children:        toAccountNodeResponses(n.Children),
		}
	}
	return out
}
