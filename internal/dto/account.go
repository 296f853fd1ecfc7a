package dto

import (
	"github.com/haberesoft/contable_app/internal/core/domain"
)

// --- Account DTOs (read contract only; the chart of accounts is maintained elsewhere) ---

// AccountResponse defines data returned for a chart-of-accounts record.
type AccountResponse struct {
	AccountID            string `json:"accountID"`
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	AccountType          string `json:"accountType"`
	NormalSide           string `json:"normalSide"`
	PostingAllowed       bool   `json:"postingAllowed"`
	RequiresCounterparty bool   `json:"requiresCounterparty"`
	IsActive             bool   `json:"isActive"`
}

// ToAccountResponse converts domain.Account to DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:            a.AccountID,
		Code:                 a.Code,
		Name:                 a.Name,
		AccountType:          string(a.AccountType),
		NormalSide:           string(a.NormalSide),
		PostingAllowed:       a.PostingAllowed,
		RequiresCounterparty: a.RequiresCounterparty,
		IsActive:             a.IsActive,
	}
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to DTO.
func ToListAccountsResponse(as []domain.Account) ListAccountsResponse {
	list := make([]AccountResponse, len(as))
	for i, a := range as {
		list[i] = ToAccountResponse(&a)
	}
	return ListAccountsResponse{Accounts: list}
}
