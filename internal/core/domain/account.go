package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a chart-of-accounts record as the ledger engine consumes it.
// The engine never mutates accounts; the chart of accounts is maintained elsewhere.
type Account struct {
	AccountID            string      `json:"accountID"`  // Primary Key (UUID)
	CompanyID            string      `json:"companyID"`  // FK -> companies.company_id (NON-NULL)
	Code                 string      `json:"code"`       // Plan-de-cuentas code, unique per company (e.g. "1.1.01")
	Name                 string      `json:"name"`       // User-defined name
	AccountType          AccountType `json:"accountType"`
	NormalSide           EntrySide   `json:"normalSide"`           // Side on which the account normally carries its balance
	PostingAllowed       bool        `json:"postingAllowed"`       // False for grouping accounts; lines may only hit posting accounts
	RequiresCounterparty bool        `json:"requiresCounterparty"` // Lines against this account must name a counterparty
	IsActive             bool        `json:"isActive"`
	AuditFields
}
