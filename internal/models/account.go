package models

// Account is the accounts row as persisted. The ledger engine only reads it.
type Account struct {
	AccountID            string `json:"accountID"`
	CompanyID            string `json:"companyID"`
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	AccountType          string `json:"accountType"`
	NormalSide           string `json:"normalSide"`
	PostingAllowed       bool   `json:"postingAllowed"`
	RequiresCounterparty bool   `json:"requiresCounterparty"`
	IsActive             bool   `json:"isActive"`
	AuditFields
}

// Company is the companies row as persisted.
type Company struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	TaxID        string `json:"taxID"`
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}
