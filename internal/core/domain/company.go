package domain

// Company is the tenant boundary. Every core operation takes an explicit
// company ID; there is no ambient "current company" state.
type Company struct {
	CompanyID    string `json:"companyID"` // Primary Key (UUID)
	Name         string `json:"name"`
	TaxID        string `json:"taxID"`        // RUC, nullable
	CurrencyCode string `json:"currencyCode"` // Single base currency (e.g. "PYG")
	AuditFields
}
