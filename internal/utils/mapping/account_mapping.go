package mapping

import (
	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/haberesoft/contable_app/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:            m.AccountID,
		CompanyID:            m.CompanyID,
		Code:                 m.Code,
		Name:                 m.Name,
		AccountType:          domain.AccountType(m.AccountType),
		NormalSide:           domain.EntrySide(m.NormalSide),
		PostingAllowed:       m.PostingAllowed,
		RequiresCounterparty: m.RequiresCounterparty,
		IsActive:             m.IsActive,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:            d.AccountID,
		CompanyID:            d.CompanyID,
		Code:                 d.Code,
		Name:                 d.Name,
		AccountType:          string(d.AccountType),
		NormalSide:           string(d.NormalSide),
		PostingAllowed:       d.PostingAllowed,
		RequiresCounterparty: d.RequiresCounterparty,
		IsActive:             d.IsActive,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		TaxID:        m.TaxID,
		CurrencyCode: m.CurrencyCode,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		TaxID:        d.TaxID,
		CurrencyCode: d.CurrencyCode,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}
