package mapping

import (
	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/haberesoft/contable_app/internal/models"
)

// ToModelPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:     d.PeriodID,
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Closed:       d.Closed,
		ClosedBy:     d.ClosedBy,
		ClosedAt:     d.ClosedAt,
		ReopenedBy:   d.ReopenedBy,
		ReopenedAt:   d.ReopenedAt,
		ReopenReason: d.ReopenReason,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:     m.PeriodID,
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Closed:       m.Closed,
		ClosedBy:     m.ClosedBy,
		ClosedAt:     m.ClosedAt,
		ReopenedBy:   m.ReopenedBy,
		ReopenedAt:   m.ReopenedAt,
		ReopenReason: m.ReopenReason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
