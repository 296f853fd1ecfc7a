package mapping

import (
	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/haberesoft/contable_app/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:     d.EntryID,
		CompanyID:   d.CompanyID,
		PeriodID:    d.PeriodID,
		EntryNumber: d.EntryNumber,
		EntryDate:   d.EntryDate,
		Kind:        string(d.Kind),
		Origin:      string(d.Origin),
		Memo:        d.Memo,
		Reference:   d.Reference,
		Status:      models.EntryStatus(d.Status),
		Version:     d.Version,
		ConfirmedBy: d.ConfirmedBy,
		ConfirmedAt: d.ConfirmedAt,
		VoidedBy:    d.VoidedBy,
		VoidedAt:    d.VoidedAt,
		VoidReason:  d.VoidReason,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		PeriodID:    m.PeriodID,
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		Kind:        domain.EntryKind(m.Kind),
		Origin:      domain.EntryOrigin(m.Origin),
		Memo:        m.Memo,
		Reference:   m.Reference,
		Status:      domain.EntryStatus(m.Status),
		Version:     m.Version,
		ConfirmedBy: m.ConfirmedBy,
		ConfirmedAt: m.ConfirmedAt,
		VoidedBy:    m.VoidedBy,
		VoidedAt:    m.VoidedAt,
		VoidReason:  m.VoidReason,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain EntryLine to a model EntryLine
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		LineNo:         d.LineNo,
		AccountID:      d.AccountID,
		Side:           string(d.Side),
		Amount:         d.Amount,
		Description:    d.Description,
		DocumentRef:    d.DocumentRef,
		CounterpartyID: d.CounterpartyID,
	}
}

// ToDomainEntryLine converts a model EntryLine to a domain EntryLine
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		LineNo:         m.LineNo,
		AccountID:      m.AccountID,
		Side:           domain.EntrySide(m.Side),
		Amount:         m.Amount,
		Description:    m.Description,
		DocumentRef:    m.DocumentRef,
		CounterpartyID: m.CounterpartyID,
	}
}
