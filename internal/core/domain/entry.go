package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Confirmed EntryStatus = "CONFIRMED"
	Voided    EntryStatus = "VOIDED"
)

// EntryKind classifies a journal entry within the fiscal year.
type EntryKind string

const (
	KindOperation  EntryKind = "OPERATION"
	KindOpening    EntryKind = "OPENING"
	KindAdjustment EntryKind = "ADJUSTMENT"
	KindClosing    EntryKind = "CLOSING"
)

// EntryOrigin records whether an entry was typed in by a user or generated
// by the system (e.g. an opening entry carried over from a prior period).
type EntryOrigin string

const (
	OriginManual EntryOrigin = "MANUAL"
	OriginSystem EntryOrigin = "SYSTEM"
)

// EntrySide indicates whether a line is a Debe (debit) or Haber (credit).
type EntrySide string

const (
	Debe  EntrySide = "DEBIT"
	Haber EntrySide = "CREDIT"
)

// Entry represents a single journal entry (asiento) composed of multiple
// debit/credit lines. An entry is freely editable while Draft, becomes
// immutable and report-visible at confirmation, and can only be flagged
// Voided afterwards; voiding is never a deletion.
type Entry struct {
	EntryID     string      `json:"entryID"`     // Primary Key (UUID)
	CompanyID   string      `json:"companyID"`   // FK -> companies.company_id (Not Null)
	PeriodID    string      `json:"periodID"`    // FK -> fiscal_periods.period_id (Not Null)
	EntryNumber *int64      `json:"entryNumber"` // Assigned at confirmation; unique per company, never reused
	EntryDate   time.Time   `json:"entryDate"`   // Date the event occurred; must fall inside the period
	Kind        EntryKind   `json:"kind"`
	Origin      EntryOrigin `json:"origin"`
	Memo        string      `json:"memo"`      // Glosa, required non-empty
	Reference   string      `json:"reference"` // Nullable external document reference
	Status      EntryStatus `json:"status"`
	Version     int64       `json:"version"` // Optimistic concurrency token

	ConfirmedBy *string    `json:"confirmedBy,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	VoidedBy    *string    `json:"voidedBy,omitempty"`
	VoidedAt    *time.Time `json:"voidedAt,omitempty"`
	VoidReason  *string    `json:"voidReason,omitempty"`

	Lines []EntryLine `json:"lines,omitempty"` // Owned, ordered by LineNo
	AuditFields
}

// EntryLine is a single debit or credit movement within an entry. Lines are
// exclusively owned by their entry and cannot outlive it.
type EntryLine struct {
	LineID         string          `json:"lineID"`  // Primary Key (UUID)
	EntryID        string          `json:"entryID"` // FK -> journal_entries.entry_id (Not Null)
	LineNo         int             `json:"lineNo"`  // 1-based position within the entry
	AccountID      string          `json:"accountID"`
	Side           EntrySide       `json:"side"`
	Amount         decimal.Decimal `json:"amount"`      // Always positive; side carries the direction
	Description    string          `json:"description"` // Defaults to the entry memo when empty
	DocumentRef    string          `json:"documentRef"` // Nullable supporting-document reference
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
}

// IsEditable reports whether the entry may still be modified or deleted.
func (e Entry) IsEditable() bool {
	return e.Status == Draft
}
