package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry row.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Confirmed EntryStatus = "CONFIRMED"
	Voided    EntryStatus = "VOIDED"
)

// Entry is the journal_entries row as persisted.
type Entry struct {
	EntryID     string      `json:"entryID"`
	CompanyID   string      `json:"companyID"`
	PeriodID    string      `json:"periodID"`
	EntryNumber *int64      `json:"entryNumber"`
	EntryDate   time.Time   `json:"entryDate"`
	Kind        string      `json:"kind"`
	Origin      string      `json:"origin"`
	Memo        string      `json:"memo"`
	Reference   string      `json:"reference"`
	Status      EntryStatus `json:"status"`
	Version     int64       `json:"version"`
	ConfirmedBy *string     `json:"confirmedBy"`
	ConfirmedAt *time.Time  `json:"confirmedAt"`
	VoidedBy    *string     `json:"voidedBy"`
	VoidedAt    *time.Time  `json:"voidedAt"`
	VoidReason  *string     `json:"voidReason"`
	AuditFields
}

// EntryLine is the entry_lines row as persisted.
type EntryLine struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountID"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	DocumentRef    string          `json:"documentRef"`
	CounterpartyID *string         `json:"counterpartyID"`
}
