package dto

import (
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Journal entry DTOs ---

// CreateEntryLineRequest is one debit/credit line of a new or updated entry.
type CreateEntryLineRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	Side           string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description"`
	DocumentRef    string          `json:"documentRef"`
	CounterpartyID *string         `json:"counterpartyID"`
}

// CreateEntryRequest defines data for creating a draft entry. Balance is not
// required at this stage; drafts may be transiently unbalanced while edited.
type CreateEntryRequest struct {
	Date      time.Time                `json:"date" binding:"required" time_format:"2006-01-02"`
	Kind      string                   `json:"kind" binding:"required,oneof=OPERATION OPENING ADJUSTMENT CLOSING"`
	Origin    string                   `json:"origin" binding:"omitempty,oneof=MANUAL SYSTEM"`
	Memo      string                   `json:"memo" binding:"required"`
	Reference string                   `json:"reference"`
	Lines     []CreateEntryLineRequest `json:"lines" binding:"required,dive"`
}

// UpdateEntryRequest patches a draft entry. Nil header fields are left as-is;
// a non-nil Lines slice replaces the draft's lines wholesale.
type UpdateEntryRequest struct {
	Version   int64                     `json:"version" binding:"required"`
	Date      *time.Time                `json:"date" time_format:"2006-01-02"`
	Kind      *string                   `json:"kind" binding:"omitempty,oneof=OPERATION OPENING ADJUSTMENT CLOSING"`
	Memo      *string                   `json:"memo"`
	Reference *string                   `json:"reference"`
	Lines     *[]CreateEntryLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ConfirmEntryRequest carries the caller's entry version for the confirm gate.
type ConfirmEntryRequest struct {
	Version int64 `json:"version" binding:"required"`
}

// VoidEntryRequest carries the mandatory void reason.
type VoidEntryRequest struct {
	Version int64  `json:"version" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

// DeleteEntryRequest carries the caller's entry version for the delete gate.
type DeleteEntryRequest struct {
	Version int64 `json:"version" binding:"required"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID         string          `json:"lineID"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountID"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	DocumentRef    string          `json:"documentRef,omitempty"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	CompanyID   string              `json:"companyID"`
	PeriodID    string              `json:"periodID"`
	EntryNumber *int64              `json:"entryNumber"`
	Date        time.Time           `json:"date"`
	Kind        string              `json:"kind"`
	Origin      string              `json:"origin"`
	Memo        string              `json:"memo"`
	Reference   string              `json:"reference,omitempty"`
	Status      string              `json:"status"`
	Version     int64               `json:"version"`
	ConfirmedBy *string             `json:"confirmedBy,omitempty"`
	ConfirmedAt *time.Time          `json:"confirmedAt,omitempty"`
	VoidedBy    *string             `json:"voidedBy,omitempty"`
	VoidedAt    *time.Time          `json:"voidedAt,omitempty"`
	VoidReason  *string             `json:"voidReason,omitempty"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ListEntriesParams holds parameters for listing entries.
type ListEntriesParams struct {
	PeriodID  *string
	Status    *string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	NextToken *string
}

// ListEntriesResponse wraps a page of entries and the token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to DTO.
func ToEntryLineResponse(l *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:         l.LineID,
		LineNo:         l.LineNo,
		AccountID:      l.AccountID,
		Side:           string(l.Side),
		Amount:         l.Amount,
		Description:    l.Description,
		DocumentRef:    l.DocumentRef,
		CounterpartyID: l.CounterpartyID,
	}
}

// ToEntryResponse converts a domain.Entry to DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		CompanyID:   e.CompanyID,
		PeriodID:    e.PeriodID,
		EntryNumber: e.EntryNumber,
		Date:        e.EntryDate,
		Kind:        string(e.Kind),
		Origin:      string(e.Origin),
		Memo:        e.Memo,
		Reference:   e.Reference,
		Status:      string(e.Status),
		Version:     e.Version,
		ConfirmedBy: e.ConfirmedBy,
		ConfirmedAt: e.ConfirmedAt,
		VoidedBy:    e.VoidedBy,
		VoidedAt:    e.VoidedAt,
		VoidReason:  e.VoidReason,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}
