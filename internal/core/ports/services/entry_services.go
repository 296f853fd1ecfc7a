package services

import (
	"context"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/haberesoft/contable_app/internal/dto"
)

// EntryReaderSvc defines read operations for journal entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a filtered, paginated audit listing of entries.
	// Voided and draft entries are included; only reports exclude them.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines the draft/confirm/void/delete lifecycle operations.
type EntryWriterSvc interface {
	// CreateEntry validates and persists a new draft entry with its lines.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorActorID string) (*domain.Entry, error)

	// UpdateEntry patches a draft entry, re-running the create validations.
	UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.Entry, error)

	// ConfirmEntry re-validates the balance and line-count invariants, assigns
	// the next per-company entry number and makes the entry immutable.
	ConfirmEntry(ctx context.Context, companyID string, entryID string, version int64, actorID string) (*domain.Entry, error)

	// VoidEntry flags a confirmed entry as voided with a mandatory reason.
	VoidEntry(ctx context.Context, companyID string, entryID string, version int64, actorID string, reason string) (*domain.Entry, error)

	// DeleteEntry removes a draft entry. Illegal for any other status.
	DeleteEntry(ctx context.Context, companyID string, entryID string, version int64, actorID string) error
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
