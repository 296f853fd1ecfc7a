package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haberesoft/contable_app/internal/apperrors"
	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/haberesoft/contable_app/internal/utils/accounting"
)

var (
	ErrEntryNotDraft      = errors.New("entry must be a draft for this operation")
	ErrEntryNotConfirmed  = errors.New("entry must be confirmed for this operation")
	ErrUnbalanced         = errors.New("entry debits and credits do not balance")
	ErrTooFewLines        = errors.New("entry must have at least two lines")
	ErrMemoMissing        = errors.New("entry memo is required")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotPostable = errors.New("account does not allow direct posting")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrCounterpartyNeeded = errors.New("account requires a counterparty on its lines")
)

// entryService owns the draft/confirmed/voided state machine for journal
// entries (asientos).
type entryService struct {
	BaseService
	entryRepo  portsrepo.EntryRepositoryWithTx
	accountSvc portssvc.AccountSvcFacade
	periodSvc  portssvc.PeriodReaderSvc
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, periodSvc portssvc.PeriodReaderSvc) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:  entryRepo,
		accountSvc: accountSvc,
		periodSvc:  periodSvc,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// buildLines converts request lines into domain lines owned by entryID.
// Line descriptions default to the entry memo.
func buildLines(entryID string, memo string, reqLines []dto.CreateEntryLineRequest) []domain.EntryLine {
	lines := make([]domain.EntryLine, len(reqLines))
	for i, lr := range reqLines {
		description := lr.Description
		if description == "" {
			description = memo
		}
		lines[i] = domain.EntryLine{
			LineID:         uuid.NewString(),
			EntryID:        entryID,
			LineNo:         i + 1,
			AccountID:      lr.AccountID,
			Side:           domain.EntrySide(lr.Side),
			Amount:         lr.Amount,
			Description:    description,
			DocumentRef:    lr.DocumentRef,
			CounterpartyID: lr.CounterpartyID,
		}
	}
	return lines
}

// validateDraft runs the validations shared by create and update: memo
// present, date inside an open period, per-line invariants, and account
// checks against the chart of accounts. Balance is deliberately NOT checked
// here; drafts may be transiently unbalanced while being edited.
// Returns the ID of the period covering the entry date.
func (s *entryService) validateDraft(ctx context.Context, companyID string, date time.Time, memo string, lines []domain.EntryLine) (string, error) {
	if strings.TrimSpace(memo) == "" {
		return "", ErrMemoMissing
	}

	periodID, err := s.periodSvc.IsPostable(ctx, companyID, date)
	if err != nil {
		return "", err
	}

	if err := accounting.ValidateLines(lines); err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, companyID, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry validation", slog.String("company_id", companyID))
		return "", fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, line := range lines {
		acc, found := accountsMap[line.AccountID]
		if !found {
			return "", fmt.Errorf("%w: ID %s", ErrAccountNotFound, line.AccountID)
		}
		if !acc.IsActive {
			return "", fmt.Errorf("%w: %s (%s)", ErrAccountInactive, acc.Code, acc.AccountID)
		}
		if !acc.PostingAllowed {
			return "", fmt.Errorf("%w: %s (%s)", ErrAccountNotPostable, acc.Code, acc.AccountID)
		}
		if acc.RequiresCounterparty && (line.CounterpartyID == nil || *line.CounterpartyID == "") {
			return "", fmt.Errorf("%w: %s on line %d", ErrCounterpartyNeeded, acc.Code, line.LineNo)
		}
	}

	return periodID, nil
}

// CreateEntry validates and persists a new draft entry with its lines.
func (s *entryService) CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorActorID string) (*domain.Entry, error) {
	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Memo, req.Lines)

	periodID, err := s.validateDraft(ctx, companyID, req.Date, req.Memo, lines)
	if err != nil {
		return nil, err
	}

	origin := domain.EntryOrigin(req.Origin)
	if origin == "" {
		origin = domain.OriginManual
	}

	now := time.Now().UTC()
	entry := domain.Entry{
		EntryID:   entryID,
		CompanyID: companyID,
		PeriodID:  periodID,
		EntryDate: req.Date.UTC().Truncate(24 * time.Hour),
		Kind:      domain.EntryKind(req.Kind),
		Origin:    origin,
		Memo:      req.Memo,
		Reference: req.Reference,
		Status:    domain.Draft,
		Version:   1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Draft entry created", slog.String("entry_id", entryID), slog.String("company_id", companyID))
	entry.Lines = lines
	return &entry, nil
}

// getOwnedEntry fetches the entry and verifies it belongs to the company.
func (s *entryService) getOwnedEntry(ctx context.Context, companyID string, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		s.LogWarn(ctx, "Entry requested across company boundary",
			slog.String("entry_id", entryID),
			slog.String("entry_company", entry.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.Entry, error) {
	entry, err := s.getOwnedEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a filtered, paginated audit listing. All statuses
// are visible here; only the ledger reports exclude non-confirmed entries.
func (s *entryService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.ListEntriesFilter{
		PeriodID: params.PeriodID,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		filter.Status = &status
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByCompany(ctx, companyID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	var linesMap map[string][]domain.EntryLine
	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesMap, err = s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			// Serve the headers even if the lines fetch fails.
			s.LogWarn(ctx, "Failed to fetch lines for entry listing", slog.String("error", err.Error()))
		}
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		if linesMap != nil {
			entries[i].Lines = linesMap[entries[i].EntryID]
		}
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	s.LogDebug(ctx, "Entries listed", slog.Int("count", len(entries)))
	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// UpdateEntry patches a draft entry, re-running the draft validations.
// A stale version fails explicitly rather than silently discarding another
// writer's edit.
func (s *entryService) UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.Entry, error) {
	entry, err := s.getOwnedEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, fmt.Errorf("%w: status is %s", ErrEntryNotDraft, entry.Status)
	}
	if entry.Version != req.Version {
		return nil, fmt.Errorf("%w: entry %s is at version %d", apperrors.ErrConcurrentModification, entryID, entry.Version)
	}

	if req.Date != nil {
		entry.EntryDate = req.Date.UTC().Truncate(24 * time.Hour)
	}
	if req.Kind != nil {
		entry.Kind = domain.EntryKind(*req.Kind)
	}
	if req.Memo != nil {
		entry.Memo = *req.Memo
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}

	var lines []domain.EntryLine
	if req.Lines != nil {
		lines = buildLines(entryID, entry.Memo, *req.Lines)
	} else {
		lines, err = s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
		}
	}

	periodID, err := s.validateDraft(ctx, companyID, entry.EntryDate, entry.Memo, lines)
	if err != nil {
		return nil, err
	}
	entry.PeriodID = periodID

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	if err := s.entryRepo.UpdateDraftEntry(ctx, *entry, lines, req.Version); err != nil {
		s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	entry.Version = req.Version + 1
	entry.Lines = lines
	s.LogInfo(ctx, "Draft entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// ConfirmEntry re-validates the confirmation invariants and atomically
// assigns the next entry number while flipping the entry to CONFIRMED.
// State may have drifted since the last edit (the period may have closed in
// the meantime), so everything is checked again here.
func (s *entryService) ConfirmEntry(ctx context.Context, companyID string, entryID string, version int64, actorID string) (*domain.Entry, error) {
	entry, err := s.getOwnedEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, fmt.Errorf("%w: status is %s", ErrEntryNotDraft, entry.Status)
	}
	if entry.Version != version {
		return nil, fmt.Errorf("%w: entry %s is at version %d", apperrors.ErrConcurrentModification, entryID, entry.Version)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLines, len(lines))
	}
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !accounting.IsBalanced(lines) {
		debe, haber := accounting.SumSides(lines)
		return nil, fmt.Errorf("%w: debe %s vs haber %s", ErrUnbalanced, debe.String(), haber.String())
	}

	// The period gate is consulted here and re-checked by the repository
	// inside the confirming transaction, closing the check-then-act window.
	if _, err := s.periodSvc.IsPostable(ctx, companyID, entry.EntryDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryNumber, err := s.entryRepo.ConfirmEntry(ctx, entryID, version, actorID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to confirm entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to confirm entry: %w", err)
	}

	entry.Status = domain.Confirmed
	entry.EntryNumber = &entryNumber
	entry.ConfirmedBy = &actorID
	entry.ConfirmedAt = &now
	entry.Version = version + 1
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	entry.Lines = lines

	s.LogInfo(ctx, "Entry confirmed",
		slog.String("entry_id", entryID),
		slog.Int64("entry_number", entryNumber),
		slog.String("actor_id", actorID))
	return entry, nil
}

// VoidEntry flags a confirmed entry as voided. The entry keeps its number
// and remains visible in audit listings; only report aggregation drops it.
func (s *entryService) VoidEntry(ctx context.Context, companyID string, entryID string, version int64, actorID string, reason string) (*domain.Entry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w to void an entry", ErrReasonMissing)
	}

	entry, err := s.getOwnedEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Confirmed {
		return nil, fmt.Errorf("%w: status is %s", ErrEntryNotConfirmed, entry.Status)
	}
	if entry.Version != version {
		return nil, fmt.Errorf("%w: entry %s is at version %d", apperrors.ErrConcurrentModification, entryID, entry.Version)
	}

	now := time.Now().UTC()
	if err := s.entryRepo.VoidEntry(ctx, entryID, version, actorID, reason, now); err != nil {
		s.LogError(ctx, err, "Failed to void entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to void entry: %w", err)
	}

	entry.Status = domain.Voided
	entry.VoidedBy = &actorID
	entry.VoidedAt = &now
	entry.VoidReason = &reason
	entry.Version = version + 1
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Entry voided", slog.String("entry_id", entryID), slog.String("reason", reason))
	return entry, nil
}

// DeleteEntry removes a draft entry and its lines, the only destructive path
// in the lifecycle.
func (s *entryService) DeleteEntry(ctx context.Context, companyID string, entryID string, version int64, actorID string) error {
	entry, err := s.getOwnedEntry(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if !entry.IsEditable() {
		return fmt.Errorf("%w: status is %s", ErrEntryNotDraft, entry.Status)
	}
	if entry.Version != version {
		return fmt.Errorf("%w: entry %s is at version %d", apperrors.ErrConcurrentModification, entryID, entry.Version)
	}

	if err := s.entryRepo.DeleteDraftEntry(ctx, entryID, version); err != nil {
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	s.LogInfo(ctx, "Draft entry deleted", slog.String("entry_id", entryID), slog.String("actor_id", actorID))
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
