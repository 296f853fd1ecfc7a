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
)

var (
	ErrPeriodNotFound      = errors.New("no fiscal period covers the given date")
	ErrPeriodClosed        = errors.New("fiscal period is closed")
	ErrPeriodAlreadyClosed = errors.New("fiscal period is already closed")
	ErrPeriodNotClosed     = errors.New("fiscal period is not closed")
	ErrPeriodHasDrafts     = errors.New("fiscal period still has draft entries")
	ErrPeriodOverlap       = errors.New("fiscal period overlaps an existing period")
	ErrReasonMissing       = errors.New("a reason is required")
	ErrInvalidDateRange    = errors.New("period start date must not be after end date")
)

// periodService implements the fiscal period registry.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryWithTx
	companySvc portssvc.CompanyReaderSvc
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryWithTx, companySvc portssvc.CompanyReaderSvc) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo: periodRepo,
		companySvc: companySvc,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod creates a new open fiscal period for the company.
func (s *periodService) CreatePeriod(ctx context.Context, companyID string, req dto.CreatePeriodRequest, creatorActorID string) (*domain.FiscalPeriod, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}

	// Company must exist before we hang periods off it.
	if _, err := s.companySvc.GetCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: companyID,
		Name:      req.Name,
		StartDate: req.StartDate.UTC().Truncate(24 * time.Hour),
		EndDate:   req.EndDate.UTC().Truncate(24 * time.Hour),
		Closed:    false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	// The database exclusion constraint still catches periods created
	// concurrently; this check reports the conflicting period by name.
	existing, err := s.periodRepo.ListPeriods(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods for overlap check", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	for _, other := range existing {
		if period.Overlaps(other) {
			return nil, fmt.Errorf("%w: %s", ErrPeriodOverlap, other.Name)
		}
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s to %s", ErrPeriodOverlap,
				period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to save fiscal period", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save fiscal period: %w", err)
	}

	s.LogInfo(ctx, "Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("company_id", companyID))
	return &period, nil
}

// GetPeriodByID retrieves a period, verifying company ownership.
func (s *periodService) GetPeriodByID(ctx context.Context, companyID string, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period by ID", slog.String("period_id", periodID))
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return period, nil
}

// ListPeriods retrieves the company's periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// IsPostable resolves the open period covering the date. This is the sole
// gate entry validation consults before accepting a date.
func (s *periodService) IsPostable(ctx context.Context, companyID string, date time.Time) (string, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrPeriodNotFound, date.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to resolve period for date", slog.String("company_id", companyID))
		return "", fmt.Errorf("failed to resolve period for date: %w", err)
	}
	if period.Closed {
		return "", fmt.Errorf("%w: %s", ErrPeriodClosed, period.Name)
	}
	return period.PeriodID, nil
}

// ClosePeriod closes an open period. The outstanding-draft check and the
// closed flag flip commit in the same database transaction, so a draft
// created concurrently either blocks the close or lands before the count.
func (s *periodService) ClosePeriod(ctx context.Context, companyID string, periodID string, actorID string) (*domain.FiscalPeriod, error) {
	tx, err := s.periodRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.periodRepo.Rollback(ctx, tx)

	period, err := s.periodRepo.FindPeriodByIDForUpdate(ctx, tx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}
	if period.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if period.Closed {
		return nil, fmt.Errorf("%w: %s", ErrPeriodAlreadyClosed, period.Name)
	}

	draftCount, err := s.periodRepo.CountDraftEntriesInPeriod(ctx, tx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count draft entries for period close", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to count draft entries: %w", err)
	}
	if draftCount > 0 {
		// Closing would silently orphan unconfirmed work. Confirmed and
		// voided entries never block closing.
		return nil, fmt.Errorf("%w: %d outstanding", ErrPeriodHasDrafts, draftCount)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.MarkPeriodClosed(ctx, tx, periodID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark period closed", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close period: %w", err)
	}

	if err := s.periodRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit period close: %w", err)
	}

	period.Closed = true
	period.ClosedBy = &actorID
	period.ClosedAt = &now
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Fiscal period closed", slog.String("period_id", periodID), slog.String("actor_id", actorID))
	return period, nil
}

// ReopenPeriod reopens a closed period. Audited with a mandatory reason; it
// does not revalidate entries confirmed before closing.
func (s *periodService) ReopenPeriod(ctx context.Context, companyID string, periodID string, actorID string, reason string) (*domain.FiscalPeriod, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w to reopen a period", ErrReasonMissing)
	}

	tx, err := s.periodRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.periodRepo.Rollback(ctx, tx)

	period, err := s.periodRepo.FindPeriodByIDForUpdate(ctx, tx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}
	if period.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if !period.Closed {
		return nil, fmt.Errorf("%w: %s", ErrPeriodNotClosed, period.Name)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.MarkPeriodReopened(ctx, tx, periodID, actorID, reason, now); err != nil {
		s.LogError(ctx, err, "Failed to mark period reopened", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to reopen period: %w", err)
	}

	if err := s.periodRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit period reopen: %w", err)
	}

	period.Closed = false
	period.ReopenedBy = &actorID
	period.ReopenedAt = &now
	period.ReopenReason = &reason
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Fiscal period reopened", slog.String("period_id", periodID), slog.String("actor_id", actorID), slog.String("reason", reason))
	return period, nil
}
