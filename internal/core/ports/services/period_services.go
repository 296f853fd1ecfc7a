package services

import (
	"context"
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/haberesoft/contable_app/internal/dto"
)

// PeriodReaderSvc defines read operations for fiscal period data
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a specific fiscal period.
	GetPeriodByID(ctx context.Context, companyID string, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves the company's fiscal periods ordered by start date.
	ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error)

	// IsPostable resolves the open period covering the date and returns its ID.
	// This is the sole gate entry validation consults.
	IsPostable(ctx context.Context, companyID string, date time.Time) (string, error)
}

// PeriodWriterSvc defines write operations for fiscal period data
type PeriodWriterSvc interface {
	// CreatePeriod creates a new open fiscal period.
	CreatePeriod(ctx context.Context, companyID string, req dto.CreatePeriodRequest, creatorActorID string) (*domain.FiscalPeriod, error)

	// ClosePeriod closes an open period. Blocked while draft entries target it.
	ClosePeriod(ctx context.Context, companyID string, periodID string, actorID string) (*domain.FiscalPeriod, error)

	// ReopenPeriod reopens a closed period with a mandatory audit reason.
	ReopenPeriod(ctx context.Context, companyID string, periodID string, actorID string, reason string) (*domain.FiscalPeriod, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
