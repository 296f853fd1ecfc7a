package dto

import (
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
)

// ReportParams holds the shared filters for the three ledger reports.
type ReportParams struct {
	PeriodID *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// DiarioParams extends ReportParams with pagination for the journal feed.
type DiarioParams struct {
	ReportParams
	Limit     int
	NextToken *string
}

// DiarioResponse is one page of the Libro Diario feed.
type DiarioResponse struct {
	Rows      []domain.DiarioRow `json:"rows"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// MayorResponse wraps the per-account ledger sections.
type MayorResponse struct {
	Accounts []domain.MayorAccount `json:"accounts"`
}
