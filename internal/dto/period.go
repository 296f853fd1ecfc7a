package dto

import (
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
)

// --- Fiscal period DTOs ---

// CreatePeriodRequest defines data for creating a fiscal period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// ReopenPeriodRequest carries the mandatory audit reason for reopening.
type ReopenPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PeriodResponse defines data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID     string     `json:"periodID"`
	CompanyID    string     `json:"companyID"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Closed       bool       `json:"closed"`
	ClosedBy     *string    `json:"closedBy,omitempty"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ReopenedBy   *string    `json:"reopenedBy,omitempty"`
	ReopenedAt   *time.Time `json:"reopenedAt,omitempty"`
	ReopenReason *string    `json:"reopenReason,omitempty"`
}

// ToPeriodResponse converts domain.FiscalPeriod to DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		CompanyID:    p.CompanyID,
		Name:         p.Name,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Closed:       p.Closed,
		ClosedBy:     p.ClosedBy,
		ClosedAt:     p.ClosedAt,
		ReopenedBy:   p.ReopenedBy,
		ReopenedAt:   p.ReopenedAt,
		ReopenReason: p.ReopenReason,
	}
}

// ListPeriodsResponse wraps a list of periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToListPeriodsResponse converts a slice of domain.FiscalPeriod to DTO.
func ToListPeriodsResponse(ps []domain.FiscalPeriod) ListPeriodsResponse {
	list := make([]PeriodResponse, len(ps))
	for i, p := range ps {
		list[i] = ToPeriodResponse(&p)
	}
	return ListPeriodsResponse{Periods: list}
}
