package domain

import "time"

// FiscalPeriod is the postable-date window for a company. Entries may only be
// created or confirmed with a date inside an open period.
type FiscalPeriod struct {
	PeriodID  string    `json:"periodID"` // Primary Key (UUID)
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"` // e.g. "Ejercicio 2025", "Enero 2025"
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Closed    bool      `json:"closed"`
	ClosedBy  *string   `json:"closedBy,omitempty"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	// Reopening is a distinct audited transition, not an undo of closing.
	ReopenedBy   *string    `json:"reopenedBy,omitempty"`
	ReopenedAt   *time.Time `json:"reopenedAt,omitempty"`
	ReopenReason *string    `json:"reopenReason,omitempty"`
	AuditFields
}

// Overlaps reports whether the two period date ranges intersect.
func (p FiscalPeriod) Overlaps(other FiscalPeriod) bool {
	return !p.StartDate.After(other.EndDate) && !other.StartDate.After(p.EndDate)
}
