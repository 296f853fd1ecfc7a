package models

import "time"

// FiscalPeriod is the fiscal_periods row as persisted.
type FiscalPeriod struct {
	PeriodID     string     `json:"periodID"`
	CompanyID    string     `json:"companyID"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Closed       bool       `json:"closed"`
	ClosedBy     *string    `json:"closedBy"`
	ClosedAt     *time.Time `json:"closedAt"`
	ReopenedBy   *string    `json:"reopenedBy"`
	ReopenedAt   *time.Time `json:"reopenedAt"`
	ReopenReason *string    `json:"reopenReason"`
	AuditFields
}
