package accounting

import (
	"fmt"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the absolute amount by which an entry's debit and
// credit sums may differ and still be considered balanced. The base currency
// has no subunit in practice, so one whole unit absorbs rounding introduced
// by caller-side formatting. The engine's own arithmetic is exact decimal.
var BalanceTolerance = decimal.NewFromInt(1)

// SumSides returns the total debe and haber amounts across the given lines.
func SumSides(lines []domain.EntryLine) (debe, haber decimal.Decimal) {
	debe, haber = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if line.Side == domain.Debe {
			debe = debe.Add(line.Amount)
		} else {
			haber = haber.Add(line.Amount)
		}
	}
	return debe, haber
}

// BalanceDifference returns sum(debe) minus sum(haber) for the given lines.
func BalanceDifference(lines []domain.EntryLine) decimal.Decimal {
	debe, haber := SumSides(lines)
	return debe.Sub(haber)
}

// IsBalanced reports whether the lines balance within BalanceTolerance.
// It is shared between interactive draft checks and the authoritative
// confirmation check so the two can never diverge.
func IsBalanced(lines []domain.EntryLine) bool {
	return BalanceDifference(lines).Abs().LessThanOrEqual(BalanceTolerance)
}

// ValidateLines checks the per-line invariants that hold even for drafts:
// every line names an account, carries a known side, and a positive amount.
func ValidateLines(lines []domain.EntryLine) error {
	for i, line := range lines {
		if line.AccountID == "" {
			return fmt.Errorf("line %d: account is required", i+1)
		}
		if line.Side != domain.Debe && line.Side != domain.Haber {
			return fmt.Errorf("line %d: side must be %s or %s", i+1, domain.Debe, domain.Haber)
		}
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line %d: amount must be positive, got %s", i+1, line.Amount.String())
		}
	}
	return nil
}
