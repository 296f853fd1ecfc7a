package accounting

import (
	"testing"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(side domain.EntrySide, amount int64) domain.EntryLine {
	return domain.EntryLine{
		AccountID: "acc-1",
		Side:      side,
		Amount:    decimal.NewFromInt(amount),
	}
}

func TestSumSides(t *testing.T) {
	lines := []domain.EntryLine{
		line(domain.Debe, 1000),
		line(domain.Debe, 500),
		line(domain.Haber, 1500),
	}

	debe, haber := SumSides(lines)
	assert.True(t, decimal.NewFromInt(1500).Equal(debe), "debe should sum both debit lines")
	assert.True(t, decimal.NewFromInt(1500).Equal(haber), "haber should sum the credit line")

	debe, haber = SumSides(nil)
	assert.True(t, debe.IsZero())
	assert.True(t, haber.IsZero())
}

func TestIsBalanced(t *testing.T) {
	// Exactly balanced
	assert.True(t, IsBalanced([]domain.EntryLine{
		line(domain.Debe, 1000),
		line(domain.Haber, 1000),
	}))

	// Off by one unit: still inside tolerance
	assert.True(t, IsBalanced([]domain.EntryLine{
		line(domain.Debe, 1000),
		line(domain.Haber, 999),
	}))
	assert.True(t, IsBalanced([]domain.EntryLine{
		line(domain.Debe, 999),
		line(domain.Haber, 1000),
	}))

	// Off by two units: out of tolerance
	assert.False(t, IsBalanced([]domain.EntryLine{
		line(domain.Debe, 1000),
		line(domain.Haber, 998),
	}))

	// The tolerance is absolute, not relative: large entries get no extra slack.
	assert.False(t, IsBalanced([]domain.EntryLine{
		line(domain.Debe, 1_000_000_000),
		line(domain.Haber, 999_999_998),
	}))
}

func TestBalanceDifference(t *testing.T) {
	diff := BalanceDifference([]domain.EntryLine{
		line(domain.Debe, 700),
		line(domain.Haber, 1000),
	})
	assert.True(t, decimal.NewFromInt(-300).Equal(diff))
}

func TestValidateLines(t *testing.T) {
	valid := []domain.EntryLine{
		line(domain.Debe, 100),
		line(domain.Haber, 100),
	}
	assert.NoError(t, ValidateLines(valid))

	missingAccount := []domain.EntryLine{{Side: domain.Debe, Amount: decimal.NewFromInt(100)}}
	err := ValidateLines(missingAccount)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "account is required")

	badSide := []domain.EntryLine{{AccountID: "acc-1", Side: "SIDEWAYS", Amount: decimal.NewFromInt(100)}}
	err = ValidateLines(badSide)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "side must be")

	zeroAmount := []domain.EntryLine{line(domain.Debe, 0)}
	err = ValidateLines(zeroAmount)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be positive")

	negativeAmount := []domain.EntryLine{{AccountID: "acc-1", Side: domain.Haber, Amount: decimal.NewFromInt(-5)}}
	assert.Error(t, ValidateLines(negativeAmount))
}
