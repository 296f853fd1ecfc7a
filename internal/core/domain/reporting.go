package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiarioRow is a single line of the Libro Diario: one entry line of a
// confirmed entry, in (date, entry number, line no) order.
type DiarioRow struct {
	EntryDate   time.Time       `json:"entryDate"`
	EntryNumber int64           `json:"entryNumber"`
	EntryID     string          `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description"`
	Debe        decimal.Decimal `json:"debe"`
	Haber       decimal.Decimal `json:"haber"`
}

// MayorMovement is one movement of an account in the Libro Mayor, with the
// running balance after applying it.
type MayorMovement struct {
	EntryDate   time.Time       `json:"entryDate"`
	EntryNumber int64           `json:"entryNumber"`
	Description string          `json:"description"`
	Debe        decimal.Decimal `json:"debe"`
	Haber       decimal.Decimal `json:"haber"`
	Saldo       decimal.Decimal `json:"saldo"` // Running debe-minus-haber balance
}

// MayorAccount is the Libro Mayor section for one account. The running
// balance convention is fixed (debe minus haber) regardless of the account's
// normal side; callers interpret the sign per account type.
type MayorAccount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Movements   []MayorMovement `json:"movements"`
	SaldoFinal  decimal.Decimal `json:"saldoFinal"`
}

// BalanceRow is one account's line in the Balance de Sumas y Saldos.
// At most one of SaldoDeudor/SaldoAcreedor is non-zero.
type BalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	TotalDebe     decimal.Decimal `json:"totalDebe"`
	TotalHaber    decimal.Decimal `json:"totalHaber"`
	SaldoDeudor   decimal.Decimal `json:"saldoDeudor"`
	SaldoAcreedor decimal.Decimal `json:"saldoAcreedor"`
}

// BalanceReport is the full trial balance with its closing totals.
// Consistent restates the per-entry balance invariant across the whole
// ledger; a false value means confirmed entries need re-auditing.
type BalanceReport struct {
	Rows               []BalanceRow    `json:"rows"`
	TotalDebe          decimal.Decimal `json:"totalDebe"`
	TotalHaber         decimal.Decimal `json:"totalHaber"`
	TotalSaldoDeudor   decimal.Decimal `json:"totalSaldoDeudor"`
	TotalSaldoAcreedor decimal.Decimal `json:"totalSaldoAcreedor"`
	Consistent         bool            `json:"consistent"`
}
