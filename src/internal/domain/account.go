package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeCredit   AccountType = "credit"
)

func (t AccountType) Valid() bool {
	return t == AccountTypeChecking || t == AccountTypeCredit
}

// Account is a point-in-time snapshot of a stored account row.
// WithdrawnToday applies to WithdrawnDay only; an empty WithdrawnDay means
// the account has never withdrawn.
type Account struct {
	AccountNumber  string
	Type           AccountType
	Balance        decimal.Decimal
	CreditLimit    decimal.Decimal
	WithdrawnToday decimal.Decimal
	WithdrawnDay   Day
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SameState reports whether both snapshots carry the same mutable fields.
// Timestamps are ignored.
func (a Account) SameState(other Account) bool {
	return a.AccountNumber == other.AccountNumber &&
		a.Type == other.Type &&
		a.Balance.Equal(other.Balance) &&
		a.CreditLimit.Equal(other.CreditLimit) &&
		a.WithdrawnToday.Equal(other.WithdrawnToday) &&
		a.WithdrawnDay == other.WithdrawnDay
}
