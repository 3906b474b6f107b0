package engine

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Limits struct {
	SingleWithdrawal decimal.Decimal
	DailyWithdrawal  decimal.Decimal
	BillDenomination decimal.Decimal
	SingleDeposit    decimal.Decimal
}

func DefaultLimits() Limits {
	return Limits{
		SingleWithdrawal: decimal.NewFromInt(200),
		DailyWithdrawal:  decimal.NewFromInt(400),
		BillDenomination: decimal.NewFromInt(5),
		SingleDeposit:    decimal.NewFromInt(1000),
	}
}

func (l Limits) Validate() error {
	var errs []string

	if !l.SingleWithdrawal.IsPositive() {
		errs = append(errs, "single withdrawal limit must be greater than zero")
	}
	if !l.DailyWithdrawal.IsPositive() {
		errs = append(errs, "daily withdrawal limit must be greater than zero")
	}
	if !l.BillDenomination.IsPositive() {
		errs = append(errs, "bill denomination must be greater than zero")
	}
	if !l.SingleDeposit.IsPositive() {
		errs = append(errs, "single deposit limit must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}
