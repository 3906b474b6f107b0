// Package engine decides whether a deposit or withdrawal is admissible for an
// account snapshot and builds the snapshot that should be persisted.
//
// The engine performs no I/O and keeps no state besides its limits, so one
// Engine may be shared by any number of goroutines.
package engine

import (
	"fmt"

	"github.com/api-sage/account-transaction-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Result holds the account to return to the caller. When Violations is
// non-empty Account is the unmodified input snapshot.
type Result struct {
	Account    domain.Account
	Violations Violations
}

func (r Result) Accepted() bool {
	return len(r.Violations) == 0
}

type Engine struct {
	limits Limits
}

func New(limits Limits) *Engine {
	return &Engine{limits: limits}
}

func (e *Engine) Limits() Limits {
	return e.limits
}

func (e *Engine) Apply(account domain.Account, kind Kind, amount decimal.Decimal, today domain.Day) (Result, error) {
	switch kind {
	case KindDeposit:
		return e.Deposit(account, amount), nil
	case KindWithdrawal:
		return e.Withdraw(account, amount, today), nil
	default:
		return Result{Account: account}, fmt.Errorf("unsupported transaction kind %q", kind)
	}
}

// Rollover resets the daily withdrawal counter when today is a different
// calendar day from the one the counter was recorded on.
func Rollover(account domain.Account, today domain.Day) domain.Account {
	if account.WithdrawnDay == today && !account.WithdrawnDay.IsZero() {
		return account
	}
	account.WithdrawnToday = decimal.Zero
	account.WithdrawnDay = today
	return account
}

func (e *Engine) Withdraw(account domain.Account, amount decimal.Decimal, today domain.Day) Result {
	rolled := Rollover(account, today)
	projected := rolled.WithdrawnToday.Add(amount)

	var violations Violations
	if amount.LessThanOrEqual(decimal.Zero) {
		violations = append(violations, ViolationNegativeWithdrawal)
	}
	if amount.GreaterThan(e.limits.SingleWithdrawal) {
		violations = append(violations, ViolationSingleTransactionLimit)
	}
	if !amount.Mod(e.limits.BillDenomination).IsZero() {
		violations = append(violations, ViolationModuloFiveBills)
	}
	if projected.GreaterThan(e.limits.DailyWithdrawal) {
		violations = append(violations, ViolationDailyWithdrawAmount)
	}

	switch account.Type {
	case domain.AccountTypeChecking:
		if amount.GreaterThan(account.Balance) {
			violations = append(violations, ViolationCheckingWithdrawLimit)
		}
	case domain.AccountTypeCredit:
		// Only an account that is already borrowing is capped by its limit.
		if account.Balance.IsNegative() {
			available := account.CreditLimit.Add(account.Balance)
			if amount.GreaterThan(available) {
				violations = append(violations, ViolationCreditWithdrawLimit)
			}
		}
	}

	if len(violations) > 0 {
		return Result{Account: account, Violations: violations}
	}

	next := rolled
	next.WithdrawnToday = projected
	next.Balance = account.Balance.Sub(amount)
	return Result{Account: next}
}

func (e *Engine) Deposit(account domain.Account, amount decimal.Decimal) Result {
	var violations Violations
	if amount.LessThanOrEqual(decimal.Zero) {
		violations = append(violations, ViolationNegativeDeposit)
	}
	if amount.GreaterThan(e.limits.SingleDeposit) {
		violations = append(violations, ViolationDepositLimit)
	}
	if account.Type == domain.AccountTypeCredit && account.Balance.Add(amount).IsPositive() {
		violations = append(violations, ViolationCreditDepositLimit)
	}

	if len(violations) > 0 {
		return Result{Account: account, Violations: violations}
	}

	next := account
	next.Balance = account.Balance.Add(amount)
	return Result{Account: next}
}
