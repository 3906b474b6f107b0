package engine_test

import (
	"testing"

	"github.com/api-sage/account-transaction-engine/src/internal/domain"
	"github.com/api-sage/account-transaction-engine/src/internal/engine"
	"github.com/shopspring/decimal"
)

const (
	yesterday domain.Day = "2026-10-13"
	today     domain.Day = "2026-10-14"
	tomorrow  domain.Day = "2026-10-15"
)

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("failed to parse decimal %q: %v", raw, err)
	}
	return d
}

func checking(balance string) domain.Account {
	return domain.Account{
		AccountNumber:  "1000000001",
		Type:           domain.AccountTypeChecking,
		Balance:        decimal.RequireFromString(balance),
		WithdrawnToday: decimal.Zero,
	}
}

func credit(balance, limit string) domain.Account {
	return domain.Account{
		AccountNumber:  "2000000001",
		Type:           domain.AccountTypeCredit,
		Balance:        decimal.RequireFromString(balance),
		CreditLimit:    decimal.RequireFromString(limit),
		WithdrawnToday: decimal.Zero,
	}
}

func assertViolations(t *testing.T, got engine.Violations, want ...engine.Violation) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected violations %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected violations %v, got %v", want, got)
		}
	}
}

func TestWithdrawCheckingAccepted(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())

	res := eng.Withdraw(checking("100"), dec(t, "50"), today)
	if !res.Accepted() {
		t.Fatalf("expected withdrawal to be accepted, got %v", res.Violations)
	}
	if !res.Account.Balance.Equal(dec(t, "50")) {
		t.Fatalf("expected balance 50, got %s", res.Account.Balance)
	}
	if !res.Account.WithdrawnToday.Equal(dec(t, "50")) {
		t.Fatalf("expected withdrawnToday 50, got %s", res.Account.WithdrawnToday)
	}
	if res.Account.WithdrawnDay != today {
		t.Fatalf("expected withdrawnDay %s, got %s", today, res.Account.WithdrawnDay)
	}
}

func TestWithdrawCheckingOverBalanceRejected(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := checking("100")

	res := eng.Withdraw(account, dec(t, "150"), today)
	assertViolations(t, res.Violations, engine.ViolationCheckingWithdrawLimit)
	if !res.Account.SameState(account) {
		t.Fatalf("expected unchanged account, got %+v", res.Account)
	}
}

func TestWithdrawNotMultipleOfFive(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())

	res := eng.Withdraw(checking("100"), dec(t, "23"), today)
	assertViolations(t, res.Violations, engine.ViolationModuloFiveBills)
}

func TestWithdrawReportsEveryViolation(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())

	tests := []struct {
		name   string
		amount string
		want   []engine.Violation
	}{
		{
			name:   "negative and not a multiple of five",
			amount: "-3",
			want:   []engine.Violation{engine.ViolationNegativeWithdrawal, engine.ViolationModuloFiveBills},
		},
		{
			name:   "over cap, not a multiple of five and over balance",
			amount: "203",
			want: []engine.Violation{
				engine.ViolationSingleTransactionLimit,
				engine.ViolationModuloFiveBills,
				engine.ViolationCheckingWithdrawLimit,
			},
		},
		{
			name:   "zero",
			amount: "0",
			want:   []engine.Violation{engine.ViolationNegativeWithdrawal},
		},
		{
			name:   "fractional",
			amount: "12.50",
			want:   []engine.Violation{engine.ViolationModuloFiveBills},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := eng.Withdraw(checking("150"), dec(t, tc.amount), today)
			assertViolations(t, res.Violations, tc.want...)
		})
	}
}

func TestWithdrawDailyLimit(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := checking("1000")
	account.WithdrawnToday = dec(t, "380")
	account.WithdrawnDay = today

	res := eng.Withdraw(account, dec(t, "25"), today)
	assertViolations(t, res.Violations, engine.ViolationDailyWithdrawAmount)
	if !res.Account.SameState(account) {
		t.Fatalf("expected unchanged account, got %+v", res.Account)
	}

	res = eng.Withdraw(account, dec(t, "20"), today)
	if !res.Accepted() {
		t.Fatalf("expected withdrawal up to the daily limit to be accepted, got %v", res.Violations)
	}
	if !res.Account.WithdrawnToday.Equal(dec(t, "400")) {
		t.Fatalf("expected withdrawnToday 400, got %s", res.Account.WithdrawnToday)
	}
}

func TestWithdrawRolloverFromPreviousDay(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := checking("1000")
	account.WithdrawnToday = dec(t, "380")
	account.WithdrawnDay = yesterday

	res := eng.Withdraw(account, dec(t, "50"), today)
	if !res.Accepted() {
		t.Fatalf("expected withdrawal after rollover to be accepted, got %v", res.Violations)
	}
	if !res.Account.WithdrawnToday.Equal(dec(t, "50")) {
		t.Fatalf("expected withdrawnToday 50, got %s", res.Account.WithdrawnToday)
	}
	if res.Account.WithdrawnDay != today {
		t.Fatalf("expected withdrawnDay %s, got %s", today, res.Account.WithdrawnDay)
	}
}

func TestWithdrawRejectedDiscardsRollover(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := checking("10")
	account.WithdrawnToday = dec(t, "380")
	account.WithdrawnDay = yesterday

	res := eng.Withdraw(account, dec(t, "50"), today)
	assertViolations(t, res.Violations, engine.ViolationCheckingWithdrawLimit)
	if res.Account.WithdrawnDay != yesterday || !res.Account.WithdrawnToday.Equal(dec(t, "380")) {
		t.Fatalf("expected rollover to be discarded, got %+v", res.Account)
	}
}

func TestWithdrawFirstEverWithdrawal(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())

	res := eng.Withdraw(checking("500"), dec(t, "200"), today)
	if !res.Accepted() {
		t.Fatalf("expected first withdrawal to be accepted, got %v", res.Violations)
	}
	if res.Account.WithdrawnDay != today {
		t.Fatalf("expected withdrawnDay %s, got %q", today, res.Account.WithdrawnDay)
	}
}

func TestWithdrawCreditWithinAvailable(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := credit("-50", "500")

	res := eng.Withdraw(account, dec(t, "200"), today)
	if !res.Accepted() {
		t.Fatalf("expected credit withdrawal to be accepted, got %v", res.Violations)
	}
	if !res.Account.Balance.Equal(dec(t, "-250")) {
		t.Fatalf("expected balance -250, got %s", res.Account.Balance)
	}
}

func TestWithdrawCreditAvailableIsCheckedAgainstLimit(t *testing.T) {
	limits := engine.DefaultLimits()
	limits.SingleWithdrawal = decimal.NewFromInt(1000)
	eng := engine.New(limits)

	res := eng.Withdraw(credit("-50", "500"), dec(t, "400"), today)
	if !res.Accepted() {
		t.Fatalf("expected withdrawal of 400 against 450 available to be accepted, got %v", res.Violations)
	}
	if !res.Account.Balance.Equal(dec(t, "-450")) {
		t.Fatalf("expected balance -450, got %s", res.Account.Balance)
	}

	res = eng.Withdraw(credit("-480", "500"), dec(t, "25"), today)
	assertViolations(t, res.Violations, engine.ViolationCreditWithdrawLimit)
}

func TestWithdrawCreditNonNegativeBalanceHasNoCreditCap(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())

	res := eng.Withdraw(credit("0", "100"), dec(t, "150"), today)
	if !res.Accepted() {
		t.Fatalf("expected withdrawal from non-negative credit balance to be accepted, got %v", res.Violations)
	}
	if !res.Account.Balance.Equal(dec(t, "-150")) {
		t.Fatalf("expected balance -150, got %s", res.Account.Balance)
	}
}

func TestDepositChecking(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := checking("100.25")
	account.WithdrawnToday = dec(t, "40")
	account.WithdrawnDay = yesterday

	res := eng.Deposit(account, dec(t, "999.75"))
	if !res.Accepted() {
		t.Fatalf("expected deposit to be accepted, got %v", res.Violations)
	}
	if !res.Account.Balance.Equal(dec(t, "1100")) {
		t.Fatalf("expected balance 1100, got %s", res.Account.Balance)
	}
	if res.Account.WithdrawnDay != yesterday || !res.Account.WithdrawnToday.Equal(dec(t, "40")) {
		t.Fatalf("expected deposit to leave withdrawal counters untouched, got %+v", res.Account)
	}
}

func TestDepositViolations(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())

	res := eng.Deposit(checking("0"), dec(t, "-1"))
	assertViolations(t, res.Violations, engine.ViolationNegativeDeposit)

	res = eng.Deposit(checking("0"), dec(t, "1000.01"))
	assertViolations(t, res.Violations, engine.ViolationDepositLimit)

	res = eng.Deposit(credit("-2000", "5000"), dec(t, "1500"))
	assertViolations(t, res.Violations, engine.ViolationDepositLimit)
}

func TestDepositCreditPayoff(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := credit("-50", "500")

	res := eng.Deposit(account, dec(t, "40"))
	if !res.Accepted() {
		t.Fatalf("expected payment to be accepted, got %v", res.Violations)
	}
	if !res.Account.Balance.Equal(dec(t, "-10")) {
		t.Fatalf("expected balance -10, got %s", res.Account.Balance)
	}

	res = eng.Deposit(account, dec(t, "60"))
	assertViolations(t, res.Violations, engine.ViolationCreditDepositLimit)
	if !res.Account.SameState(account) {
		t.Fatalf("expected unchanged account, got %+v", res.Account)
	}

	res = eng.Deposit(account, dec(t, "50"))
	if !res.Accepted() || !res.Account.Balance.IsZero() {
		t.Fatalf("expected payment to zero to be accepted, got %v balance %s", res.Violations, res.Account.Balance)
	}
}

func TestRejectionIsIdempotent(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := checking("100")
	account.WithdrawnToday = dec(t, "15")
	account.WithdrawnDay = yesterday

	current := account
	for i := 0; i < 3; i++ {
		current = eng.Withdraw(current, dec(t, "7"), today).Account
		current = eng.Deposit(current, dec(t, "5000")).Account
	}
	if !current.SameState(account) {
		t.Fatalf("expected repeated rejections to leave account unchanged, got %+v", current)
	}
}

func TestDailyCounterSumsAcceptedWithdrawals(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())
	account := checking("1000")

	accepted := decimal.Zero
	for _, raw := range []string{"100", "150", "95", "60", "50", "5"} {
		amount := dec(t, raw)
		res := eng.Withdraw(account, amount, today)
		if res.Accepted() {
			accepted = accepted.Add(amount)
		}
		account = res.Account
		if account.WithdrawnToday.GreaterThan(decimal.NewFromInt(400)) {
			t.Fatalf("withdrawnToday exceeded daily limit: %s", account.WithdrawnToday)
		}
	}

	if !account.WithdrawnToday.Equal(accepted) {
		t.Fatalf("expected withdrawnToday %s, got %s", accepted, account.WithdrawnToday)
	}
	if !account.Balance.Equal(decimal.NewFromInt(1000).Sub(accepted)) {
		t.Fatalf("expected balance %s, got %s", decimal.NewFromInt(1000).Sub(accepted), account.Balance)
	}

	res := eng.Withdraw(account, dec(t, "100"), tomorrow)
	if !res.Accepted() || !res.Account.WithdrawnToday.Equal(dec(t, "100")) {
		t.Fatalf("expected next day to start a fresh counter, got %v %s", res.Violations, res.Account.WithdrawnToday)
	}
}

func TestApplyDispatchesByKind(t *testing.T) {
	eng := engine.New(engine.DefaultLimits())

	res, err := eng.Apply(checking("100"), engine.KindDeposit, dec(t, "10"), today)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.Account.Balance.Equal(dec(t, "110")) {
		t.Fatalf("expected balance 110, got %s", res.Account.Balance)
	}

	res, err = eng.Apply(checking("100"), engine.KindWithdrawal, dec(t, "10"), today)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.Account.Balance.Equal(dec(t, "90")) {
		t.Fatalf("expected balance 90, got %s", res.Account.Balance)
	}

	if _, err := eng.Apply(checking("100"), engine.Kind("transfer"), dec(t, "10"), today); err == nil {
		t.Fatal("expected error for unsupported kind")
	}
}

func TestRollover(t *testing.T) {
	account := checking("100")
	account.WithdrawnToday = dec(t, "45")
	account.WithdrawnDay = today

	if got := engine.Rollover(account, today); !got.SameState(account) {
		t.Fatalf("expected same-day rollover to be a no-op, got %+v", got)
	}

	got := engine.Rollover(account, tomorrow)
	if !got.WithdrawnToday.IsZero() || got.WithdrawnDay != tomorrow {
		t.Fatalf("expected counter reset on new day, got %+v", got)
	}
	if !account.WithdrawnToday.Equal(dec(t, "45")) {
		t.Fatal("expected rollover to leave the input snapshot untouched")
	}
}
