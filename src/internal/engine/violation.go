package engine

// Violation names a transaction rule that rejected a request.
type Violation string

const (
	ViolationNegativeWithdrawal     Violation = "negativeWithdrawal"
	ViolationSingleTransactionLimit Violation = "singleTransactionLimit"
	ViolationModuloFiveBills        Violation = "moduloFiveBills"
	ViolationDailyWithdrawAmount    Violation = "dailyWithdrawAmount"
	ViolationCheckingWithdrawLimit  Violation = "checkingWithdrawLimit"
	ViolationCreditWithdrawLimit    Violation = "creditWithdrawLimit"
	ViolationNegativeDeposit        Violation = "negativeDeposit"
	ViolationDepositLimit           Violation = "depositLimit"
	ViolationCreditDepositLimit     Violation = "creditDepositLimit"
)

// Violations keeps rules in evaluation order.
type Violations []Violation

func (v Violations) Contains(target Violation) bool {
	for _, violation := range v {
		if violation == target {
			return true
		}
	}
	return false
}

func (v Violations) Strings() []string {
	out := make([]string, 0, len(v))
	for _, violation := range v {
		out = append(out, string(violation))
	}
	return out
}
