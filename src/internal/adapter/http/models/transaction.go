package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionRequest struct {
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
}

// Validate only checks the request shape. Sign and size of the amount are
// transaction rules and are reported as violations instead.
func (r TransactionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	} else if !parsed.Equal(parsed.Truncate(2)) {
		errs = append(errs, "amount must have at most 2 decimal places")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// ParsedAmount returns the amount; call Validate first.
func (r TransactionRequest) ParsedAmount() decimal.Decimal {
	amount, _ := decimal.NewFromString(strings.TrimSpace(r.Amount))
	return amount
}

type TransactionResponse struct {
	Kind       string          `json:"kind"`
	Amount     string          `json:"amount"`
	Accepted   bool            `json:"accepted"`
	Violations []string        `json:"violations,omitempty"`
	Account    AccountResponse `json:"account"`
}
