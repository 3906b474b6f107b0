package models

import (
	"time"

	"github.com/api-sage/account-transaction-engine/src/internal/domain"
)

type AccountResponse struct {
	AccountNumber  string `json:"accountNumber"`
	AccountType    string `json:"accountType"`
	Balance        string `json:"balance"`
	CreditLimit    string `json:"creditLimit"`
	WithdrawnToday string `json:"withdrawnToday"`
	WithdrawnDay   string `json:"withdrawnDay,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	response := AccountResponse{
		AccountNumber:  account.AccountNumber,
		AccountType:    string(account.Type),
		Balance:        account.Balance.StringFixed(2),
		CreditLimit:    account.CreditLimit.StringFixed(2),
		WithdrawnToday: account.WithdrawnToday.StringFixed(2),
		WithdrawnDay:   account.WithdrawnDay.String(),
	}
	if !account.UpdatedAt.IsZero() {
		response.UpdatedAt = account.UpdatedAt.Format(time.RFC3339)
	}
	return response
}
