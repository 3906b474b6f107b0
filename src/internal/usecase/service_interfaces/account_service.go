package service_interfaces

import (
	"context"

	"github.com/api-sage/account-transaction-engine/src/internal/adapter/http/models"
	"github.com/api-sage/account-transaction-engine/src/internal/commons"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	DepositFunds(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
	WithdrawFunds(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
}
