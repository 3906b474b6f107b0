package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/account-transaction-engine/src/internal/adapter/http/models"
	"github.com/api-sage/account-transaction-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-transaction-engine/src/internal/commons"
	"github.com/api-sage/account-transaction-engine/src/internal/domain"
	"github.com/api-sage/account-transaction-engine/src/internal/engine"
	"github.com/api-sage/account-transaction-engine/src/internal/logger"
	"github.com/api-sage/account-transaction-engine/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	engine      *engine.Engine
	locks       *accountLocker
	location    *time.Location
	maxAttempts int
	now         func() time.Time
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	eng *engine.Engine,
	location *time.Location,
	maxAttempts int,
) *AccountService {
	if eng == nil {
		eng = engine.New(engine.DefaultLimits())
	}
	if location == nil {
		location = time.UTC
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &AccountService{
		accountRepo: accountRepo,
		engine:      eng,
		locks:       newAccountLocker(),
		location:    location,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// WithClock replaces the time source used to pick the withdrawal day.
func (s *AccountService) WithClock(now func() time.Time) *AccountService {
	s.now = now
	return s
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service get account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return commons.ErrorResponse[models.AccountResponse](commons.MessageValidationFailed, "accountNumber is required"), fmt.Errorf("accountNumber is required")
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse](commons.MessageAccountNotFound), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	logger.Info("account service get account success", logger.Fields{
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("account fetched successfully", models.NewAccountResponse(account)), nil
}

func (s *AccountService) DepositFunds(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error) {
	return s.transact(ctx, engine.KindDeposit, req)
}

func (s *AccountService) WithdrawFunds(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error) {
	return s.transact(ctx, engine.KindWithdrawal, req)
}

// transact runs load, decide and save for one account while holding that
// account's lock. A save that loses a race with another process is retried
// from a fresh load.
func (s *AccountService) transact(ctx context.Context, kind engine.Kind, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("account service "+string(kind)+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service "+string(kind)+" validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse](commons.MessageValidationFailed, err.Error()), err
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	amount := req.ParsedAmount()

	unlock := s.locks.Lock(accountNumber)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return commons.ErrorResponse[models.TransactionResponse](commons.MessageProcessingFailed, commons.MessageUnableToProcessNow), err
		}

		response, err := s.attempt(ctx, kind, accountNumber, amount)
		if err == nil || !errors.Is(err, domain.ErrConcurrentUpdate) {
			return response, err
		}

		lastErr = err
		logger.Warn("account service "+string(kind)+" concurrent update, retrying", err, logger.Fields{
			"accountNumber": accountNumber,
			"attempt":       attempt,
			"maxAttempts":   s.maxAttempts,
		})
	}

	logger.Error("account service "+string(kind)+" retries exhausted", lastErr, logger.Fields{
		"accountNumber": accountNumber,
		"maxAttempts":   s.maxAttempts,
	})
	return commons.ErrorResponse[models.TransactionResponse](commons.MessageConcurrentUpdate, "Please retry the transaction"), lastErr
}

func (s *AccountService) attempt(ctx context.Context, kind engine.Kind, accountNumber string, amount decimal.Decimal) (commons.Response[models.TransactionResponse], error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("account service "+string(kind)+" load account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse](commons.MessageAccountNotFound), err
		}
		return commons.ErrorResponse[models.TransactionResponse](commons.MessageProcessingFailed, commons.MessageUnableToProcessNow), err
	}

	today := domain.DayOf(s.now(), s.location)
	result, err := s.engine.Apply(account, kind, amount, today)
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.MessageProcessingFailed, err.Error()), err
	}

	if !result.Accepted() {
		logger.Info("account service "+string(kind)+" rejected", logger.Fields{
			"accountNumber": accountNumber,
			"amount":        amount.String(),
			"violations":    result.Violations.Strings(),
		})
		response := transactionResponse(kind, amount, result)
		return commons.RejectedResponse(commons.MessageRejected, response, result.Violations.Strings()...), nil
	}

	switch kind {
	case engine.KindWithdrawal:
		err = s.accountRepo.SaveWithdrawal(ctx, account, result.Account)
	default:
		err = s.accountRepo.SaveDeposit(ctx, account, result.Account)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			return commons.Response[models.TransactionResponse]{}, err
		}
		logger.Error("account service "+string(kind)+" save failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrPersistenceInconsistency) {
			return commons.ErrorResponse[models.TransactionResponse](commons.MessageTransactionFailed, "Account could not be updated"), err
		}
		return commons.ErrorResponse[models.TransactionResponse](commons.MessageProcessingFailed, commons.MessageUnableToProcessNow), err
	}

	response := transactionResponse(kind, amount, result)
	logger.Info("account service "+string(kind)+" success", logger.Fields{
		"accountNumber":  accountNumber,
		"amount":         response.Amount,
		"balance":        response.Account.Balance,
		"withdrawnToday": response.Account.WithdrawnToday,
	})

	return commons.SuccessResponse(string(kind)+" successful", response), nil
}

func transactionResponse(kind engine.Kind, amount decimal.Decimal, result engine.Result) models.TransactionResponse {
	return models.TransactionResponse{
		Kind:       string(kind),
		Amount:     amount.String(),
		Accepted:   result.Accepted(),
		Violations: result.Violations.Strings(),
		Account:    models.NewAccountResponse(result.Account),
	}
}
