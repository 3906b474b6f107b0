package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/account-transaction-engine/src/internal/domain"
	"github.com/api-sage/account-transaction-engine/src/internal/logger"
	"github.com/lib/pq"
)

// Postgres error codes that mean the update lost a race with another writer.
const (
	pqSerializationFailure pq.ErrorCode = "40001"
	pqDeadlockDetected     pq.ErrorCode = "40P01"
	pqLockNotAvailable     pq.ErrorCode = "55P03"
)

// withdrawn_day is formatted explicitly so the result does not depend on the
// session DateStyle.
const getAccountQuery = `
SELECT account_number, account_type, balance, credit_limit, withdrawn_today, to_char(withdrawn_day, 'YYYY-MM-DD'), created_at, updated_at
FROM accounts
WHERE account_number = $1`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	logger.Info("account repository get by account number", logger.Fields{
		"accountNumber": accountNumber,
	})

	var (
		account      domain.Account
		withdrawnDay sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, getAccountQuery, accountNumber).Scan(
		&account.AccountNumber,
		&account.Type,
		&account.Balance,
		&account.CreditLimit,
		&account.WithdrawnToday,
		&withdrawnDay,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}

	if withdrawnDay.Valid {
		day, err := domain.ParseDay(withdrawnDay.String)
		if err != nil {
			return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
		}
		account.WithdrawnDay = day
	}

	logger.Info("account repository get success", logger.Fields{
		"accountNumber": account.AccountNumber,
		"accountType":   account.Type,
	})

	return account, nil
}

func (r *AccountRepository) SaveWithdrawal(ctx context.Context, previous domain.Account, next domain.Account) error {
	logger.Info("account repository save withdrawal", logger.Fields{
		"accountNumber":  next.AccountNumber,
		"balance":        next.Balance.String(),
		"withdrawnToday": next.WithdrawnToday.String(),
		"withdrawnDay":   next.WithdrawnDay.String(),
	})

	const query = `
UPDATE accounts
SET balance = $2::numeric,
    withdrawn_today = $3::numeric,
    withdrawn_day = $4::date,
    updated_at = NOW()
WHERE account_number = $1
  AND balance = $5::numeric
  AND withdrawn_today = $6::numeric
  AND withdrawn_day IS NOT DISTINCT FROM $7::date`

	result, err := r.db.ExecContext(
		ctx,
		query,
		next.AccountNumber,
		next.Balance,
		next.WithdrawnToday,
		nullDay(next.WithdrawnDay),
		previous.Balance,
		previous.WithdrawnToday,
		nullDay(previous.WithdrawnDay),
	)
	if err != nil {
		logger.Error("account repository save withdrawal failed", err, logger.Fields{
			"accountNumber": next.AccountNumber,
		})
		return fmt.Errorf("save withdrawal: %w", classifyWriteError(err))
	}

	return r.checkSingleRow(ctx, result, next.AccountNumber, "save withdrawal")
}

func (r *AccountRepository) SaveDeposit(ctx context.Context, previous domain.Account, next domain.Account) error {
	logger.Info("account repository save deposit", logger.Fields{
		"accountNumber": next.AccountNumber,
		"balance":       next.Balance.String(),
	})

	const query = `
UPDATE accounts
SET balance = $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND balance = $3::numeric`

	result, err := r.db.ExecContext(ctx, query, next.AccountNumber, next.Balance, previous.Balance)
	if err != nil {
		logger.Error("account repository save deposit failed", err, logger.Fields{
			"accountNumber": next.AccountNumber,
		})
		return fmt.Errorf("save deposit: %w", classifyWriteError(err))
	}

	return r.checkSingleRow(ctx, result, next.AccountNumber, "save deposit")
}

// checkSingleRow tells a stale snapshot apart from a vanished account when a
// conditional update matched nothing.
func (r *AccountRepository) checkSingleRow(ctx context.Context, result sql.Result, accountNumber string, operation string) error {
	return resolveRowsAffected(ctx, result, accountNumber, operation, r.exists)
}

func resolveRowsAffected(
	ctx context.Context,
	result sql.Result,
	accountNumber string,
	operation string,
	exists func(ctx context.Context, accountNumber string) (bool, error),
) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("account repository rows affected failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"operation":     operation,
		})
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}

	if rowsAffected == 0 {
		found, err := exists(ctx, accountNumber)
		if err != nil {
			return fmt.Errorf("%s: %w", operation, err)
		}
		if !found {
			logger.Error("account repository persistence inconsistency", domain.ErrPersistenceInconsistency, logger.Fields{
				"accountNumber": accountNumber,
				"operation":     operation,
			})
			return domain.ErrPersistenceInconsistency
		}
		logger.Info("account repository stale snapshot", logger.Fields{
			"accountNumber": accountNumber,
			"operation":     operation,
		})
		return domain.ErrConcurrentUpdate
	}

	logger.Info("account repository "+operation+" success", logger.Fields{
		"accountNumber": accountNumber,
	})
	return nil
}

func (r *AccountRepository) exists(ctx context.Context, accountNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(&exists); err != nil {
		logger.Error("account repository exists check failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return false, fmt.Errorf("check account exists: %w", err)
	}

	return exists, nil
}

func classifyWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable:
			return fmt.Errorf("%w: %s", domain.ErrConcurrentUpdate, pqErr.Message)
		}
	}
	return err
}

func nullDay(day domain.Day) sql.NullString {
	if day.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: day.String(), Valid: true}
}
