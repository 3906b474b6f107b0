package memory

import (
	"context"
	"sync"

	"github.com/api-sage/account-transaction-engine/src/internal/domain"
)

// AccountRepository keeps accounts in a map and applies the same
// compare-and-swap save semantics as the Postgres repository.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountRepository(accounts ...domain.Account) *AccountRepository {
	r := &AccountRepository{accounts: make(map[string]domain.Account, len(accounts))}
	for _, account := range accounts {
		r.accounts[account.AccountNumber] = account
	}
	return r
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) SaveWithdrawal(_ context.Context, previous domain.Account, next domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[next.AccountNumber]
	if !ok {
		return domain.ErrPersistenceInconsistency
	}
	if !stored.Balance.Equal(previous.Balance) ||
		!stored.WithdrawnToday.Equal(previous.WithdrawnToday) ||
		stored.WithdrawnDay != previous.WithdrawnDay {
		return domain.ErrConcurrentUpdate
	}

	stored.Balance = next.Balance
	stored.WithdrawnToday = next.WithdrawnToday
	stored.WithdrawnDay = next.WithdrawnDay
	r.accounts[next.AccountNumber] = stored
	return nil
}

func (r *AccountRepository) SaveDeposit(_ context.Context, previous domain.Account, next domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[next.AccountNumber]
	if !ok {
		return domain.ErrPersistenceInconsistency
	}
	if !stored.Balance.Equal(previous.Balance) {
		return domain.ErrConcurrentUpdate
	}

	stored.Balance = next.Balance
	r.accounts[next.AccountNumber] = stored
	return nil
}

// Remove drops an account; used to simulate a row disappearing between load and save.
func (r *AccountRepository) Remove(accountNumber string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, accountNumber)
}
