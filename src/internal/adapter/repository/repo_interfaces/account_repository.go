package repo_interfaces

import (
	"context"

	"github.com/api-sage/account-transaction-engine/src/internal/domain"
)

// AccountRepository loads and conditionally saves account snapshots.
//
// SaveWithdrawal and SaveDeposit only apply when the stored row still matches
// previous; otherwise they return domain.ErrConcurrentUpdate. A missing row
// yields domain.ErrPersistenceInconsistency.
type AccountRepository interface {
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	SaveWithdrawal(ctx context.Context, previous domain.Account, next domain.Account) error
	SaveDeposit(ctx context.Context, previous domain.Account, next domain.Account) error
}
