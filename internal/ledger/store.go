package ledger

import (
	"context"

	"goldvault/internal/domain"
)

// Store is the persistence boundary of the engine. Implementations must
// return ErrNotFound for missing rows and ErrNoPriceAvailable for an empty
// price series.
type Store interface {
	// InTx runs fn inside a single atomic transaction. The Store handed to
	// fn reads and writes uncommitted state; any error from fn rolls the
	// whole unit back. Row reads through the *ForUpdate methods hold a
	// write lock on the row until the transaction ends, so two concurrent
	// mutations of one wallet serialize while different wallets do not
	// block each other.
	InTx(ctx context.Context, fn func(tx Store) error) error

	Wallet(ctx context.Context, userID uint) (*domain.Wallet, error)
	WalletForUpdate(ctx context.Context, userID uint) (*domain.Wallet, error)
	SaveWallet(ctx context.Context, w *domain.Wallet) error

	CreateTransaction(ctx context.Context, t *domain.Transaction) error

	DepositForUpdate(ctx context.Context, id uint) (*domain.DepositRequest, error)
	SaveDeposit(ctx context.Context, d *domain.DepositRequest) error
	WithdrawalForUpdate(ctx context.Context, id uint) (*domain.WithdrawalRequest, error)
	SaveWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) error
	GoldLockForUpdate(ctx context.Context, id uint) (*domain.GoldLock, error)
	SaveGoldLock(ctx context.Context, l *domain.GoldLock) error

	// LatestPrice returns the newest GoldPrice; ties on the timestamp are
	// broken by insertion order, so the later insert wins.
	LatestPrice(ctx context.Context) (*domain.GoldPrice, error)
	CreatePrice(ctx context.Context, p *domain.GoldPrice) error

	CreateSnapshot(ctx context.Context, s *domain.PortfolioSnapshot) error
}
