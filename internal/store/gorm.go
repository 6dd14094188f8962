package store

import (
	"context"
	"errors"

	"goldvault/internal/domain"
	"goldvault/internal/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements ledger.Store on top of GORM/MySQL. The *ForUpdate
// reads take a SELECT ... FOR UPDATE row lock, so concurrent mutations of
// the same wallet serialize inside InTx while other wallets stay free.
type GormStore struct {
	db *gorm.DB
}

// New wraps a gorm handle in a GormStore
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ ledger.Store = (*GormStore)(nil)

// InTx runs fn in one database transaction
func (s *GormStore) InTx(ctx context.Context, fn func(tx ledger.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// translate maps gorm's not-found to the engine's sentinel
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.ErrNotFound
	}
	return err
}

// Wallet returns a user's wallet without locking it
func (s *GormStore) Wallet(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// WalletForUpdate returns a user's wallet with a row write lock held until
// the surrounding transaction ends
func (s *GormStore) WalletForUpdate(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var w domain.Wallet
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&w).Error
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// SaveWallet writes back a mutated wallet
func (s *GormStore) SaveWallet(ctx context.Context, w *domain.Wallet) error {
	return s.db.WithContext(ctx).Save(w).Error
}

// CreateTransaction appends an immutable transaction record
func (s *GormStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

// DepositForUpdate loads a deposit request with a row write lock
func (s *GormStore) DepositForUpdate(ctx context.Context, id uint) (*domain.DepositRequest, error) {
	var d domain.DepositRequest
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// SaveDeposit writes back a deposit request
func (s *GormStore) SaveDeposit(ctx context.Context, d *domain.DepositRequest) error {
	return s.db.WithContext(ctx).Save(d).Error
}

// WithdrawalForUpdate loads a withdrawal request with a row write lock
func (s *GormStore) WithdrawalForUpdate(ctx context.Context, id uint) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// SaveWithdrawal writes back a withdrawal request
func (s *GormStore) SaveWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) error {
	return s.db.WithContext(ctx).Save(w).Error
}

// GoldLockForUpdate loads a gold lock with a row write lock
func (s *GormStore) GoldLockForUpdate(ctx context.Context, id uint) (*domain.GoldLock, error) {
	var l domain.GoldLock
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

// SaveGoldLock writes back a gold lock
func (s *GormStore) SaveGoldLock(ctx context.Context, l *domain.GoldLock) error {
	return s.db.WithContext(ctx).Save(l).Error
}

// LatestPrice returns the newest price point; same-timestamp rows are
// broken by id so the later insert wins
func (s *GormStore) LatestPrice(ctx context.Context) (*domain.GoldPrice, error) {
	var p domain.GoldPrice
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledger.ErrNoPriceAvailable
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePrice appends a price point
func (s *GormStore) CreatePrice(ctx context.Context, p *domain.GoldPrice) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// CreateSnapshot appends a portfolio snapshot
func (s *GormStore) CreateSnapshot(ctx context.Context, snap *domain.PortfolioSnapshot) error {
	return s.db.WithContext(ctx).Create(snap).Error
}
