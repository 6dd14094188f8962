package ledger

import (
	"context"
	"errors"
	"sync"

	"goldvault/internal/domain"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory Store used by the engine tests. InTx holds one
// mutex for the whole transaction and restores a snapshot of the state on
// error, which gives the same observable semantics as the row-locked SQL
// implementation: per-wallet serialization and all-or-nothing commits.
type memStore struct {
	mu sync.Mutex
	st memState

	failCreateTx error // injected CreateTransaction failure
}

type memState struct {
	wallets     map[uint]domain.Wallet
	deposits    map[uint]domain.DepositRequest
	withdrawals map[uint]domain.WithdrawalRequest
	locks       map[uint]domain.GoldLock
	txs         []domain.Transaction
	prices      []domain.GoldPrice
	snaps       []domain.PortfolioSnapshot
	nextID      uint
}

func newMemStore() *memStore {
	return &memStore{st: memState{
		wallets:     map[uint]domain.Wallet{},
		deposits:    map[uint]domain.DepositRequest{},
		withdrawals: map[uint]domain.WithdrawalRequest{},
		locks:       map[uint]domain.GoldLock{},
		nextID:      1,
	}}
}

func (s memState) clone() memState {
	c := s
	c.wallets = make(map[uint]domain.Wallet, len(s.wallets))
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	c.deposits = make(map[uint]domain.DepositRequest, len(s.deposits))
	for k, v := range s.deposits {
		c.deposits[k] = v
	}
	c.withdrawals = make(map[uint]domain.WithdrawalRequest, len(s.withdrawals))
	for k, v := range s.withdrawals {
		c.withdrawals[k] = v
	}
	c.locks = make(map[uint]domain.GoldLock, len(s.locks))
	for k, v := range s.locks {
		c.locks[k] = v
	}
	c.txs = append([]domain.Transaction(nil), s.txs...)
	c.prices = append([]domain.GoldPrice(nil), s.prices...)
	c.snaps = append([]domain.PortfolioSnapshot(nil), s.snaps...)
	return c
}

func (m *memStore) id() uint {
	id := m.st.nextID
	m.st.nextID++
	return id
}

// seed helpers

func (m *memStore) seedWallet(userID uint, cash, gold string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.wallets[userID] = domain.Wallet{
		ID:           m.id(),
		UserID:       userID,
		CashBalance:  decimal.RequireFromString(cash),
		GoldHoldings: decimal.RequireFromString(gold),
	}
}

func (m *memStore) seedPrice(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.prices = append(m.st.prices, domain.GoldPrice{ID: m.id(), Price: decimal.RequireFromString(value)})
}

func (m *memStore) seedDeposit(userID uint, amount string) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := domain.DepositRequest{
		ID:       m.id(),
		UserID:   userID,
		Amount:   decimal.RequireFromString(amount),
		Currency: domain.CurrencyUSDT,
		Status:   domain.RequestPending,
	}
	m.st.deposits[d.ID] = d
	return d.ID
}

func (m *memStore) seedWithdrawal(userID uint, amount string) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := domain.WithdrawalRequest{
		ID:       m.id(),
		UserID:   userID,
		Amount:   decimal.RequireFromString(amount),
		Currency: domain.CurrencyUSDT,
		Status:   domain.RequestPending,
	}
	m.st.withdrawals[w.ID] = w
	return w.ID
}

func (m *memStore) seedGoldLock(userID uint, amount string) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := domain.GoldLock{
		ID:     m.id(),
		UserID: userID,
		Amount: decimal.RequireFromString(amount),
		Status: domain.RequestPending,
	}
	m.st.locks[l.ID] = l
	return l.ID
}

// state inspection helpers

func (m *memStore) wallet(userID uint) domain.Wallet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.wallets[userID]
}

func (m *memStore) transactions() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Transaction(nil), m.st.txs...)
}

func (m *memStore) snapshots() []domain.PortfolioSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PortfolioSnapshot(nil), m.st.snaps...)
}

// Store implementation. The exported methods lock; the memTx wrapper used
// inside InTx reaches the unlocked versions because InTx already holds the
// mutex.

func (m *memStore) InTx(_ context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.st.clone()
	if err := fn(&memTx{m}); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

func (m *memStore) Wallet(ctx context.Context, userID uint) (*domain.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walletLocked(userID)
}

func (m *memStore) walletLocked(userID uint) (*domain.Wallet, error) {
	w, ok := m.st.wallets[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (m *memStore) WalletForUpdate(ctx context.Context, userID uint) (*domain.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walletLocked(userID)
}

func (m *memStore) SaveWallet(ctx context.Context, w *domain.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveWalletLocked(w)
}

func (m *memStore) saveWalletLocked(w *domain.Wallet) error {
	m.st.wallets[w.UserID] = *w
	return nil
}

func (m *memStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createTransactionLocked(t)
}

func (m *memStore) createTransactionLocked(t *domain.Transaction) error {
	if m.failCreateTx != nil {
		return m.failCreateTx
	}
	t.ID = m.id()
	m.st.txs = append(m.st.txs, *t)
	return nil
}

func (m *memStore) DepositForUpdate(ctx context.Context, id uint) (*domain.DepositRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depositLocked(id)
}

func (m *memStore) depositLocked(id uint) (*domain.DepositRequest, error) {
	d, ok := m.st.deposits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *memStore) SaveDeposit(ctx context.Context, d *domain.DepositRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.deposits[d.ID] = *d
	return nil
}

func (m *memStore) WithdrawalForUpdate(ctx context.Context, id uint) (*domain.WithdrawalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.withdrawalLocked(id)
}

func (m *memStore) withdrawalLocked(id uint) (*domain.WithdrawalRequest, error) {
	w, ok := m.st.withdrawals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (m *memStore) SaveWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.withdrawals[w.ID] = *w
	return nil
}

func (m *memStore) GoldLockForUpdate(ctx context.Context, id uint) (*domain.GoldLock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goldLockLocked(id)
}

func (m *memStore) goldLockLocked(id uint) (*domain.GoldLock, error) {
	l, ok := m.st.locks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (m *memStore) SaveGoldLock(ctx context.Context, l *domain.GoldLock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.locks[l.ID] = *l
	return nil
}

func (m *memStore) LatestPrice(ctx context.Context) (*domain.GoldPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latestPriceLocked()
}

func (m *memStore) latestPriceLocked() (*domain.GoldPrice, error) {
	if len(m.st.prices) == 0 {
		return nil, ErrNoPriceAvailable
	}
	p := m.st.prices[len(m.st.prices)-1]
	return &p, nil
}

func (m *memStore) CreatePrice(ctx context.Context, p *domain.GoldPrice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.st.prices = append(m.st.prices, *p)
	return nil
}

func (m *memStore) CreateSnapshot(ctx context.Context, s *domain.PortfolioSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.st.snaps = append(m.st.snaps, *s)
	return nil
}

var _ Store = (*memStore)(nil)

// memTx is the Store handed to InTx callbacks; the parent holds the mutex
type memTx struct {
	m *memStore
}

func (t *memTx) InTx(_ context.Context, fn func(tx Store) error) error {
	return errors.New("nested transactions not supported")
}

func (t *memTx) Wallet(_ context.Context, userID uint) (*domain.Wallet, error) {
	return t.m.walletLocked(userID)
}

func (t *memTx) WalletForUpdate(_ context.Context, userID uint) (*domain.Wallet, error) {
	return t.m.walletLocked(userID)
}

func (t *memTx) SaveWallet(_ context.Context, w *domain.Wallet) error {
	return t.m.saveWalletLocked(w)
}

func (t *memTx) CreateTransaction(_ context.Context, tr *domain.Transaction) error {
	return t.m.createTransactionLocked(tr)
}

func (t *memTx) DepositForUpdate(_ context.Context, id uint) (*domain.DepositRequest, error) {
	return t.m.depositLocked(id)
}

func (t *memTx) SaveDeposit(_ context.Context, d *domain.DepositRequest) error {
	t.m.st.deposits[d.ID] = *d
	return nil
}

func (t *memTx) WithdrawalForUpdate(_ context.Context, id uint) (*domain.WithdrawalRequest, error) {
	return t.m.withdrawalLocked(id)
}

func (t *memTx) SaveWithdrawal(_ context.Context, w *domain.WithdrawalRequest) error {
	t.m.st.withdrawals[w.ID] = *w
	return nil
}

func (t *memTx) GoldLockForUpdate(_ context.Context, id uint) (*domain.GoldLock, error) {
	return t.m.goldLockLocked(id)
}

func (t *memTx) SaveGoldLock(_ context.Context, l *domain.GoldLock) error {
	t.m.st.locks[l.ID] = *l
	return nil
}

func (t *memTx) LatestPrice(_ context.Context) (*domain.GoldPrice, error) {
	return t.m.latestPriceLocked()
}

func (t *memTx) CreatePrice(_ context.Context, p *domain.GoldPrice) error {
	p.ID = t.m.id()
	t.m.st.prices = append(t.m.st.prices, *p)
	return nil
}

func (t *memTx) CreateSnapshot(_ context.Context, s *domain.PortfolioSnapshot) error {
	s.ID = t.m.id()
	t.m.st.snaps = append(t.m.st.snaps, *s)
	return nil
}

var _ Store = (*memTx)(nil)
