package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"goldvault/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExecuteMarketOrder_Buy(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "1000.00", "0.0000")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	tx, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionBuy, dec("10"))
	require.NoError(t, err)

	wallet := store.wallet(1)
	assert.True(t, wallet.CashBalance.Equal(dec("500.00")), "cash balance: %s", wallet.CashBalance)
	assert.True(t, wallet.GoldHoldings.Equal(dec("10.0000")), "gold holdings: %s", wallet.GoldHoldings)
	assert.Equal(t, domain.StatusExecuted, tx.Status)
	assert.Equal(t, domain.OrderMarket, tx.OrderType)
	require.NotNil(t, tx.ExecutedPrice)
	assert.True(t, tx.ExecutedPrice.Equal(dec("50.00")))
	assert.True(t, tx.PriceAtOrder.Equal(dec("50.00")))
}

func TestExecuteMarketOrder_Sell(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "500.00", "10.0000")
	store.seedPrice("60.00")
	engine := NewEngine(store)

	tx, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionSell, dec("10"))
	require.NoError(t, err)

	wallet := store.wallet(1)
	assert.True(t, wallet.CashBalance.Equal(dec("1100.00")), "cash balance: %s", wallet.CashBalance)
	assert.True(t, wallet.GoldHoldings.Equal(dec("0.0000")), "gold holdings: %s", wallet.GoldHoldings)
	assert.Equal(t, domain.StatusExecuted, tx.Status)
}

func TestExecuteMarketOrder_InsufficientFunds(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "100.00", "0")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	_, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionBuy, dec("5"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Failure leaves the wallet and the transaction set untouched
	wallet := store.wallet(1)
	assert.True(t, wallet.CashBalance.Equal(dec("100.00")))
	assert.True(t, wallet.GoldHoldings.Equal(dec("0")))
	assert.Empty(t, store.transactions())
}

func TestExecuteMarketOrder_InsufficientHoldings(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "1000.00", "2.5000")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	_, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionSell, dec("3"))
	require.ErrorIs(t, err, ErrInsufficientHoldings)

	wallet := store.wallet(1)
	assert.True(t, wallet.GoldHoldings.Equal(dec("2.5000")))
	assert.Empty(t, store.transactions())
}

func TestExecuteMarketOrder_NoPrice(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "1000.00", "0")
	engine := NewEngine(store)

	_, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionBuy, dec("1"))
	require.ErrorIs(t, err, ErrNoPriceAvailable)
}

func TestExecuteMarketOrder_WalletNotFound(t *testing.T) {
	store := newMemStore()
	store.seedPrice("50.00")
	engine := NewEngine(store)

	_, err := engine.ExecuteMarketOrder(context.Background(), 42, domain.TransactionBuy, dec("1"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExecuteMarketOrder_Validation(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "1000.00", "0")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	tests := []struct {
		name      string
		orderType string
		amount    decimal.Decimal
	}{
		{"zero amount", domain.TransactionBuy, dec("0")},
		{"negative amount", domain.TransactionBuy, dec("-1")},
		{"too many decimals", domain.TransactionBuy, dec("1.00001")},
		{"bad type", "HODL", dec("1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ExecuteMarketOrder(context.Background(), 1, tt.orderType, tt.amount)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, store.transactions())
}

func TestExecuteMarketOrder_RoundTripConservation(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "1000.00", "0.0000")
	store.seedPrice("47.11")
	engine := NewEngine(store)

	// A buy followed by a sell of the same amount at the same price must
	// restore the wallet exactly; both legs round the same product
	_, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionBuy, dec("3.3333"))
	require.NoError(t, err)
	_, err = engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionSell, dec("3.3333"))
	require.NoError(t, err)

	wallet := store.wallet(1)
	assert.True(t, wallet.CashBalance.Equal(dec("1000.00")), "cash balance drifted: %s", wallet.CashBalance)
	assert.True(t, wallet.GoldHoldings.Equal(dec("0.0000")), "gold holdings drifted: %s", wallet.GoldHoldings)
}

func TestExecuteMarketOrder_RollsBackWalletOnAuditFailure(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "1000.00", "0")
	store.seedPrice("50.00")
	store.failCreateTx = errors.New("write failed")
	engine := NewEngine(store)

	_, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionBuy, dec("10"))
	require.Error(t, err)

	// The wallet mutation must not survive without its audit record
	wallet := store.wallet(1)
	assert.True(t, wallet.CashBalance.Equal(dec("1000.00")))
	assert.True(t, wallet.GoldHoldings.Equal(dec("0")))
}

func TestExecuteMarketOrder_ConcurrentOverdraw(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "500.00", "0.0000")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	// Funds cover exactly one of these orders
	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.ExecuteMarketOrder(context.Background(), 1, domain.TransactionBuy, dec("10"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one order should fill")

	wallet := store.wallet(1)
	assert.True(t, wallet.CashBalance.Equal(dec("0.00")), "cash balance: %s", wallet.CashBalance)
	assert.True(t, wallet.GoldHoldings.Equal(dec("10.0000")), "gold holdings: %s", wallet.GoldHoldings)
	assert.Len(t, store.transactions(), 1)
	assert.False(t, wallet.CashBalance.IsNegative(), "balance must never go negative")
}

func TestSubmitDeferredOrder_Limit(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "100.00", "0")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	limit := dec("45.00")
	// Deliberately larger than the wallet could cover: deferred orders
	// perform no balance check at submission
	tx, err := engine.SubmitDeferredOrder(context.Background(), 1, domain.TransactionBuy, domain.OrderLimit, dec("100"), &limit, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Equal(t, domain.OrderLimit, tx.OrderType)
	assert.Nil(t, tx.ExecutedPrice)
	assert.True(t, tx.PriceAtOrder.Equal(dec("50.00")))

	// The wallet is untouched
	wallet := store.wallet(1)
	assert.True(t, wallet.CashBalance.Equal(dec("100.00")))
}

func TestSubmitDeferredOrder_Stop(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "100.00", "5.0000")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	stop := dec("40.00")
	tx, err := engine.SubmitDeferredOrder(context.Background(), 1, domain.TransactionSell, domain.OrderStop, dec("5"), nil, &stop)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Equal(t, domain.OrderStop, tx.OrderType)
}

func TestSubmitDeferredOrder_Validation(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "100.00", "0")
	store.seedPrice("50.00")
	engine := NewEngine(store)

	negative := dec("-1")
	tests := []struct {
		name       string
		orderKind  string
		limitPrice *decimal.Decimal
		stopPrice  *decimal.Decimal
	}{
		{"limit without price", domain.OrderLimit, nil, nil},
		{"limit with negative price", domain.OrderLimit, &negative, nil},
		{"stop without price", domain.OrderStop, nil, nil},
		{"market is not deferred", domain.OrderMarket, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.SubmitDeferredOrder(context.Background(), 1, domain.TransactionBuy, tt.orderKind, dec("1"), tt.limitPrice, tt.stopPrice)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSubmitDeferredOrder_NoPrice(t *testing.T) {
	store := newMemStore()
	store.seedWallet(1, "100.00", "0")
	engine := NewEngine(store)

	limit := dec("45.00")
	_, err := engine.SubmitDeferredOrder(context.Background(), 1, domain.TransactionBuy, domain.OrderLimit, dec("1"), &limit, nil)
	require.ErrorIs(t, err, ErrNoPriceAvailable)
}
