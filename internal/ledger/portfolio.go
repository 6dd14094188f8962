package ledger

import (
	"context"

	"goldvault/internal/domain"
)

// Snapshot values the user's wallet at the current price and persists the
// result. The wallet itself is only read.
func (e *Engine) Snapshot(ctx context.Context, userID uint) (*domain.PortfolioSnapshot, error) {
	price, err := e.store.LatestPrice(ctx)
	if err != nil {
		return nil, err
	}
	wallet, err := e.store.Wallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	goldValue := wallet.GoldHoldings.Mul(price.Price).Round(2)
	snap := &domain.PortfolioSnapshot{
		UserID:       userID,
		CashBalance:  wallet.CashBalance,
		GoldHoldings: wallet.GoldHoldings,
		GoldPrice:    price.Price,
		GoldValue:    goldValue,
		TotalValue:   wallet.CashBalance.Add(goldValue),
	}
	if err := e.store.CreateSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
