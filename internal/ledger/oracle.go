package ledger

import (
	"context"
	"fmt"

	"goldvault/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RecordPrice appends a price point to the series. Admin-only; prices are
// never updated or deleted once published.
func (e *Engine) RecordPrice(ctx context.Context, admin *domain.User, value decimal.Decimal) (*domain.GoldPrice, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	price := &domain.GoldPrice{Price: value.Round(2)}
	if err := e.store.CreatePrice(ctx, price); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"admin_id": admin.ID,
		"price":    price.Price.String(),
	}).Info("Gold price recorded")
	return price, nil
}

// CurrentPrice returns the newest published price
func (e *Engine) CurrentPrice(ctx context.Context) (decimal.Decimal, error) {
	price, err := e.store.LatestPrice(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return price.Price, nil
}
