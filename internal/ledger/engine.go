package ledger

import (
	"context"
	"fmt"

	"goldvault/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Engine owns every wallet mutation. Request handlers never touch a Wallet
// row directly; they call the engine, which commits the balance change and
// its audit record as one unit.
type Engine struct {
	store Store
}

// NewEngine creates an Engine on top of a Store
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// validateAmount checks that a gold amount is positive and carries at most
// 4 fraction digits
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !amount.Equal(amount.Round(4)) {
		return fmt.Errorf("%w: amount precision exceeds 4 decimal places", ErrValidation)
	}
	return nil
}

// validateOrderType checks the transaction direction
func validateOrderType(orderType string) error {
	if orderType != domain.TransactionBuy && orderType != domain.TransactionSell {
		return fmt.Errorf("%w: transaction type must be BUY or SELL", ErrValidation)
	}
	return nil
}

// ExecuteMarketOrder fills a BUY or SELL immediately at the current
// published price. The wallet update and the EXECUTED Transaction row
// commit atomically; on any failure neither is visible.
func (e *Engine) ExecuteMarketOrder(ctx context.Context, userID uint, orderType string, amount decimal.Decimal) (*domain.Transaction, error) {
	if err := validateOrderType(orderType); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	var tx *domain.Transaction
	err := e.store.InTx(ctx, func(s Store) error {
		price, err := s.LatestPrice(ctx)
		if err != nil {
			return err
		}
		wallet, err := s.WalletForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		// Cash legs round to the wallet's 2 fraction digits; both sides of
		// a BUY/SELL round-trip round the same product, so no drift
		cash := amount.Mul(price.Price).Round(2)
		switch orderType {
		case domain.TransactionBuy:
			if wallet.CashBalance.LessThan(cash) {
				return ErrInsufficientFunds
			}
			wallet.CashBalance = wallet.CashBalance.Sub(cash)
			wallet.GoldHoldings = wallet.GoldHoldings.Add(amount)
		case domain.TransactionSell:
			if wallet.GoldHoldings.LessThan(amount) {
				return ErrInsufficientHoldings
			}
			wallet.GoldHoldings = wallet.GoldHoldings.Sub(amount)
			wallet.CashBalance = wallet.CashBalance.Add(cash)
		}
		if err := s.SaveWallet(ctx, wallet); err != nil {
			return err
		}
		executed := price.Price
		tx = &domain.Transaction{
			UserID:        userID,
			Type:          orderType,
			OrderType:     domain.OrderMarket,
			Amount:        amount,
			PriceAtOrder:  price.Price,
			ExecutedPrice: &executed,
			Status:        domain.StatusExecuted,
		}
		return s.CreateTransaction(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"type":    orderType,
		"amount":  amount.String(),
		"price":   tx.ExecutedPrice.String(),
	}).Info("Market order executed")
	return tx, nil
}

// SubmitDeferredOrder persists a LIMIT or STOP order as PENDING. No balance
// is checked or reserved at submission, and no matcher acts on the order
// later; it sits PENDING until cancelled.
func (e *Engine) SubmitDeferredOrder(ctx context.Context, userID uint, orderType, orderKind string, amount decimal.Decimal, limitPrice, stopPrice *decimal.Decimal) (*domain.Transaction, error) {
	if err := validateOrderType(orderType); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	switch orderKind {
	case domain.OrderLimit:
		if limitPrice == nil || !limitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: limit order requires a positive limit price", ErrValidation)
		}
	case domain.OrderStop:
		if stopPrice == nil || !stopPrice.IsPositive() {
			return nil, fmt.Errorf("%w: stop order requires a positive stop price", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: order type must be LIMIT or STOP", ErrValidation)
	}

	price, err := e.store.LatestPrice(ctx)
	if err != nil {
		return nil, err
	}
	tx := &domain.Transaction{
		UserID:       userID,
		Type:         orderType,
		OrderType:    orderKind,
		Amount:       amount,
		LimitPrice:   limitPrice,
		StopPrice:    stopPrice,
		PriceAtOrder: price.Price,
		Status:       domain.StatusPending,
	}
	if err := e.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"type":       orderType,
		"order_type": orderKind,
		"amount":     amount.String(),
	}).Info("Deferred order submitted")
	return tx, nil
}
