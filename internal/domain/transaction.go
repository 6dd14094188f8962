package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionBuy  = "BUY"  // Buy gold
	TransactionSell = "SELL" // Sell gold
)

// Order types
const (
	OrderMarket = "MARKET" // Executed immediately at the current price
	OrderLimit  = "LIMIT"  // Deferred, stored with a limit price
	OrderStop   = "STOP"   // Deferred, stored with a stop price
)

// Transaction statuses
const (
	StatusPending   = "PENDING"   // Awaiting execution
	StatusExecuted  = "EXECUTED"  // Filled
	StatusCancelled = "CANCELLED" // Cancelled before execution
)

// Transaction Model, immutable once written
type Transaction struct {
	ID            uint             `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID        uint             `gorm:"index;not null" json:"user_id"`              // Foreign key to User
	Type          string           `gorm:"size:4;not null" json:"transaction_type"`    // BUY or SELL
	OrderType     string           `gorm:"size:6;not null;default:MARKET" json:"order_type"` // MARKET, LIMIT or STOP
	Amount        decimal.Decimal  `gorm:"type:decimal(15,4);not null" json:"amount"`  // Gold amount in ounces
	LimitPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"limit_price,omitempty"` // Limit price, LIMIT orders only
	StopPrice     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"stop_price,omitempty"`  // Stop price, STOP orders only
	PriceAtOrder  decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price_at_order"` // Published price at submission
	ExecutedPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"executed_price,omitempty"` // Fill price, set when executed
	Status        string           `gorm:"size:10;not null;default:PENDING" json:"status"` // PENDING, EXECUTED or CANCELLED
	CreatedAt     time.Time        `gorm:"index" json:"timestamp"`                     // Submission timestamp
}
