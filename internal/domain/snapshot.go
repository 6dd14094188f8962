package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSnapshot Model, immutable point-in-time valuation
type PortfolioSnapshot struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                             // Primary key
	UserID       uint            `gorm:"index;not null" json:"user_id"`                    // Foreign key to User
	CashBalance  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"cash_balance"`  // Cash balance at snapshot time
	GoldHoldings decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"gold_holdings"` // Gold holdings at snapshot time
	GoldPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"gold_price"`    // Published price used for valuation
	GoldValue    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"gold_value"`    // holdings * price
	TotalValue   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_value"`   // cash + gold value
	CreatedAt    time.Time       `json:"date"`                                             // Snapshot timestamp
}
