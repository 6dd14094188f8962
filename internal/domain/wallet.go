package domain

import "github.com/shopspring/decimal"

// Wallet Model
type Wallet struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                                  // Primary key
	UserID       uint            `gorm:"uniqueIndex" json:"user_id"`                            // Foreign key to User
	CashBalance  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`  // Cash balance, 2 fraction digits
	GoldHoldings decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"gold_holdings"` // Gold holdings in ounces, 4 fraction digits
}
