package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoldPrice Model, append-only: rows are never updated or deleted
type GoldPrice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                    // Primary key
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // Published price per ounce
	CreatedAt time.Time       `gorm:"index" json:"timestamp"`                  // Publication timestamp
}
