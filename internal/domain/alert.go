package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price alert directions
const (
	AlertAbove = "ABOVE" // Fire when the price rises above the target
	AlertBelow = "BELOW" // Fire when the price falls below the target
)

// PriceAlert Model, soft-deleted by flipping IsActive
type PriceAlert struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                            // Primary key
	UserID      uint            `gorm:"index;not null" json:"user_id"`                   // Foreign key to User
	TargetPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"target_price"` // Price threshold
	AlertType   string          `gorm:"size:10;not null" json:"alert_type"`              // ABOVE or BELOW
	IsActive    bool            `gorm:"default:true" json:"is_active"`                   // Soft-delete flag
	TriggeredAt *time.Time      `json:"triggered,omitempty"`                             // Trigger timestamp, unset while pending
	CreatedAt   time.Time       `json:"created"`                                         // Creation timestamp
}
