package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestMatured is modeled but never written: no maturation job exists,
// approved locks stay APPROVED and the held gold is not released.
const RequestMatured = "MATURED"

// GoldLock Model
type GoldLock struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                           // Primary key
	UserID       uint            `gorm:"index;not null" json:"user_id"`                  // Foreign key to User
	Amount       decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"amount"`      // Gold amount to lock, in ounces
	StartDate    time.Time       `gorm:"not null" json:"start_date"`                     // Lock window start
	EndDate      time.Time       `gorm:"not null" json:"end_date"`                       // Lock window end
	InterestRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"` // Annual interest rate in percent
	Status       string          `gorm:"size:10;not null;default:PENDING" json:"status"` // PENDING, APPROVED, REJECTED or MATURED
	ApprovedByID *uint           `json:"approved_by,omitempty"`                          // Approving admin, set on decision
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`                          // Decision timestamp
	CreatedAt    time.Time       `json:"created"`                                        // Submission timestamp
}
