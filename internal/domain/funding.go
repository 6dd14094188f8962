package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Funding request statuses (shared with GoldLock)
const (
	RequestPending  = "PENDING"  // Awaiting an admin decision
	RequestApproved = "APPROVED" // Approved, wallet mutated
	RequestRejected = "REJECTED" // Rejected, no wallet mutation
)

// Supported deposit/withdrawal currencies
const (
	CurrencyBTC  = "BTC"  // Bitcoin
	CurrencyUSDT = "USDT" // Tether
	CurrencyETH  = "ETH"  // Ethereum
)

// DepositRequest Model, immutable once in a terminal state
type DepositRequest struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID       uint            `gorm:"index;not null" json:"user_id"`             // Foreign key to User
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"` // Requested amount
	Currency     string          `gorm:"size:4;not null" json:"currency"`           // BTC, USDT or ETH
	TxID         string          `gorm:"size:255" json:"txid,omitempty"`            // External transaction reference
	Status       string          `gorm:"size:10;not null;default:PENDING" json:"status"` // PENDING, APPROVED or REJECTED
	ApprovedByID *uint           `json:"approved_by,omitempty"`                     // Approving admin, set on decision
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`                     // Decision timestamp
	CreatedAt    time.Time       `json:"created"`                                   // Submission timestamp
}

// WithdrawalRequest Model, immutable once in a terminal state
type WithdrawalRequest struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID       uint            `gorm:"index;not null" json:"user_id"`             // Foreign key to User
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"` // Requested amount
	Currency     string          `gorm:"size:4;not null" json:"currency"`           // BTC, USDT or ETH
	TxID         string          `gorm:"size:255" json:"txid,omitempty"`            // External transaction reference
	Status       string          `gorm:"size:10;not null;default:PENDING" json:"status"` // PENDING, APPROVED or REJECTED
	ApprovedByID *uint           `json:"approved_by,omitempty"`                     // Approving admin, set on decision
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`                     // Decision timestamp
	CreatedAt    time.Time       `json:"created"`                                   // Submission timestamp
}
