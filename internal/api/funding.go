package api

import (
	"net/http" // HTTP status codes
	"time"     // Time parsing

	"goldvault/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point decimal arithmetic
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// FundingRequest represents a deposit or withdrawal submission
type FundingRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`   // Requested amount
	Currency string          `json:"currency" binding:"required"` // BTC, USDT or ETH
	TxID     string          `json:"txid"`                        // Optional external reference
}

// GoldLockRequest represents a gold lock submission
type GoldLockRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`        // Gold amount in ounces
	StartDate    time.Time       `json:"start_date" binding:"required"`    // Lock window start
	EndDate      time.Time       `json:"end_date" binding:"required"`      // Lock window end
	InterestRate decimal.Decimal `json:"interest_rate" binding:"required"` // Annual interest rate in percent
}

// isValidCurrency checks the currency tag against the supported set
func isValidCurrency(currency string) bool {
	switch currency {
	case domain.CurrencyBTC, domain.CurrencyUSDT, domain.CurrencyETH:
		return true
	}
	return false
}

// validFundingAmount checks a cash amount: positive, at most 2 fraction digits
func validFundingAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// CreateDepositHandler submits a deposit request; funds move only after an
// admin approves it
func CreateDepositHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req FundingRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || !validFundingAmount(req.Amount) {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		// Validate the currency tag
		if !isValidCurrency(req.Currency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
			return
		}
		// Create the pending request
		deposit := domain.DepositRequest{
			UserID:   userID,       // Requesting user
			Amount:   req.Amount,   // Requested amount
			Currency: req.Currency, // Currency tag
			TxID:     req.TxID,     // External reference
			Status:   domain.RequestPending,
		}
		// Save the request
		if err := db.Create(&deposit).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deposit request"})
			return
		}
		// Log the submission
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,              // User ID
			"deposit_id": deposit.ID,          // Request ID
			"amount":     req.Amount.String(), // Requested amount
			"currency":   req.Currency,        // Currency tag
		}).Info("Deposit request submitted")
		c.JSON(http.StatusCreated, gin.H{"deposit": deposit}) // Return the request
	}
}

// ListDepositsHandler returns the authenticated user's deposit requests
func ListDepositsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var deposits []domain.DepositRequest // Slice to hold requests
		// Fetch the user's requests, newest first
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&deposits).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposit requests"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deposits": deposits}) // Return the list
	}
}

// CreateWithdrawalHandler submits a withdrawal request; the balance is only
// checked at approval time
func CreateWithdrawalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req FundingRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || !validFundingAmount(req.Amount) {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		// Validate the currency tag
		if !isValidCurrency(req.Currency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
			return
		}
		// Create the pending request
		withdrawal := domain.WithdrawalRequest{
			UserID:   userID,       // Requesting user
			Amount:   req.Amount,   // Requested amount
			Currency: req.Currency, // Currency tag
			TxID:     req.TxID,     // External reference
			Status:   domain.RequestPending,
		}
		// Save the request
		if err := db.Create(&withdrawal).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create withdrawal request"})
			return
		}
		// Log the submission
		logrus.WithFields(logrus.Fields{
			"user_id":       userID,              // User ID
			"withdrawal_id": withdrawal.ID,       // Request ID
			"amount":        req.Amount.String(), // Requested amount
			"currency":      req.Currency,        // Currency tag
		}).Info("Withdrawal request submitted")
		c.JSON(http.StatusCreated, gin.H{"withdrawal": withdrawal}) // Return the request
	}
}

// ListWithdrawalsHandler returns the authenticated user's withdrawal requests
func ListWithdrawalsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var withdrawals []domain.WithdrawalRequest // Slice to hold requests
		// Fetch the user's requests, newest first
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&withdrawals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch withdrawal requests"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals}) // Return the list
	}
}

// CreateGoldLockHandler submits a gold lock request; holdings move only
// after an admin approves it
func CreateGoldLockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req GoldLockRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate the gold amount: positive, at most 4 fraction digits
		if !req.Amount.IsPositive() || !req.Amount.Equal(req.Amount.Round(4)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		// The lock window must be properly ordered
		if !req.EndDate.After(req.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
			return
		}
		// Interest rate may be zero but never negative
		if req.InterestRate.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interest rate"})
			return
		}
		// Create the pending lock
		lock := domain.GoldLock{
			UserID:       userID,           // Requesting user
			Amount:       req.Amount,       // Gold amount
			StartDate:    req.StartDate,    // Window start
			EndDate:      req.EndDate,      // Window end
			InterestRate: req.InterestRate, // Interest rate
			Status:       domain.RequestPending,
		}
		// Save the lock
		if err := db.Create(&lock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gold lock"})
			return
		}
		// Log the submission
		logrus.WithFields(logrus.Fields{
			"user_id": userID,              // User ID
			"lock_id": lock.ID,             // Lock ID
			"amount":  req.Amount.String(), // Gold amount
		}).Info("Gold lock submitted")
		c.JSON(http.StatusCreated, gin.H{"gold_lock": lock}) // Return the lock
	}
}

// ListGoldLocksHandler returns the authenticated user's gold locks
func ListGoldLocksHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var locks []domain.GoldLock // Slice to hold locks
		// Fetch the user's locks, newest first
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&locks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gold locks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"gold_locks": locks}) // Return the list
	}
}
