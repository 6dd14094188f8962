package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"goldvault/internal/domain" // Importing domain models
	"goldvault/internal/ledger" // Ledger engine
	"goldvault/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Fixed-point decimal arithmetic
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// OrderRequest represents an order placement request
type OrderRequest struct {
	TransactionType string           `json:"transaction_type" binding:"required"` // BUY or SELL
	OrderType       string           `json:"order_type"`                          // MARKET (default), LIMIT or STOP
	Amount          decimal.Decimal  `json:"amount" binding:"required"`           // Gold amount in ounces
	LimitPrice      *decimal.Decimal `json:"limit_price"`                         // Limit price for LIMIT orders
	StopPrice       *decimal.Decimal `json:"stop_price"`                          // Stop price for STOP orders
}

// PlaceOrderHandler places a market order (executed immediately) or a
// deferred limit/stop order (persisted pending)
func PlaceOrderHandler(engine *ledger.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req OrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Market orders are the default
		if req.OrderType == "" {
			req.OrderType = domain.OrderMarket
		}
		var tx *domain.Transaction // Resulting transaction record
		var err error
		// Market orders execute against the wallet; limit/stop orders are
		// only persisted
		if req.OrderType == domain.OrderMarket {
			tx, err = engine.ExecuteMarketOrder(c.Request.Context(), userID, req.TransactionType, req.Amount)
		} else {
			tx, err = engine.SubmitDeferredOrder(c.Request.Context(), userID, req.TransactionType, req.OrderType, req.Amount, req.LimitPrice, req.StopPrice)
		}
		if err != nil {
			// Log the failure with context
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,              // User ID
				"type":       req.TransactionType, // Transaction type
				"order_type": req.OrderType,       // Order type
				"error":      err.Error(),         // Error message
			}).Warn("Order failed")
			writeLedgerError(c, err) // Map engine outcome to HTTP status
			return
		}
		// Invalidate wallet and transaction history cache for the user
		ctx := context.Background()                                  // Context for Redis operations
		userKey := "wallet:user:" + strconv.Itoa(int(userID))        // Wallet cache key
		txPrefix := "txhistory:user:" + strconv.Itoa(int(userID))    // Transaction history prefix
		_ = utils.DeleteCache(ctx, rdb, userKey)                     // Invalidate wallet cache
		utils.DeleteCachePages(ctx, rdb, txPrefix)                   // Invalidate paginated history
		c.JSON(http.StatusCreated, gin.H{"transaction": tx}) // Return the transaction record
	}
}

// GetWalletHandler returns wallet info for the authenticated user
func GetWalletHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		ctx := context.Background()                            // Context for Redis operations
		cacheKey := "wallet:user:" + strconv.Itoa(int(userID)) // Cache key for wallet
		var wallet domain.Wallet                               // Wallet struct to hold data
		found, err := utils.GetCache(ctx, rdb, cacheKey, &wallet) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			// Return cached wallet
			c.JSON(http.StatusOK, gin.H{"wallet": wallet, "cached": true})
			return
		}
		// If not in cache, fetch from DB
		if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			// Return not found if wallet doesn't exist
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, wallet, 60*time.Second)  // Cache the wallet for 60 seconds
		c.JSON(http.StatusOK, gin.H{"wallet": wallet, "cached": false}) // Return wallet info
	}
}

// GetTransactionHistoryHandler returns the authenticated user's orders,
// newest first
func GetTransactionHistoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		page, pageSize := pageParams(c) // Pagination parameters
		offset := (page - 1) * pageSize // Calculate offset
		// Redis cache key
		cacheKey := "txhistory:user:" + strconv.Itoa(int(userID)) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		ctx := context.Background() // Context for Redis operations
		var cached struct {
			Transactions []domain.Transaction `json:"transactions"` // List of transactions
			Page         int                  `json:"page"`         // Current page
			PageSize     int                  `json:"page_size"`    // Page size
			Total        int64                `json:"total"`        // Total transactions
			TotalPages   int                  `json:"total_pages"`  // Total pages
		}
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"transactions": cached.Transactions, // Cached transactions
				"page":         cached.Page,         // Current page
				"page_size":    cached.PageSize,     // Page size
				"total":        cached.Total,        // Total transactions
				"total_pages":  cached.TotalPages,   // Total pages
				"cached":       true,
			})
			return
		}
		var total int64 // Total count of transactions
		// Count total transactions for pagination
		if err := db.Model(&domain.Transaction{}).
			Where("user_id = ?", userID).
			Count(&total).Error; err != nil {
			// If counting fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transactions"})
			return
		}
		var transactions []domain.Transaction // Slice to hold transactions
		// Fetch paginated transactions
		if err := db.Where("user_id = ?", userID).
			Order("created_at desc").
			Offset(offset).
			Limit(pageSize).
			Find(&transactions).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		// Calculate total pages
		totalPages := (int(total) + pageSize - 1) / pageSize
		resp := gin.H{
			"transactions": transactions, // List of transactions
			"page":         page,         // Current page
			"page_size":    pageSize,     // Page size
			"total":        total,        // Total transactions
			"total_pages":  totalPages,   // Total pages
			"cached":       false,        // Not from cache
		}
		// Cache the result for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp) // Return transaction history
	}
}
