package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Time durations

	"goldvault/internal/domain" // Importing domain models
	"goldvault/internal/ledger" // Ledger engine
	"goldvault/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// DecisionRequest represents an approve/reject action on a pending request
type DecisionRequest struct {
	Action string `json:"action" binding:"required"` // approve or reject
}

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID       uint          `json:"id"`        // User ID
	Username string        `json:"username"`  // Username
	Email    string        `json:"email"`     // Email address
	IsAdmin  bool          `json:"is_admin"`  // Administrator flag
	IsActive bool          `json:"is_active"` // Active account flag
	Wallet   domain.Wallet `json:"wallet"`    // Associated wallet
}

// ListUsersHandler returns all users with their wallet info
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		// Try to get cached response
		var cached struct {
			Users      []UserAdminResponse `json:"users"`       // List of users
			Page       int                 `json:"page"`        // Current page
			PageSize   int                 `json:"page_size"`   // Page size
			Total      int64               `json:"total"`       // Total number of users
			TotalPages int                 `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // List of users
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page, pageSize := pageParams(c) // Pagination parameters
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		// Fetch total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"}) // Return on error
			return
		}
		var users []domain.User // Slice to hold users
		// Preload Wallet relation, apply offset and limit for pagination
		if err := db.Preload("Wallet").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"}) // Return on error
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Prepare response data
		resp := make([]UserAdminResponse, len(users))
		// Map users to response format
		for i, u := range users {
			resp[i] = UserAdminResponse{
				ID:       u.ID,       // User ID
				Username: u.Username, // Username
				Email:    u.Email,    // Email address
				IsAdmin:  u.IsAdmin,  // Administrator flag
				IsActive: u.IsActive, // Active account flag
				Wallet:   u.Wallet,   // Associated wallet
			}
		}
		// Prepare final response data
		respData := gin.H{
			"users":       resp,       // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// ListAllTransactionsHandler returns all orders, with optional filtering by
// user, type, status or date
func ListAllTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		// Build cache key from all query params
		var keyParts []string // Parts of the cache key
		// Append each query parameter to the key parts
		for _, k := range []string{"user_id", "type", "status", "from", "to", "page", "page_size"} {
			keyParts = append(keyParts, k+"="+c.DefaultQuery(k, "")) // Append key-value pair
		}
		// Join key parts to form the final cache key
		cacheKey := "admin:txs:" + strings.Join(keyParts, ":")
		var cached struct {
			Transactions []domain.Transaction `json:"transactions"` // List of transactions
			Page         int                  `json:"page"`         // Current page
			PageSize     int                  `json:"page_size"`    // Page size
			Total        int64                `json:"total"`        // Total number of transactions
			TotalPages   int                  `json:"total_pages"`  // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"transactions": cached.Transactions, // List of transactions
				"page":         cached.Page,         // Current page
				"page_size":    cached.PageSize,     // Page size
				"total":        cached.Total,        // Total number of transactions
				"total_pages":  cached.TotalPages,   // Total pages
				"cached":       true,                // Indicate response is from cache
			})
			return
		}
		page, pageSize := pageParams(c)          // Pagination parameters
		offset := (page - 1) * pageSize          // Calculate offset for pagination
		query := db.Model(&domain.Transaction{}) // Start building the query
		if userID := c.Query("user_id"); userID != "" {
			query = query.Where("user_id = ?", userID) // Filter by user ID
		}
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType) // Filter by transaction type
		}
		if txStatus := c.Query("status"); txStatus != "" {
			query = query.Where("status = ?", txStatus) // Filter by status
		}
		if from := c.Query("from"); from != "" {
			query = query.Where("created_at >= ?", from) // Filter by start date
		}
		if to := c.Query("to"); to != "" {
			query = query.Where("created_at <= ?", to) // Filter by end date
		}
		var total int64 // Total transaction count
		// Get total count of transactions matching the filters
		if err := query.Count(&total).Error; err != nil {
			// If error occurs, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transactions"})
			return
		}
		var txs []domain.Transaction // Slice to hold transactions
		// Fetch paginated transactions with filters applied
		if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&txs).Error; err != nil {
			// If error occurs, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		respData := gin.H{
			"transactions": txs,        // List of transactions
			"page":         page,       // Current page
			"page_size":    pageSize,   // Page size
			"total":        total,      // Total number of transactions
			"total_pages":  totalPages, // Total pages
			"cached":       false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// ListAllDepositsHandler returns all deposit requests, optionally filtered
// by status
func ListAllDepositsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&domain.DepositRequest{}) // Start building the query
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status) // Filter by status
		}
		var deposits []domain.DepositRequest // Slice to hold requests
		// Fetch all requests, newest first
		if err := query.Order("created_at desc").Find(&deposits).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposit requests"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deposits": deposits}) // Return the list
	}
}

// ListAllWithdrawalsHandler returns all withdrawal requests, optionally
// filtered by status
func ListAllWithdrawalsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&domain.WithdrawalRequest{}) // Start building the query
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status) // Filter by status
		}
		var withdrawals []domain.WithdrawalRequest // Slice to hold requests
		// Fetch all requests, newest first
		if err := query.Order("created_at desc").Find(&withdrawals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch withdrawal requests"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals}) // Return the list
	}
}

// ListAllGoldLocksHandler returns all gold locks, optionally filtered by
// status
func ListAllGoldLocksHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&domain.GoldLock{}) // Start building the query
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status) // Filter by status
		}
		var locks []domain.GoldLock // Slice to hold locks
		// Fetch all locks, newest first
		if err := query.Order("created_at desc").Find(&locks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gold locks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"gold_locks": locks}) // Return the list
	}
}

// decisionInput binds an approval decision and the target request ID
func decisionInput(c *gin.Context) (*domain.User, uint, string, bool) {
	admin := c.MustGet("adminUser").(*domain.User) // Admin loaded by the middleware
	id, err := strconv.Atoi(c.Param("id"))         // Parse the request ID
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return nil, 0, "", false
	}
	var req DecisionRequest // Bind JSON request to struct
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return nil, 0, "", false
	}
	// The only valid actions are approve and reject
	if req.Action != "approve" && req.Action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be approve or reject"})
		return nil, 0, "", false
	}
	return admin, uint(id), req.Action, true
}

// invalidateWalletCache drops a user's cached wallet after a mutation
func invalidateWalletCache(rdb *redis.Client, userID uint) {
	_ = utils.DeleteCache(context.Background(), rdb, "wallet:user:"+strconv.Itoa(int(userID)))
}

// DecideDepositHandler approves or rejects a pending deposit request
func DecideDepositHandler(engine *ledger.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, id, action, ok := decisionInput(c) // Parse the decision
		if !ok {
			return
		}
		var dep *domain.DepositRequest // Resulting request
		var err error
		// Apply the transition through the engine
		if action == "approve" {
			dep, err = engine.ApproveDeposit(c.Request.Context(), admin, id)
		} else {
			dep, err = engine.RejectDeposit(c.Request.Context(), admin, id)
		}
		if err != nil {
			writeLedgerError(c, err) // Map engine outcome to HTTP status
			return
		}
		invalidateWalletCache(rdb, dep.UserID)            // Drop the user's cached wallet
		c.JSON(http.StatusOK, gin.H{"deposit": dep}) // Return the updated request
	}
}

// DecideWithdrawalHandler approves or rejects a pending withdrawal request
func DecideWithdrawalHandler(engine *ledger.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, id, action, ok := decisionInput(c) // Parse the decision
		if !ok {
			return
		}
		var wd *domain.WithdrawalRequest // Resulting request
		var err error
		// Apply the transition through the engine
		if action == "approve" {
			wd, err = engine.ApproveWithdrawal(c.Request.Context(), admin, id)
		} else {
			wd, err = engine.RejectWithdrawal(c.Request.Context(), admin, id)
		}
		if err != nil {
			writeLedgerError(c, err) // Insufficient balance leaves the request pending
			return
		}
		invalidateWalletCache(rdb, wd.UserID)            // Drop the user's cached wallet
		c.JSON(http.StatusOK, gin.H{"withdrawal": wd}) // Return the updated request
	}
}

// DecideGoldLockHandler approves or rejects a pending gold lock
func DecideGoldLockHandler(engine *ledger.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, id, action, ok := decisionInput(c) // Parse the decision
		if !ok {
			return
		}
		var lock *domain.GoldLock // Resulting lock
		var err error
		// Apply the transition through the engine
		if action == "approve" {
			lock, err = engine.ApproveGoldLock(c.Request.Context(), admin, id)
		} else {
			lock, err = engine.RejectGoldLock(c.Request.Context(), admin, id)
		}
		if err != nil {
			writeLedgerError(c, err) // Insufficient holdings leaves the lock pending
			return
		}
		invalidateWalletCache(rdb, lock.UserID)            // Drop the user's cached wallet
		c.JSON(http.StatusOK, gin.H{"gold_lock": lock}) // Return the updated lock
	}
}
