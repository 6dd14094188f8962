package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"goldvault/internal/domain" // Importing domain models
	"goldvault/internal/ledger" // Ledger engine
	"goldvault/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Fixed-point decimal arithmetic
	"gorm.io/gorm"                  // GORM ORM library
)

// Cache keys for market data
const (
	currentPriceCacheKey = "goldprice:current" // Latest published price
	newsCacheKey         = "marketnews:latest" // Latest news items
)

// GoldPriceRequest represents an admin price publication
type GoldPriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"` // Price per ounce
}

// ListGoldPricesHandler returns the published price series, newest first
func ListGoldPricesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pageParams(c) // Pagination parameters
		offset := (page - 1) * pageSize // Calculate offset
		var prices []domain.GoldPrice   // Slice to hold price points
		// Fetch the series newest first; ties broken by insertion order
		if err := db.Order("created_at desc, id desc").Offset(offset).Limit(pageSize).Find(&prices).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prices"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"prices": prices}) // Return the series
	}
}

// GetCurrentPriceHandler returns the latest published price
func GetCurrentPriceHandler(engine *ledger.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached decimal.Decimal  // Cached price value
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, currentPriceCacheKey, &cached)
		if err == nil && found {
			// Return cached price
			c.JSON(http.StatusOK, gin.H{"price": cached, "cached": true})
			return
		}
		// If not in cache, ask the oracle
		price, err := engine.CurrentPrice(c.Request.Context())
		if err != nil {
			writeLedgerError(c, err) // No price yet maps to bad request
			return
		}
		_ = utils.SetCache(ctx, rdb, currentPriceCacheKey, price, 30*time.Second) // Cache for 30 seconds
		c.JSON(http.StatusOK, gin.H{"price": price, "cached": false})             // Return the price
	}
}

// RecordGoldPriceHandler publishes a new price point (admin only)
func RecordGoldPriceHandler(engine *ledger.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := c.MustGet("adminUser").(*domain.User) // Admin loaded by the middleware
		var req GoldPriceRequest                       // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Record the price through the oracle
		price, err := engine.RecordPrice(c.Request.Context(), admin, req.Price)
		if err != nil {
			writeLedgerError(c, err) // Map engine outcome to HTTP status
			return
		}
		// Invalidate the cached current price
		_ = utils.DeleteCache(context.Background(), rdb, currentPriceCacheKey)
		c.JSON(http.StatusCreated, gin.H{"gold_price": price}) // Return the price point
	}
}

// ListMarketNewsHandler returns the latest 10 news items (public)
func ListMarketNewsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()  // Context for Redis operations
		var cached []domain.MarketNews // Cached news items
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, newsCacheKey, &cached)
		if err == nil && found {
			// Return cached news
			c.JSON(http.StatusOK, gin.H{"news": cached, "cached": true})
			return
		}
		var news []domain.MarketNews // Slice to hold news items
		// Latest 10 items by publication date
		if err := db.Order("published_date desc").Limit(10).Find(&news).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
			return
		}
		_ = utils.SetCache(ctx, rdb, newsCacheKey, news, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"news": news, "cached": false})      // Return the news
	}
}
