package api

import (
	"net/http" // HTTP status codes

	"goldvault/internal/domain" // Importing domain models
	"goldvault/internal/ledger" // Ledger engine

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point decimal arithmetic
	"gorm.io/gorm"                  // GORM ORM library
)

// PriceAlertRequest represents a price alert creation request
type PriceAlertRequest struct {
	TargetPrice decimal.Decimal `json:"target_price" binding:"required"` // Price threshold
	AlertType   string          `json:"alert_type" binding:"required"`   // ABOVE or BELOW
}

// CreateSnapshotHandler values the caller's wallet at the current price and
// stores the result
func CreateSnapshotHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		snap, err := engine.Snapshot(c.Request.Context(), userID) // Value the portfolio
		if err != nil {
			writeLedgerError(c, err) // Map engine outcome to HTTP status
			return
		}
		c.JSON(http.StatusCreated, gin.H{"snapshot": snap}) // Return the snapshot
	}
}

// ListSnapshotsHandler returns the caller's snapshots, newest first
func ListSnapshotsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var snapshots []domain.PortfolioSnapshot // Slice to hold snapshots
		// Fetch the user's snapshots
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&snapshots).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch snapshots"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"snapshots": snapshots}) // Return the list
	}
}

// CreatePriceAlertHandler creates a threshold watch for the caller
func CreatePriceAlertHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req PriceAlertRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || !req.TargetPrice.IsPositive() {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate the direction
		if req.AlertType != domain.AlertAbove && req.AlertType != domain.AlertBelow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Alert type must be ABOVE or BELOW"})
			return
		}
		// Create the alert
		alert := domain.PriceAlert{
			UserID:      userID,          // Owning user
			TargetPrice: req.TargetPrice, // Threshold
			AlertType:   req.AlertType,   // Direction
			IsActive:    true,            // Active until deleted
		}
		// Save the alert
		if err := db.Create(&alert).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"alert": alert}) // Return the alert
	}
}

// ListPriceAlertsHandler returns the caller's active alerts
func ListPriceAlertsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var alerts []domain.PriceAlert // Slice to hold alerts
		// Only active alerts are listed
		if err := db.Where("user_id = ? AND is_active = ?", userID, true).Order("created_at desc").Find(&alerts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"alerts": alerts}) // Return the list
	}
}

// DeletePriceAlertHandler soft-deletes an alert by flipping its active flag
func DeletePriceAlertHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			return
		}
		var alert domain.PriceAlert // Find the alert, scoped to the caller
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&alert).Error; err != nil {
			// Alerts of other users look like not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		// Soft delete: the row stays, the flag flips
		if err := db.Model(&alert).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete alert"})
			return
		}
		c.Status(http.StatusNoContent) // Return no content
	}
}
