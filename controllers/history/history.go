package historycontroller

import (
	"net/http"
	"time"

	"github.com/ameerkhan0987/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecordViewInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// RecordView appends a browsing-history row for the session user. The log
// is append-only: viewing the same product again adds another row.
//
// POST /user/history
func RecordView(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input RecordViewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		entry := models.BrowsingHistoryEntry{
			UserID:    userID,
			ProductID: product.ID,
			ViewedAt:  time.Now(),
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// GetHistory returns the 10 most recently viewed products, newest first.
// GET /user/history
func GetHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var entries []models.BrowsingHistoryEntry
		if err := db.Preload("Product").Where("user_id = ?", userID).
			Order("viewed_at desc").Limit(10).Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
