package recommendcontroller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/ameerkhan0987/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const systemInstruction = "You are a product recommendation AI. Return only valid JSON arrays with no additional text."

const promptTemplate = `Based on the following user activity, suggest 6 product IDs that would be most relevant:

Recently Viewed: %s
Cart Items: %s
Past Purchases: %s

Available product categories: electronics, accessories, smart home

Provide diverse recommendations across categories that complement their interests. Return ONLY a JSON array of 6 product category preferences in this format:
["electronics", "accessories", "smart home", "electronics", "accessories", "smart home"]`

// fallbackCategoryPreferences is used whenever the model's output does not
// parse as a JSON array of strings.
var fallbackCategoryPreferences = []string{
	"electronics", "accessories", "smart home",
	"electronics", "accessories", "smart home",
}

type RecommendationsRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// GetRecommendations runs the recommendation pipeline: read the user's
// browsing, cart and purchase signals, ask the model for an ordered list of
// category preferences, then pick the top-rated product of each category.
//
// POST /recommendations
func GetRecommendations(db *gorm.DB, gateway *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecommendationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		viewed, cart, purchased, err := fetchSignals(db, req.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		prompt := fmt.Sprintf(promptTemplate,
			joinOrNone(viewed), joinOrNone(cart), joinOrNone(purchased))

		content, err := gateway.Complete(systemInstruction, prompt)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
				return
			}
			if errors.Is(err, ErrCreditsExhausted) {
				c.JSON(http.StatusPaymentRequired, gin.H{"error": "AI credits exhausted. Please add credits to continue."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var categoryPreferences []string
		if err := json.Unmarshal([]byte(content), &categoryPreferences); err != nil {
			log.Printf("falling back to balanced recommendations, model output did not parse: %v", err)
			categoryPreferences = fallbackCategoryPreferences
		}

		// One lookup per preference, in model order; duplicates allowed and
		// categories without a product contribute nothing.
		recommendations := make([]models.Product, 0, len(categoryPreferences))
		for _, category := range categoryPreferences {
			var matches []models.Product
			if err := db.Where("category = ?", category).
				Order("rating desc").Limit(1).Find(&matches).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if len(matches) > 0 {
				recommendations = append(recommendations, matches[0])
			}
		}

		c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
	}
}

// fetchSignals reads the three activity signals and reduces each to the
// product names the prompt embeds: up to 10 most recent views, every cart
// row, up to 10 most recent purchases.
func fetchSignals(db *gorm.DB, userID string) (viewed, cart, purchased []string, err error) {
	var history []models.BrowsingHistoryEntry
	if err = db.Preload("Product").Where("user_id = ?", userID).
		Order("viewed_at desc").Limit(10).Find(&history).Error; err != nil {
		return nil, nil, nil, err
	}
	for _, h := range history {
		if h.Product.Name != "" {
			viewed = append(viewed, h.Product.Name)
		}
	}

	var items []models.CartItem
	if err = db.Preload("Product").Where("user_id = ?", userID).
		Find(&items).Error; err != nil {
		return nil, nil, nil, err
	}
	for _, item := range items {
		if item.Product.Name != "" {
			cart = append(cart, item.Product.Name)
		}
	}

	var purchases []models.Purchase
	if err = db.Preload("Product").Where("user_id = ?", userID).
		Order("purchased_at desc").Limit(10).Find(&purchases).Error; err != nil {
		return nil, nil, nil, err
	}
	for _, p := range purchases {
		if p.Product.Name != "" {
			purchased = append(purchased, p.Product.Name)
		}
	}

	return viewed, cart, purchased, nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
