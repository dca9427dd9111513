package accountcontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/ameerkhan0987/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// generatePurchaseRef builds a unique reference shared by all purchases of
// one checkout. Example: 20250908130500-<uuid4>
func generatePurchaseRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Checkout converts the session user's cart into purchase rows at the
// current product price, one row per unit, then empties the cart. Product
// rows are locked for the duration so a concurrent checkout cannot oversell.
//
// POST /user/checkout
func Checkout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var items []models.CartItem
		if err := db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		ref := generatePurchaseRef()
		var purchases []models.Purchase

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, item := range items {
				productQuery := tx
				// sqlite (tests) has no row locking
				if tx.Dialector.Name() == "postgres" {
					productQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
				}
				var product models.Product
				if err := productQuery.First(&product, item.ProductID).Error; err != nil {
					return err
				}
				if !product.InStock {
					return errors.New("product out of stock: " + product.Name)
				}

				for i := 0; i < item.Quantity; i++ {
					purchase := models.Purchase{
						Reference:       ref,
						UserID:          userID,
						ProductID:       product.ID,
						PriceAtPurchase: product.Price,
						PurchasedAt:     time.Now(),
					}
					if err := tx.Create(&purchase).Error; err != nil {
						return err
					}
					purchases = append(purchases, purchase)
				}
			}

			return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		for _, p := range purchases {
			broadcastPurchase(p)
		}

		c.JSON(http.StatusCreated, gin.H{
			"reference": ref,
			"purchases": purchases,
		})
	}
}
