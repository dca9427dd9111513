package productcontroller

import (
	"net/http"

	"github.com/ameerkhan0987/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Rating      float64 `json:"rating" binding:"gte=0,lte=5"`
	RatingCount int     `json:"rating_count" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
	InStock     *bool   `json:"in_stock"`
}

// CreateProduct adds a product to the catalog.
// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		inStock := true
		if input.InStock != nil {
			inStock = *input.InStock
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Category:    input.Category,
			Price:       input.Price,
			Rating:      input.Rating,
			RatingCount: input.RatingCount,
			ImageURL:    input.ImageURL,
			InStock:     inStock,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
