package productcontroller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ameerkhan0987/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var sortColumns = map[string]bool{
	"rating":     true,
	"price":      true,
	"name":       true,
	"created_at": true,
}

// GetProducts lists the catalog. Defaults to highest-rated first, which is
// what the storefront home page shows. Supports a case-insensitive search
// across name and description and an exact category filter.
//
// GET /products?search=&category=&sort_by=&order=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		category := c.Query("category")
		sortBy := c.DefaultQuery("sort_by", "rating")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		if !sortColumns[sortBy] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}

		query := db.Model(&models.Product{})

		if search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(name) LIKE ? OR LOWER(description) LIKE ?",
				likePattern, likePattern,
			)
		}

		if category != "" {
			query = query.Where("category = ?", category)
		}

		orderClause := fmt.Sprintf("%s %s", sortBy, sortOrder)
		var products []models.Product
		if err := query.Order(orderClause).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
