package routes

import (
	productcontroller "github.com/ameerkhan0987/storefront-api/controllers/product"
	"github.com/ameerkhan0987/storefront-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the "/admin/*" catalog management endpoints.
// Requires the X-API-KEY header.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.POST("/products", productcontroller.CreateProduct(db))
		adminGroup.PUT("/products/:id", productcontroller.UpdateProduct(db))
		adminGroup.DELETE("/products/:id", productcontroller.DeleteProduct(db))
		adminGroup.GET("/products/export", productcontroller.ExportProductsToExcel(db))
	}
}
