package routes

import (
	accountcontroller "github.com/ameerkhan0987/storefront-api/controllers/account"
	cartcontroller "github.com/ameerkhan0987/storefront-api/controllers/cart"
	historycontroller "github.com/ameerkhan0987/storefront-api/controllers/history"
	productcontroller "github.com/ameerkhan0987/storefront-api/controllers/product"
	"github.com/ameerkhan0987/storefront-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the public catalog reads and all "/user/*"
// endpoints. The /user group requires a valid JWT.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Browse Products (public) ────────────────
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))

	// ──────────────── Live purchase feed ────────────────
	r.GET("/ws/purchases", accountcontroller.PurchaseFeedHandler)

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Account ────────────────
		userGroup.GET("/profile", accountcontroller.GetProfile(db))
		userGroup.PUT("/profile", accountcontroller.UpdateProfile(db))
		userGroup.GET("/purchases", accountcontroller.GetPurchases(db))
		userGroup.POST("/checkout", accountcontroller.Checkout(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartcontroller.GetCart(db))
			cartGroup.POST("", cartcontroller.AddCartItem(db))
			cartGroup.PUT("/:product_id", cartcontroller.UpdateCartItemQuantity(db))
			cartGroup.DELETE("/:product_id", cartcontroller.DeleteCartItem(db))
			cartGroup.DELETE("", cartcontroller.ClearCart(db))
		}

		// ──────────────── Browsing History ────────────────
		userGroup.POST("/history", historycontroller.RecordView(db))
		userGroup.GET("/history", historycontroller.GetHistory(db))
	}
}
