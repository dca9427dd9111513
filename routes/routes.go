package routes

import (
	recommendcontroller "github.com/ameerkhan0987/storefront-api/controllers/recommend"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, User, Admin and
// Recommendation route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gateway *recommendcontroller.Gateway) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Storefront reads + JWT-protected user routes
	SetupUserRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)

	// Recommendation handler
	SetupRecommendationRoutes(r, db, gateway)
}
