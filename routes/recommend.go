package routes

import (
	recommendcontroller "github.com/ameerkhan0987/storefront-api/controllers/recommend"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRecommendationRoutes registers the recommendation handler. The
// endpoint takes the user id in the body rather than from a session token,
// matching the contract the storefront pages call it with; CORS pre-flight
// is answered by the global middleware.
func SetupRecommendationRoutes(r *gin.Engine, db *gorm.DB, gateway *recommendcontroller.Gateway) {
	r.POST("/recommendations", recommendcontroller.GetRecommendations(db, gateway))
}
