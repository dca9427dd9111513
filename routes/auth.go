package routes

import (
	"github.com/ameerkhan0987/storefront-api/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the session endpoint the storefront calls at
// sign-in.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/auth/session", auth.CreateSession(db))
}
