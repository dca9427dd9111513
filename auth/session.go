package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ameerkhan0987/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type SessionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
}

// CreateSession signs a user in by email. The profile row is created on
// first sign-in and updated afterwards; the response carries the JWT the
// storefront sends on every /user call.
//
// POST /auth/session
func CreateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		userID := userIDForEmail(email)

		var profile models.Profile
		err := db.Where("id = ?", userID).First(&profile).Error
		if err == gorm.ErrRecordNotFound {
			profile = models.Profile{
				ID:       userID,
				Email:    email,
				FullName: req.FullName,
			}
			if err := db.Create(&profile).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
				return
			}
		} else if err == nil {
			if req.FullName != "" && req.FullName != profile.FullName {
				db.Model(&profile).Update("full_name", req.FullName)
			}
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    profile,
			"token":   IssueJWT(profile.ID, profile.Email, profile.FullName),
		})
	}
}

// IssueJWT generates a JWT token for a user
func IssueJWT(userID, email, name string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"name":    name,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}

	return signedToken
}

// userIDForEmail derives a stable user id from the email address so the
// same address always maps to the same profile row.
func userIDForEmail(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:16])
}
