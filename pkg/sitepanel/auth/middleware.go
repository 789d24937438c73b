package auth

import (
	"net/http"
	"strings"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyEmail is the key for email in gin context
	ContextKeyEmail = "email"
	// ContextKeyRole is the key for role in gin context
	ContextKeyRole = "role"
	// ContextKeyWebsite is the key for the resolved website in gin context
	ContextKeyWebsite = "website"
)

// AuthMiddleware validates JWT tokens and sets user info in context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			if err == ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		// Set user info in context
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireAdmin middleware checks if the user has the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeyRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if role != string(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetRole returns the role from the gin context
func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ContextKeyRole)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// WebsiteMiddleware resolves the :website path param into a models.Website
// and stores it in context. Unknown ids are a 404 before any handler runs.
func WebsiteMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var website models.Website
		if err := db.First(&website, "id = ?", c.Param("website")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
			c.Abort()
			return
		}

		c.Set(ContextKeyWebsite, &website)
		c.Next()
	}
}

// GetWebsite returns the website resolved by WebsiteMiddleware.
func GetWebsite(c *gin.Context) *models.Website {
	website, exists := c.Get(ContextKeyWebsite)
	if !exists {
		return nil
	}
	return website.(*models.Website)
}

// ContentAccessMiddleware gates website-scoped content routes. Admins pass
// through; a client user must have the website assigned, and an unassigned
// website is indistinguishable from a nonexistent one (404, not 403).
// Must run after AuthMiddleware and WebsiteMiddleware.
func ContentAccessMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := GetRole(c)
		if role != string(models.RoleClient) {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		website := GetWebsite(c)

		var client models.Client
		if err := db.Where("user_id = ?", userID).First(&client).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
			c.Abort()
			return
		}

		if website == nil || !client.HasWebsite(db, website.ID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
			c.Abort()
			return
		}

		c.Next()
	}
}
