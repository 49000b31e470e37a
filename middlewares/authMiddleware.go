package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

const userContextKey = "currentUser"

// AuthMiddleware validates the bearer token and resolves the host user it
// names. Requests without a token pass through unauthenticated; handlers
// that need a user reject them.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(auth, bearer) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		auth = auth[len(bearer):]

		validate, err := utils.JwtValidate(auth)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claim, _ := validate.Claims.(*utils.JwtCustomClaim)

		var user models.User
		if err := db.Where("username = ?", claim.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(userContextKey, &user)

		ctx := utils.SetUserNameInContext(c.Request.Context(), user.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UserFromContext returns the authenticated user set by AuthMiddleware,
// or nil.
func UserFromContext(c *gin.Context) *models.User {
	raw, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := raw.(*models.User)
	return user
}
