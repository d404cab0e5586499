package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/users"
)

// RequireAuth verifies the bearer token and then checks the actor's account
// is still active: a valid, unexpired token for a deactivated account is
// rejected with 403. Handlers downstream read the actor via the user_id key.
func RequireAuth(tokens *TokenManager, userRepo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if _, err := userRepo.FindActiveByID(c.Request.Context(), claims.UserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.UserName)
		c.Next()
	}
}
