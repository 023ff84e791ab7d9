// Package middleware holds gin middleware for the API server.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/auth"
	"github.com/abhisek/planwise/internal/logger"
)

// UserIDKey is the gin context key the auth middleware stores the
// authenticated user ID under.
const UserIDKey = "user_id"

// AuthMiddleware verifies bearer tokens and attaches the user ID to the
// request context.
type AuthMiddleware struct {
	log  *logger.Logger
	auth *auth.Service
}

// NewAuthMiddleware creates the auth middleware.
func NewAuthMiddleware(log *logger.Logger, authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		log:  log.With("middleware", "auth"),
		auth: authService,
	}
}

// RequireAuth aborts with 401 unless the request carries a valid token.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		userID, err := am.auth.ParseToken(token)
		if err != nil {
			am.log.Debug("token rejected", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
