package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"microposts-backend/internal/shared"
	"microposts-backend/internal/shared/response"
	"microposts-backend/pkg/jwt"
	"microposts-backend/pkg/logger"
)

// TokenValidator is satisfied by *jwt.Manager
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware trusts the identity asserted by a valid bearer token and
// stores its user id under shared.ContextKeyUserID.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify the token
		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			logger.Debug("rejected access token: " + err.Error())
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(shared.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or false on public routes
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(shared.ContextKeyUserID)
	return userID, userID != ""
}
