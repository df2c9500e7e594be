package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monster-backend/internal/config"
	"monster-backend/internal/shared/response"
	"monster-backend/pkg/jwt"
)

// Context keys set by Auth and read by handlers.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// Auth validates the bearer token and puts the actor (id + role) into the context.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// Require gates a route on a role-table permission.
// Must run after Auth; runs before request validation, so an actor without the
// permission never reaches the validation or service layer.
func Require(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)

		if !config.HasPermission(role, permission) {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Actor returns the authenticated user id from the context.
func Actor(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := v.(uuid.UUID)
	return userID, ok
}
