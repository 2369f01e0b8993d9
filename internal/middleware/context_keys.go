package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the acting user's ID in the context.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the acting user's role in the context.
const userRoleKey = contextKey("userRole")

// actorHeader and roleHeader are set by the external authentication layer in
// front of this service; authentication itself is out of scope here.
const (
	actorHeader = "X-User-ID"
	roleHeader  = "X-User-Role"
)

// ActorMiddleware copies the acting user's ID and role from the trusted auth
// headers into the request context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if actor := c.GetHeader(actorHeader); actor != "" {
			ctx = context.WithValue(ctx, userIDKey, actor)
		}
		if role := c.GetHeader(roleHeader); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromContext retrieves the acting user's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	roleVal := c.Request.Context().Value(userRoleKey)
	if roleVal == nil {
		return "", false
	}
	role, ok := roleVal.(string)
	if !ok {
		return "", false
	}
	return role, true
}
