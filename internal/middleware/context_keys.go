package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey      = contextKey("userID")
	workspaceIDKey = contextKey("workspaceID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying the acting user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetWorkspaceIDFromContext retrieves the workspace ID resolved by WorkspaceScope.
func GetWorkspaceIDFromContext(c *gin.Context) (string, bool) {
	workspaceID, ok := c.Request.Context().Value(workspaceIDKey).(string)
	return workspaceID, ok && workspaceID != ""
}
