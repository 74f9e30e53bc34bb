package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkspaceScope reads the workspace ID from the route and attaches it to the
// request context and logger. Whether the user may act in that workspace is
// decided upstream.
func WorkspaceScope(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		workspaceID := c.Param(param)
		if _, err := uuid.Parse(workspaceID); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "workspace ID must be a UUID", "code": "VALIDATION_ERROR"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), workspaceIDKey, workspaceID)
		ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("workspace_id", workspaceID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
