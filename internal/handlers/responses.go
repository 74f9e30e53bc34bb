package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error" example:"entry debits and credits do not balance"`
	Code  string `json:"code" example:"UNBALANCED_ENTRY"`
}

// respondError maps a service error onto a status code and a stable code.
// Internal failures are logged and their detail kept out of the response.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.Code(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(status, errorResponse{Error: "Failed to " + action, Code: code})
		return
	}
	logger.Warn("Request rejected", slog.String("action", action), slog.String("error", err.Error()), slog.String("code", code))
	c.JSON(status, errorResponse{Error: err.Error(), Code: code})
}

func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format: " + err.Error(), Code: "VALIDATION_ERROR"})
}

// requestScope returns the workspace and acting user set by the middleware chain.
func requestScope(c *gin.Context) (logger *slog.Logger, workspaceID, userID string, ok bool) {
	logger = middleware.GetLoggerFromCtx(c.Request.Context())
	userID, hasUser := middleware.GetUserIDFromContext(c)
	if !hasUser {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"})
		return logger, "", "", false
	}
	workspaceID, hasWorkspace := middleware.GetWorkspaceIDFromContext(c)
	if !hasWorkspace {
		logger.Error("Workspace ID not found in context")
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Workspace ID required in path", Code: "VALIDATION_ERROR"})
		return logger, "", "", false
	}
	return logger, workspaceID, userID, true
}

// pathID reads a resource id from the path. An id that is not a UUID names no
// stored row, so it is answered with notFound before any service call.
func pathID(c *gin.Context, logger *slog.Logger, param string, notFound error) (string, bool) {
	id := c.Param(param)
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, logger, fmt.Errorf("%w: %q is not a valid id", notFound, id), "resolve "+param)
		return "", false
	}
	return id, true
}
