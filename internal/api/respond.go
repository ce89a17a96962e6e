package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/apperrors"
	"go.uber.org/zap"
)

// statusOf maps the error taxonomy onto HTTP. FailedPrecondition (not
// onboarded, not connected) gets 412 so the client can tell "fix your
// state" apart from 404 "no such thing" and 409 "already exists".
func statusOf(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeAlreadyExists:
		return http.StatusConflict
	case apperrors.CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the uniform error body. Coded errors pass
// their message through; anything else is an internal failure that gets
// logged and masked.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var app *apperrors.AppError
	if errors.As(err, &app) && app.Code != apperrors.CodeInternal {
		c.JSON(statusOf(app.Code), gin.H{
			"code":  app.Code,
			"error": app.Message,
		})
		return
	}

	logger.Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  apperrors.CodeInternal,
		"error": "internal error",
	})
}
