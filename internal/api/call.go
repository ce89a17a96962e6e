package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/service"
	"go.uber.org/zap"
)

type CallHandler struct {
	calls  *service.CallService
	logger *zap.Logger
}

func NewCallHandler(calls *service.CallService, logger *zap.Logger) *CallHandler {
	return &CallHandler{calls: calls, logger: logger}
}

type initiateCallRequest struct {
	Callee uuid.UUID `json:"callee" binding:"required"`
}

// Initiate handles POST /v1/calls.
func (h *CallHandler) Initiate(c *gin.Context) {
	var req initiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	if err := h.calls.Initiate(c.Request.Context(), middleware.GetIdentity(c), req.Callee); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Accept handles POST /v1/calls/:peer/accept.
func (h *CallHandler) Accept(c *gin.Context) {
	initiator, err := uuid.Parse(c.Param("peer"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid initiator identity"})
		return
	}

	if err := h.calls.Accept(c.Request.Context(), middleware.GetIdentity(c), initiator); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Decline handles POST /v1/calls/:peer/decline.
func (h *CallHandler) Decline(c *gin.Context) {
	initiator, err := uuid.Parse(c.Param("peer"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid initiator identity"})
		return
	}

	if err := h.calls.Decline(c.Request.Context(), middleware.GetIdentity(c), initiator); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// End handles POST /v1/calls/:peer/end.
func (h *CallHandler) End(c *gin.Context) {
	partner, err := uuid.Parse(c.Param("peer"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid partner identity"})
		return
	}

	if err := h.calls.End(c.Request.Context(), middleware.GetIdentity(c), partner); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetState handles GET /v1/me/call. The polled endpoint: null means no
// call, isActive distinguishes ringing from active.
func (h *CallHandler) GetState(c *gin.Context) {
	state, err := h.calls.State(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"call": state})
}
