package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/service"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messages *service.MessageService
	logger   *zap.Logger
}

func NewMessageHandler(messages *service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Send handles POST /v1/conversations/:user/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	recipient, err := uuid.Parse(c.Param("user"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid recipient identity"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), middleware.GetIdentity(c), recipient, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List handles GET /v1/conversations/:user/messages?before=42&limit=50.
//
// Without params this is the full-log read the client polls;
// before/limit give a bounded window for long conversations. limit caps
// at 500.
func (h *MessageHandler) List(c *gin.Context) {
	other, err := uuid.Parse(c.Param("user"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid user identity"})
		return
	}

	var before int64
	if b := c.Query("before"); b != "" {
		before, err = strconv.ParseInt(b, 10, 64)
		if err != nil || before < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid 'before' parameter"})
			return
		}
	}

	var limit int
	if l := c.Query("limit"); l != "" {
		limit, err = strconv.Atoi(l)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid 'limit' parameter"})
			return
		}
		if limit > 500 {
			limit = 500
		}
	}

	messages, err := h.messages.List(c.Request.Context(), middleware.GetIdentity(c), other, before, limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
