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

type ConnectionHandler struct {
	connections *service.ConnectionService
	logger      *zap.Logger
}

func NewConnectionHandler(connections *service.ConnectionService, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{connections: connections, logger: logger}
}

type sendRequestBody struct {
	Target uuid.UUID `json:"target" binding:"required"`
}

// SendRequest handles POST /v1/connections/requests.
func (h *ConnectionHandler) SendRequest(c *gin.Context) {
	var req sendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	if err := h.connections.SendRequest(c.Request.Context(), middleware.GetIdentity(c), req.Target); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPending handles GET /v1/connections/requests.
func (h *ConnectionHandler) ListPending(c *gin.Context) {
	pending, err := h.connections.Pending(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// Accept handles POST /v1/connections/requests/:requester/accept.
func (h *ConnectionHandler) Accept(c *gin.Context) {
	requester, err := uuid.Parse(c.Param("requester"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid requester identity"})
		return
	}

	if err := h.connections.Accept(c.Request.Context(), middleware.GetIdentity(c), requester); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reject handles POST /v1/connections/requests/:requester/reject.
func (h *ConnectionHandler) Reject(c *gin.Context) {
	requester, err := uuid.Parse(c.Param("requester"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid requester identity"})
		return
	}

	if err := h.connections.Reject(c.Request.Context(), middleware.GetIdentity(c), requester); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /v1/connections.
func (h *ConnectionHandler) List(c *gin.Context) {
	peers, err := h.connections.Connections(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, peers)
}
