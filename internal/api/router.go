package api

import (
	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Connection  *ConnectionHandler
	Message     *MessageHandler
	Call        *CallHandler
	WS          *WSHandler
	HealthCheck gin.HandlerFunc
}

// NewRouter wires the RPC façade. Health, register, and login are
// public; everything else sits behind the identity middleware.
func NewRouter(jwtSecret string, h Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/v1/health", h.HealthCheck)
	router.POST("/v1/auth/register", h.Auth.Register)
	router.POST("/v1/auth/login", h.Auth.Login)

	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(jwtSecret))

	v1.POST("/onboard", h.Profile.Onboard)
	v1.GET("/me/profile", h.Profile.GetMe)
	v1.PUT("/me/profile", h.Profile.SaveMe)
	v1.GET("/me/role", h.Profile.GetRole)
	v1.GET("/me/admin", h.Profile.IsAdmin)
	v1.GET("/users/:id", h.Profile.GetUser)
	v1.GET("/usernames/:username", h.Profile.GetUserByUsername)
	v1.POST("/admin/roles", h.Profile.AssignRole)

	v1.POST("/connections/requests", h.Connection.SendRequest)
	v1.GET("/connections/requests", h.Connection.ListPending)
	v1.POST("/connections/requests/:requester/accept", h.Connection.Accept)
	v1.POST("/connections/requests/:requester/reject", h.Connection.Reject)
	v1.GET("/connections", h.Connection.List)

	v1.POST("/conversations/:user/messages", h.Message.Send)
	v1.GET("/conversations/:user/messages", h.Message.List)

	v1.POST("/calls", h.Call.Initiate)
	v1.POST("/calls/:peer/accept", h.Call.Accept)
	v1.POST("/calls/:peer/decline", h.Call.Decline)
	v1.POST("/calls/:peer/end", h.Call.End)
	v1.GET("/me/call", h.Call.GetState)

	v1.GET("/ws", h.WS.Serve)

	logger.Info("router initialized")
	return router
}
