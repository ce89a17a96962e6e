package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/service"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *zap.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

type onboardRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required"`
}

// Onboard handles POST /v1/onboard.
func (h *ProfileHandler) Onboard(c *gin.Context) {
	var req onboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	profile, err := h.profiles.Onboard(c.Request.Context(), middleware.GetIdentity(c), req.DisplayName, req.Email, req.Username)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetMe handles GET /v1/me/profile. A missing profile is 200 with a
// null profile field, the client's cue to route to onboarding.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	profile, err := h.profiles.CallerProfile(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type saveProfileRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

// SaveMe handles PUT /v1/me/profile.
func (h *ProfileHandler) SaveMe(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	err := h.profiles.SaveCallerProfile(c.Request.Context(), middleware.GetIdentity(c), models.UserProfile{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetUser handles GET /v1/users/:id.
func (h *ProfileHandler) GetUser(c *gin.Context) {
	identity, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": "invalid identity"})
		return
	}

	profile, err := h.profiles.Profile(c.Request.Context(), identity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetUserByUsername handles GET /v1/usernames/:username.
func (h *ProfileHandler) GetUserByUsername(c *gin.Context) {
	profile, err := h.profiles.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetRole handles GET /v1/me/role.
func (h *ProfileHandler) GetRole(c *gin.Context) {
	role, err := h.profiles.Role(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

type assignRoleRequest struct {
	Identity uuid.UUID       `json:"identity" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
}

// AssignRole handles POST /v1/admin/roles.
func (h *ProfileHandler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	err := h.profiles.AssignRole(c.Request.Context(), middleware.GetIdentity(c), req.Identity, req.Role)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// IsAdmin handles GET /v1/me/admin.
func (h *ProfileHandler) IsAdmin(c *gin.Context) {
	isAdmin, err := h.profiles.IsAdmin(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}
