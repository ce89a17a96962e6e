package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/auth"
	"github.com/linkup-social/linkup/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthHandler is the built-in identity provider: the only public
// endpoints besides health. Registering mints an identity and a token;
// onboarding stays a separate, authenticated step so the client can
// still distinguish "no token" from "no profile".
type AuthHandler struct {
	credentials repository.CredentialRepository
	jwtSecret   string
	logger      *zap.Logger
}

func NewAuthHandler(credentials repository.CredentialRepository, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{credentials: credentials, jwtSecret: jwtSecret, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	cred, err := h.credentials.Create(c.Request.Context(), req.Email, string(hash))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	token, err := auth.GenerateToken(cred.Identity, cred.Email, h.jwtSecret, tokenTTL)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.logger.Info("identity registered", zap.String("identity", cred.Identity.String()))
	c.JSON(http.StatusCreated, authResponse{Token: token})
}

// Login handles POST /v1/auth/login. One generic failure for unknown
// email and wrong password alike.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidArgument, "error": err.Error()})
		return
	}

	cred, err := h.credentials.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if cred == nil {
		writeError(c, h.logger, apperrors.ErrInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		writeError(c, h.logger, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := auth.GenerateToken(cred.Identity, cred.Email, h.jwtSecret, tokenTTL)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token})
}
