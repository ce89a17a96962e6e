package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/auth"
)

const (
	ContextKeyIdentity = "identity"
	ContextKeyEmail    = "email"
)

// AuthMiddleware resolves the caller identity from the Authorization
// header. A missing or invalid token aborts with 401 and the
// UNAUTHENTICATED code; handlers behind this middleware can rely on
// GetIdentity returning a real principal.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthenticated(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthenticated(c, "invalid authorization format, expected: Bearer <token>")
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		c.Set(ContextKeyIdentity, claims.Identity)
		c.Set(ContextKeyEmail, claims.Email)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":  apperrors.CodeUnauthenticated,
		"error": msg,
	})
}

// GetIdentity returns the resolved caller identity, or uuid.Nil when the
// middleware did not run (public routes).
func GetIdentity(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func GetEmail(c *gin.Context) string {
	val, exists := c.Get(ContextKeyEmail)
	if !exists {
		return ""
	}
	email, ok := val.(string)
	if !ok {
		return ""
	}
	return email
}
