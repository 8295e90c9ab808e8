package middleware

import (
	"net/http"
	"strings"

	"gymbooking/internal/domain"
	"gymbooking/internal/pkg/jwt"
	"gymbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth trusts the bearer token and stores the caller in the gin context.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		if !setPrincipal(c, tokens, strings.TrimSpace(parts[1])) {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
		c.Next()
	}
}

// QueryTokenAuth reads the token from ?token=, for websocket upgrades where
// browsers cannot set headers.
func QueryTokenAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("token")
		if raw == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "token query parameter is required")
			return
		}
		if !setPrincipal(c, tokens, raw) {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
		c.Next()
	}
}

func setPrincipal(c *gin.Context, tokens *jwt.Service, raw string) bool {
	claims, err := tokens.ValidateToken(raw)
	if err != nil {
		return false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return false
	}
	role := domain.UserRole(claims.Role)
	if !role.Valid() {
		return false
	}
	c.Set(ctxUserID, id)
	c.Set(ctxRole, string(role))
	return true
}

// Principal returns the authenticated caller. ok is false on routes that did
// not pass through JWTAuth.
func Principal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return domain.Principal{}, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return domain.Principal{}, false
	}
	return domain.Principal{ID: id, Role: domain.UserRole(c.GetString(ctxRole))}, true
}

// MustPrincipal answers 401 and returns false when no caller is present.
func MustPrincipal(c *gin.Context) (domain.Principal, bool) {
	p, ok := Principal(c)
	if !ok {
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}
	return p, ok
}
