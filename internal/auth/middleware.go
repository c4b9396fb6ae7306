package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/config"
)

// Context keys
const (
	ContextKeyAuthType = "auth_type" // "none" or "bearer"
)

// AuthType indicates how the request was authenticated
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBearer AuthType = "bearer"
)

// Middleware guards mutating requests with a bearer token.
type Middleware struct {
	config config.Auth
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(cfg config.Auth) *Middleware {
	return &Middleware{config: cfg}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.config.Mode != config.AuthModeToken {
		return m.noAuthHandler()
	}

	return m.tokenHandler()
}

func (m *Middleware) noAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyAuthType, AuthTypeNone)
		c.Next()
	}
}

// tokenHandler lets reads through and requires a valid token for writes.
func (m *Middleware) tokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.tryBearerAuth(c) {
			c.Set(ContextKeyAuthType, AuthTypeBearer)
			c.Next()
			return
		}

		if IsReadMethod(c.Request.Method) {
			c.Set(ContextKeyAuthType, AuthTypeNone)
			c.Next()
			return
		}

		c.Header("WWW-Authenticate", `Bearer realm="books"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
	}
}

// tryBearerAuth checks the Authorization header against the configured hash.
func (m *Middleware) tryBearerAuth(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || m.config.TokenHash == "" {
		return false
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return false
	}
	return CheckToken(token, m.config.TokenHash) == nil
}

// IsReadMethod reports whether method never modifies state.
func IsReadMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// GetAuthType extracts the authentication type from the Gin context.
func GetAuthType(c *gin.Context) AuthType {
	if v, exists := c.Get(ContextKeyAuthType); exists {
		if t, ok := v.(AuthType); ok {
			return t
		}
	}
	return AuthTypeNone
}
