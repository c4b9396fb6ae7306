// Package readonly blocks write operations when the service runs in read-only mode.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const blockedMessage = "the service is running in read-only mode"

// ContextKeyReadOnly stores the read-only flag in the request context.
const ContextKeyReadOnly = "read_only"

// Middleware blocks write operations in read-only mode.
// GET, HEAD and OPTIONS are always allowed.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a read-only mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
	}
}
