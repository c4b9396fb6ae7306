package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware(31536000))

	// Read-only mode rejects writes before authentication is considered
	if cfg.ReadOnlyMiddleware != nil && cfg.ReadOnlyMiddleware.IsEnabled() {
		router.Use(cfg.ReadOnlyMiddleware.Handler())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Counter, cfg.Version)
	booksController := NewBooksController(cfg.Store, cfg.Publisher)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	basePath := normalizeBasePath(cfg.BasePath)
	group := router.Group(basePath)

	// Collection routes answer with and without the trailing slash
	collection := []string{"/"}
	if basePath != "/" {
		collection = append(collection, "")
	}
	for _, path := range collection {
		group.POST(path, booksController.Create)
		group.GET(path, booksController.List)
	}
	group.GET("/search", booksController.Search)
	group.GET("/search/", booksController.Search)

	group.GET("/:id", booksController.Get)
	group.PUT("/:id", booksController.Update)
	group.PATCH("/:id", booksController.Update)
	group.DELETE("/:id", booksController.Delete)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	})

	return router
}

// normalizeBasePath returns "/" or a path with a leading slash and no trailing
// slash. An empty path falls back to the default mount point.
func normalizeBasePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = config.DefaultBooksBasePath
	}
	return "/" + strings.Trim(path, "/")
}
