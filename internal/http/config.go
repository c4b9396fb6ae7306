package http

import (
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/events"
	"github.com/mrlokans/bookshelf/internal/readonly"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store    BookStore
	Database *database.Database

	// Counts records for /health; usually the same repository as Store
	Counter BookCounter

	// Change notifications (optional)
	Publisher events.Publisher

	// Mount point of the books resource, e.g. "/books"
	BasePath string

	// Optional middleware
	AuthMiddleware     *auth.Middleware
	ReadOnlyMiddleware *readonly.Middleware

	// Application info
	Version string
}
