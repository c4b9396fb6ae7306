package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/cli"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/events"
	"github.com/mrlokans/bookshelf/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)

// BookCounter implementations
var _ http.BookCounter = (*books.Repository)(nil)

// BookCreator implementations
var _ cli.BookCreator = (*books.Repository)(nil)

// =============================================================================
// Change Notifications
// =============================================================================

// Publisher implementations
var _ events.Publisher = (*events.AMQPPublisher)(nil)
var _ events.Publisher = events.NopPublisher{}
