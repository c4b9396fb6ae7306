package config

// Default paths and routes
const (
	// DefaultDatabasePath is the default path for the books database
	DefaultDatabasePath = "./books.db"

	// DefaultBooksBasePath is the route prefix for the books API
	DefaultBooksBasePath = "/books"
)
