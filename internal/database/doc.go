// Package database opens and migrates the SQLite store that holds book records.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, DSN pragmas, migrations
//	└── books/           # Book CRUD and search
//
// The Database handle is constructed by the entry point and passed down;
// there is no package-level connection.
//
//	db, err := database.NewDatabase("./books.db")
//	defer db.Close()
//
//	repo := books.NewRepository(db.DB)
//	book, err := repo.Create(ctx, payload)
package database
