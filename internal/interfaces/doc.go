// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: CRUD and search over books (internal/http/stores.go)
//   - BookCounter: Record count for the health check (internal/http/stores.go)
//   - BookCreator: Bulk import target (internal/cli/import_json.go)
//
// All three are implemented by books.Repository (internal/database/books).
//
// ## Change Notification Interfaces
//
//   - Publisher: Delivers book.created / book.updated / book.deleted events
//     (internal/events/events.go). Implemented by AMQPPublisher and NopPublisher.
//
// # Adding a New Endpoint
//
//  1. Add the data access method to books.Repository, running in one transaction
//  2. Extend BookStore with the method
//  3. Add a handler to BooksController and register it in NewRouter
//  4. Add a compile-time check here if a new interface was introduced
package interfaces
