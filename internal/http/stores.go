package http

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/schemas"
)

// BookStore is the data access needed by BooksController.
// Implemented by books.Repository.
type BookStore interface {
	Create(ctx context.Context, in schemas.BookCreate) (entities.Book, error)
	GetAll(ctx context.Context) ([]entities.Book, error)
	GetByID(ctx context.Context, id uint) (entities.Book, bool, error)
	Update(ctx context.Context, id uint, in schemas.BookUpdate) (entities.Book, bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, f books.Filter) ([]entities.Book, error)
}

// BookCounter reports the number of stored books for the health check.
type BookCounter interface {
	Count(ctx context.Context) (int64, error)
}
