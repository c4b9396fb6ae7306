package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/events"
	"github.com/mrlokans/bookshelf/internal/schemas"
)

func init() {
	// Report validation failures by JSON field name
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		schemas.RegisterJSONTagNames(v)
	}
}

type BooksController struct {
	store     BookStore
	publisher events.Publisher
}

// NewBooksController creates a controller. A nil publisher disables change notifications.
func NewBooksController(store BookStore, publisher events.Publisher) *BooksController {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BooksController{store: store, publisher: publisher}
}

// Create adds a new book.
// POST /books/
func (bc *BooksController) Create(c *gin.Context) {
	var in schemas.BookCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.store.Create(c.Request.Context(), in)
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	bc.publish(c, events.BookCreated, book)
	c.JSON(http.StatusCreated, schemas.ToResponse(book))
}

// List returns every book.
// GET /books/
func (bc *BooksController) List(c *gin.Context) {
	all, err := bc.store.GetAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, schemas.ToResponseList(all))
}

// Get returns a single book.
// GET /books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, found, err := bc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if !found {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, schemas.ToResponse(book))
}

// Update changes only the fields present in the body.
// PUT /books/:id (PATCH is accepted as an alias)
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in schemas.BookUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		respondBindError(c, err)
		return
	}

	book, found, err := bc.store.Update(c.Request.Context(), id, in)
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	if !found {
		respondNotFound(c, "book")
		return
	}

	if !in.IsEmpty() {
		bc.publish(c, events.BookUpdated, book)
	}
	c.JSON(http.StatusOK, schemas.ToResponse(book))
}

// Delete removes a book permanently.
// DELETE /books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := bc.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	if !deleted {
		respondNotFound(c, "book")
		return
	}

	bc.publish(c, events.BookDeleted, entities.Book{ID: id})
	c.JSON(http.StatusOK, MessageResponse{Message: "Book deleted"})
}

// Search filters books by title and author substring and exact year.
// GET /books/search/?title=&author=&year=
func (bc *BooksController) Search(c *gin.Context) {
	filter, verr := parseSearchFilter(c)
	if verr != nil {
		respondValidationError(c, verr)
		return
	}

	found, err := bc.store.Search(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, schemas.ToResponseList(found))
}

// parseSearchFilter reads the query string. Empty parameters count as absent.
func parseSearchFilter(c *gin.Context) (books.Filter, *schemas.ValidationError) {
	var filter books.Filter

	if title := c.Query("title"); title != "" {
		filter.Title = &title
	}
	if author := c.Query("author"); author != "" {
		filter.Author = &author
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return books.Filter{}, schemas.NewFieldError("year", "must be an integer")
		}
		filter.Year = &year
	}
	return filter, nil
}

// publish sends a change notification once the mutation has committed.
// Failures are logged and never change the response.
func (bc *BooksController) publish(c *gin.Context, t events.Type, book entities.Book) {
	event := events.NewEvent(t, book)
	event.RequestID = GetRequestID(c)

	if err := bc.publisher.Publish(context.WithoutCancel(c.Request.Context()), event); err != nil {
		log.Printf("[events] failed to publish %s for book %d [request %s]: %v", t, book.ID, event.RequestID, err)
	}
}
