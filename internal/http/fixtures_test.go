package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/events"
	"github.com/mrlokans/bookshelf/internal/schemas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewDatabaseWithLogLevel(filepath.Join(t.TempDir(), "books.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestRouter builds the full router over a fresh database.
func setupTestRouter(t *testing.T, configure ...func(*RouterConfig)) (*gin.Engine, *recordingPublisher) {
	t.Helper()

	db := setupTestDB(t)
	repo := books.NewRepository(db.DB)
	publisher := &recordingPublisher{}

	cfg := RouterConfig{
		Store:     repo,
		Counter:   repo,
		Database:  db,
		Publisher: publisher,
		BasePath:  "/books",
		Version:   "test",
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	return NewRouter(cfg), publisher
}

func performRequest(router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errStoreDown = errors.New("disk I/O error")

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Create(context.Context, schemas.BookCreate) (entities.Book, error) {
	return entities.Book{}, errStoreDown
}

func (failingStore) GetAll(context.Context) ([]entities.Book, error) {
	return nil, errStoreDown
}

func (failingStore) GetByID(context.Context, uint) (entities.Book, bool, error) {
	return entities.Book{}, false, errStoreDown
}

func (failingStore) Update(context.Context, uint, schemas.BookUpdate) (entities.Book, bool, error) {
	return entities.Book{}, false, errStoreDown
}

func (failingStore) Delete(context.Context, uint) (bool, error) {
	return false, errStoreDown
}

func (failingStore) Search(context.Context, books.Filter) ([]entities.Book, error) {
	return nil, errStoreDown
}

func (failingStore) Count(context.Context) (int64, error) {
	return 0, errStoreDown
}
