package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/events"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/readonly"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then give in-flight requests `timeout` to finish
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Release resources only after the server stopped handling requests
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	if err := checkAuthConfig(cfg.Auth); err != nil {
		log.Fatalf("Invalid authentication configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, databaseLogLevel(cfg.Database))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	repo := books.NewRepository(db.DB)

	publisher, closePublisher, err := newPublisher(cfg.Events)
	if err != nil {
		db.Close()
		log.Fatalf("Failed to initialize change notifications: %v", err)
	}

	var authMiddleware *auth.Middleware
	if cfg.Auth.Mode == config.AuthModeToken {
		log.Printf("Authentication mode: token (writes require a bearer token)")
		authMiddleware = auth.NewMiddleware(cfg.Auth)
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	var readOnlyMiddleware *readonly.Middleware
	if cfg.ReadOnly.Enabled {
		log.Printf("Read-only mode enabled - write operations will be blocked")
		readOnlyMiddleware = readonly.NewMiddleware(true)
	}

	routerCfg := http_controllers.RouterConfig{
		Store:              repo,
		Counter:            repo,
		Database:           db,
		Publisher:          publisher,
		BasePath:           cfg.Books.BasePath,
		AuthMiddleware:     authMiddleware,
		ReadOnlyMiddleware: readOnlyMiddleware,
		Version:            version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		closePublisher()
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}

func checkAuthConfig(cfg config.Auth) error {
	switch cfg.Mode {
	case config.AuthModeNone, "":
		return nil
	case config.AuthModeToken:
		if cfg.TokenHash == "" {
			return errors.New("AUTH_TOKEN_HASH is required when AUTH_MODE=token (generate one with `hash-token`)")
		}
		if err := auth.ValidateHash(cfg.TokenHash); err != nil {
			return fmt.Errorf("AUTH_TOKEN_HASH is not a bcrypt hash: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown AUTH_MODE %q (expected %q or %q)", cfg.Mode, config.AuthModeNone, config.AuthModeToken)
	}
}

func databaseLogLevel(cfg config.Database) logger.LogLevel {
	if cfg.Debug {
		return logger.Info
	}
	return logger.Warn
}

// newPublisher connects to the broker when EVENTS_AMQP_URL is set. The returned
// close function is always safe to call.
func newPublisher(cfg config.Events) (events.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		log.Printf("Change notifications disabled (EVENTS_AMQP_URL is not set)")
		return events.NopPublisher{}, func() {}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, cfg.PublishTimeout)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := publisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}
	return publisher, closeFn, nil
}
