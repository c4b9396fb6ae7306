package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database/books"
)

// Database owns the connection pool to the books store. It is created once by the
// process entry point and closed on shutdown.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if needed) the SQLite database at dbPath and
// migrates the schema. SQL statements are logged only at warning level.
func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithLogLevel(dbPath, logger.Warn)
}

// NewDatabaseWithLogLevel is NewDatabase with an explicit gorm log level.
func NewDatabaseWithLogLevel(dbPath string, level logger.LogLevel) (*Database, error) {
	gormLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	db, err := gorm.Open(sqlite.Open(sqliteDSN(dbPath)), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := books.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// sqliteDSN enables WAL and a busy timeout so concurrent requests wait for
// the writer lock instead of failing immediately.
func sqliteDSN(path string) string {
	params := "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// SQLiteVersion returns the version of the linked SQLite library.
func SQLiteVersion() string {
	version, _, _ := sqlite3.Version()
	return version
}
