package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeToken AuthMode = "token" // Writes require a bearer token
)

type (
	Config struct {
		HTTP
		Global
		Database
		Books
		Auth
		ReadOnly
		Events
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
		// Log SQL statements issued by gorm
		Debug bool
	}
	Books struct {
		BasePath string
	}
	Auth struct {
		Mode      AuthMode
		TokenHash string // bcrypt hash of the API token
	}
	ReadOnly struct {
		Enabled bool
	}
	Events struct {
		AMQPURL        string // Empty disables change notifications
		Exchange       string
		PublishTimeout time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_debug", false)
	v.SetDefault("books_base_path", DefaultBooksBasePath)

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_token_hash", "")

	v.SetDefault("read_only", false)

	// Change notification defaults
	v.SetDefault("events_amqp_url", "")
	v.SetDefault("events_exchange", "books")
	v.SetDefault("events_publish_timeout", "2s")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:  v.GetString("DATABASE_PATH"),
			Debug: v.GetBool("DATABASE_DEBUG"),
		},
		Books: Books{
			BasePath: v.GetString("BOOKS_BASE_PATH"),
		},
		Auth: Auth{
			Mode:      AuthMode(v.GetString("AUTH_MODE")),
			TokenHash: v.GetString("AUTH_TOKEN_HASH"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY"),
		},
		Events: Events{
			AMQPURL:        v.GetString("EVENTS_AMQP_URL"),
			Exchange:       v.GetString("EVENTS_EXCHANGE"),
			PublishTimeout: v.GetDuration("EVENTS_PUBLISH_TIMEOUT"),
		},
	}
}
