package reportengine

import (
	"os"
	"strings"
	"time"

	"github.com/eringen/reportengine/docstore"
)

// Defaults applied by setDefaults. DefaultSecretKey and DefaultAdminPassword
// are only fit for local development; Setup logs a warning when they are used.
const (
	DefaultAddr          = ":8000"
	DefaultSecretKey     = "dev-secret-key-change-me"
	DefaultTokenTTL      = 12 * time.Hour
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultDatabaseURL   = "sqlite://data/reports.db"
	DefaultDatabaseName  = "reports"
	DefaultUploadDir     = "/tmp/uploads"
	DefaultLogLevel      = "info"
)

// Config holds all configuration for a report backend.
type Config struct {
	Addr string // Listen address (default ":8000")

	SecretKey      string        // HS256 signing secret
	AccessTokenTTL time.Duration // Lifetime recorded in tokens (default 12h, not enforced)

	AdminUsername     string // default "admin"
	AdminPassword     string // Hashed at startup when AdminPasswordHash is empty
	AdminPasswordHash string // bcrypt hash, takes precedence over AdminPassword

	DatabaseURL  string // mongodb://..., mongodb+srv://... or sqlite://<path>
	DatabaseName string // default "reports"

	UploadDir string // Local directory for uploaded images (default "/tmp/uploads")
	LogLevel  string // debug, info, warn, error, off
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.SecretKey == "" {
		c.SecretKey = DefaultSecretKey
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = DefaultTokenTTL
	}
	if c.AdminUsername == "" {
		c.AdminUsername = DefaultAdminUsername
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		c.AdminPassword = DefaultAdminPassword
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = DefaultDatabaseURL
	}
	if c.DatabaseName == "" {
		c.DatabaseName = DefaultDatabaseName
	}
	if c.UploadDir == "" {
		c.UploadDir = DefaultUploadDir
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":" + EnvOr("PORT", "8000")
	}
	return Config{
		Addr:              addr,
		SecretKey:         EnvOr("SECRET_KEY", DefaultSecretKey),
		AccessTokenTTL:    envDuration("ACCESS_TOKEN_TTL", DefaultTokenTTL),
		AdminUsername:     EnvOr("ADMIN_USERNAME", DefaultAdminUsername),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		DatabaseURL:       EnvOr("DATABASE_URL", DefaultDatabaseURL),
		DatabaseName:      EnvOr("DATABASE_NAME", DefaultDatabaseName),
		UploadDir:         EnvOr("UPLOAD_DIR", DefaultUploadDir),
		LogLevel:          strings.ToLower(EnvOr("LOG_LEVEL", DefaultLogLevel)),
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithStore injects a document store instead of opening Config.DatabaseURL.
// The caller keeps ownership and must close it.
func WithStore(s docstore.Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs during Setup, after the built-in routes.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
