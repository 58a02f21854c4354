// Package reportengine is a small admin-only backend for food blog reports,
// built with Go and Echo.
//
// A single configured admin logs in for a bearer token and uses it to file
// reports (title, category, excerpt, content and an optional image). Reports
// are inserted into a document store (MongoDB or SQLite, see package docstore)
// and images are written to a local upload directory.
package reportengine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/reportengine/docstore"
)

// App is the central application. It wires together configuration, the admin
// identity, token issuer, document store, report writer and HTTP routes.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Store   docstore.Store
	Admin   *AdminIdentity
	Tokens  *TokenIssuer
	Reports *ReportWriter

	metrics      *metrics
	customRoutes []func(*App)
	ownsStore    bool
	ready        bool
}

// New creates a new App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup builds the admin identity, opens the document store, and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Setup(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if a.Config.SecretKey == "" {
		return fmt.Errorf("reportengine: SecretKey is required")
	}

	lvl, err := parseLogLevel(a.Config.LogLevel)
	if err != nil {
		return fmt.Errorf("reportengine: %w", err)
	}
	a.Echo.Logger.SetLevel(lvl)
	logger := a.Echo.Logger

	admin, err := AdminIdentityFromConfig(a.Config)
	if err != nil {
		return fmt.Errorf("reportengine: %w", err)
	}
	a.Admin = admin
	a.Tokens = NewTokenIssuer(a.Config.SecretKey, a.Config.AccessTokenTTL, admin)

	if a.Store == nil {
		store, err := docstore.Open(ctx, a.Config.DatabaseURL, a.Config.DatabaseName)
		if err != nil {
			// Keep serving; /test reports the store as not initialized and
			// report creation fails with ErrStoreUnavailable.
			logger.Errorf("document store unavailable: %v", err)
		} else {
			a.Store = store
			a.ownsStore = true
		}
	}
	if a.Store != nil {
		logger.Infof("document store ready: database %q", a.Store.Name())
	}

	a.Reports = NewReportWriter(a.Store, a.Config.UploadDir, admin.Username())
	a.metrics = newMetrics()

	if a.Config.SecretKey == DefaultSecretKey {
		logger.Warn("SECRET_KEY is the development default; set it before exposing this service")
	}
	if a.Config.AdminPasswordHash == "" && a.Config.AdminPassword == DefaultAdminPassword {
		logger.Warn("admin password is the development default; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	logger.Warnf("access tokens record a %s lifetime but are not expiry-checked; rotate SECRET_KEY to revoke them", a.Config.AccessTokenTTL)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start sets the app up and serves HTTP until Shutdown is called.
func (a *App) Start() error {
	if err := a.Setup(context.Background()); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", handleRoot)
	e.GET("/test", a.handleDiagnostics)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: a.metrics.registry,
	}))

	e.POST("/auth/login", a.handleLogin)

	api := e.Group("/api")
	api.GET("/hello", handleHello)
	api.POST("/reports", a.handleCreateReport, a.requireAdmin)
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases the document store if the App opened it.
func (a *App) Close() error {
	if a.Store != nil && a.ownsStore {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.Store.Close(ctx)
	}
	return nil
}

func parseLogLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
