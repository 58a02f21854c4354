package reportengine

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	diagnosticsTimeout     = 5 * time.Second
	diagnosticsCollections = 10
	diagnosticsErrLen      = 50
)

func handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Hello from the report backend!"})
}

func handleHello(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Hello from the backend API!"})
}

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// handleDiagnostics reports whether the document store is reachable. It never
// fails: store errors are folded into the response body.
func (a *App) handleDiagnostics(c echo.Context) error {
	resp := diagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if a.Store == nil {
		resp.Database = "⚠️  Available but not initialized"
	} else {
		resp.Database = "✅ Available"
		resp.ConnectionStatus = "Connected"

		ctx, cancel := context.WithTimeout(c.Request().Context(), diagnosticsTimeout)
		defer cancel()
		names, err := a.Store.ListCollectionNames(ctx)
		if err != nil {
			resp.Database = "⚠️  Connected but Error: " + truncate(err.Error(), diagnosticsErrLen)
		} else {
			if len(names) > diagnosticsCollections {
				names = names[:diagnosticsCollections]
			}
			if names != nil {
				resp.Collections = names
			}
			resp.Database = "✅ Connected & Working"
		}
	}

	resp.DatabaseURL = envMarker("DATABASE_URL")
	resp.DatabaseName = envMarker("DATABASE_NAME")
	return c.JSON(http.StatusOK, resp)
}

func envMarker(key string) string {
	if os.Getenv(key) != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// httpErrorHandler renders every error as {"detail": ...}. Validation errors
// become 422 with per-field details; 5xx errors are logged and their cause is
// not exposed.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var detail any = http.StatusText(code)

	var verr *ValidationError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &verr):
		code = http.StatusUnprocessableEntity
		detail = verr.Fields
	case errors.As(err, &he):
		code = he.Code
		detail = he.Message
	}

	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		detail = http.StatusText(code)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]any{"detail": detail})
}
