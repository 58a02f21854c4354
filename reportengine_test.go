package reportengine

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/reportengine/docstore"
)

func TestSetupLogsStoreName(t *testing.T) {
	dir := t.TempDir()
	store, err := docstore.NewSQLiteStore(filepath.Join(dir, "reports.db"), "foodblog")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close(context.Background())

	app := New(Config{SecretKey: testSecret, UploadDir: dir, LogLevel: "info"}, WithStore(store))
	var logs bytes.Buffer
	app.Echo.Logger.SetOutput(&logs)
	if err := app.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	out := logs.String()
	if !strings.Contains(out, "document store ready") || !strings.Contains(out, "foodblog") {
		t.Errorf("expected the store name in the startup log, got %q", out)
	}
}

func TestSetupRequiresSecret(t *testing.T) {
	app := New(Config{LogLevel: "off"})
	app.Config.SecretKey = ""
	if err := app.Setup(context.Background()); err == nil {
		t.Error("expected an error without a secret key")
	}
}

func TestSetupRejectsUnknownLogLevel(t *testing.T) {
	app := New(Config{SecretKey: testSecret, LogLevel: "loud"}, WithStore(brokenStore{}))
	if err := app.Setup(context.Background()); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}
