package reportengine

import (
	"testing"
	"time"
)

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.setDefaults()

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.AccessTokenTTL != DefaultTokenTTL {
		t.Errorf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
	if cfg.AdminUsername != DefaultAdminUsername || cfg.AdminPassword != DefaultAdminPassword {
		t.Errorf("admin = %q/%q", cfg.AdminUsername, cfg.AdminPassword)
	}
	if cfg.DatabaseURL != DefaultDatabaseURL || cfg.DatabaseName != DefaultDatabaseName {
		t.Errorf("database = %q/%q", cfg.DatabaseURL, cfg.DatabaseName)
	}
	if cfg.UploadDir != DefaultUploadDir {
		t.Errorf("UploadDir = %q", cfg.UploadDir)
	}
}

func TestSetDefaultsKeepsHashOnly(t *testing.T) {
	cfg := Config{AdminPasswordHash: "$2a$10$abc"}
	cfg.setDefaults()
	if cfg.AdminPassword != "" {
		t.Errorf("AdminPassword = %q, want empty when a hash is configured", cfg.AdminPassword)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "9001")
	t.Setenv("SECRET_KEY", "s")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("ADMIN_USERNAME", "chef")
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "blog")
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := ConfigFromEnv()
	if cfg.Addr != ":9001" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.SecretKey != "s" || cfg.AccessTokenTTL != 30*time.Minute {
		t.Errorf("secret/ttl = %q/%v", cfg.SecretKey, cfg.AccessTokenTTL)
	}
	if cfg.AdminUsername != "chef" || cfg.AdminPassword != "pw" {
		t.Errorf("admin = %q/%q", cfg.AdminUsername, cfg.AdminPassword)
	}
	if cfg.DatabaseURL != "mongodb://db:27017" || cfg.DatabaseName != "blog" {
		t.Errorf("database = %q/%q", cfg.DatabaseURL, cfg.DatabaseName)
	}
	if cfg.UploadDir != "/srv/uploads" || cfg.LogLevel != "debug" {
		t.Errorf("upload/log = %q/%q", cfg.UploadDir, cfg.LogLevel)
	}
}

func TestConfigFromEnvFallbacks(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:7000")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	t.Setenv("SECRET_KEY", "")

	cfg := ConfigFromEnv()
	if cfg.Addr != "127.0.0.1:7000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.AccessTokenTTL != DefaultTokenTTL {
		t.Errorf("invalid TTL should fall back, got %v", cfg.AccessTokenTTL)
	}
	if cfg.SecretKey != DefaultSecretKey {
		t.Errorf("SecretKey = %q", cfg.SecretKey)
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, s := range []string{"", "debug", "info", "WARN", "warning", "error", "off"} {
		if _, err := parseLogLevel(s); err != nil {
			t.Errorf("parseLogLevel(%q) failed: %v", s, err)
		}
	}
	if _, err := parseLogLevel("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
