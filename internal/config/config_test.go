package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Filename != "tl.db" {
		t.Errorf("Database.Filename = %q, want tl.db", cfg.Database.Filename)
	}
	if !strings.HasSuffix(cfg.Database.Dir, ".tl") {
		t.Errorf("Database.Dir = %q, want a .tl directory", cfg.Database.Dir)
	}
	if cfg.Server.Addr != ":3001" {
		t.Errorf("Server.Addr = %q, want :3001", cfg.Server.Addr)
	}
	if cfg.Server.AllowedOrigin != "http://localhost:3000" {
		t.Errorf("Server.AllowedOrigin = %q", cfg.Server.AllowedOrigin)
	}
	if cfg.Client.BaseURL != "http://localhost:3001" {
		t.Errorf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.MaxAttempts != 3 {
		t.Errorf("Client.MaxAttempts = %d, want 3", cfg.Client.MaxAttempts)
	}
	if cfg.Client.RetryBaseDelay != time.Second {
		t.Errorf("Client.RetryBaseDelay = %v, want 1s", cfg.Client.RetryBaseDelay)
	}
	if cfg.Validation.TitleMinLength != 1 || cfg.Validation.TitleMaxLength != 500 {
		t.Errorf("title limits = %d..%d, want 1..500", cfg.Validation.TitleMinLength, cfg.Validation.TitleMaxLength)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_GetDatabasePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = "/var/lib/tl"
	cfg.Database.Filename = "tasks.db"

	if got := cfg.GetDatabasePath(); got != filepath.Join("/var/lib/tl", "tasks.db") {
		t.Errorf("GetDatabasePath() = %q", got)
	}

	cfg.Database.Filename = ":memory:"
	if got := cfg.GetDatabasePath(); got != ":memory:" {
		t.Errorf("GetDatabasePath() = %q, want :memory:", got)
	}
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("TL_DB_DRIVER", "SQLITE3")
	t.Setenv("TL_DB_DIR", "/tmp/tl-env")
	t.Setenv("TL_DB_FILENAME", "env.db")
	t.Setenv("TL_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("TL_DB_DIR_PERMISSIONS", "700")
	t.Setenv("TL_SERVER_ADDR", ":9000")
	t.Setenv("TL_FRONTEND_URL", "http://example.test")
	t.Setenv("TL_API_URL", "http://api.example.test")
	t.Setenv("TL_CLIENT_MAX_ATTEMPTS", "5")
	t.Setenv("TL_CLIENT_RETRY_DELAY", "250ms")
	t.Setenv("TL_VALIDATION_TITLE_MAX", "120")
	t.Setenv("TL_APP_VERBOSE", "true")
	t.Setenv("TL_LOG_FORMAT", "JSON")

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		t.Fatalf("LoadFromEnvironment() error = %v", err)
	}

	if cfg.Database.Driver != DriverSQLite3 {
		t.Errorf("Database.Driver = %q, want sqlite3", cfg.Database.Driver)
	}
	if cfg.GetDatabasePath() != filepath.Join("/tmp/tl-env", "env.db") {
		t.Errorf("GetDatabasePath() = %q", cfg.GetDatabasePath())
	}
	if cfg.Database.QueryTimeout != 3*time.Second {
		t.Errorf("Database.QueryTimeout = %v", cfg.Database.QueryTimeout)
	}
	if cfg.Database.DirPermissions != 0700 {
		t.Errorf("Database.DirPermissions = %o, want 700", cfg.Database.DirPermissions)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.AllowedOrigin != "http://example.test" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Client.BaseURL != "http://api.example.test" || cfg.Client.MaxAttempts != 5 || cfg.Client.RetryBaseDelay != 250*time.Millisecond {
		t.Errorf("Client = %+v", cfg.Client)
	}
	if cfg.Validation.TitleMaxLength != 120 {
		t.Errorf("Validation.TitleMaxLength = %d, want 120", cfg.Validation.TitleMaxLength)
	}
	if !cfg.Application.Verbose || cfg.Application.LogFormat != "json" {
		t.Errorf("Application = %+v", cfg.Application)
	}
}

func TestConfig_LoadFromEnvironment_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TL_DB_QUERY_TIMEOUT", "soon")
	t.Setenv("TL_CLIENT_MAX_ATTEMPTS", "many")
	t.Setenv("TL_APP_VERBOSE", "maybe")

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		t.Fatalf("LoadFromEnvironment() error = %v", err)
	}

	defaults := NewConfig()
	if cfg.Database.QueryTimeout != defaults.Database.QueryTimeout {
		t.Errorf("invalid duration should keep the default, got %v", cfg.Database.QueryTimeout)
	}
	if cfg.Client.MaxAttempts != defaults.Client.MaxAttempts {
		t.Errorf("invalid integer should keep the default, got %d", cfg.Client.MaxAttempts)
	}
	if cfg.Application.Verbose != defaults.Application.Verbose {
		t.Errorf("invalid boolean should keep the default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, "", false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver", true},
		{"empty dir", func(c *Config) { c.Database.Dir = "" }, "database.dir", true},
		{"empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename", true},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.dsn", true},
		{"postgres with dsn", func(c *Config) {
			c.Database.Driver = DriverPostgres
			c.Database.DSN = "postgres://localhost/tasks"
		}, "", false},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout", true},
		{"zero write timeout", func(c *Config) { c.Database.WriteTimeout = 0 }, "database.write_timeout", true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr", true},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "server.shutdown_timeout", true},
		{"empty base url", func(c *Config) { c.Client.BaseURL = "" }, "client.base_url", true},
		{"zero attempts", func(c *Config) { c.Client.MaxAttempts = 0 }, "client.max_attempts", true},
		{"negative delay", func(c *Config) { c.Client.RetryBaseDelay = -time.Second }, "client.retry_base_delay", true},
		{"zero delay", func(c *Config) { c.Client.RetryBaseDelay = 0 }, "", false},
		{"zero request timeout", func(c *Config) { c.Client.RequestTimeout = 0 }, "client.request_timeout", true},
		{"zero min length", func(c *Config) { c.Validation.TitleMinLength = 0 }, "validation.title_min_length", true},
		{"max below min", func(c *Config) {
			c.Validation.TitleMinLength = 10
			c.Validation.TitleMaxLength = 5
		}, "validation.title_max_length", true},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout", true},
		{"bad log format", func(c *Config) { c.Application.LogFormat = "xml" }, "application.log_format", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Database.Dir = "/tmp/tl"
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error should be a *ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestParseWithFallback(t *testing.T) {
	if got := ParseDurationWithFallback("2m", time.Second); got != 2*time.Minute {
		t.Errorf("ParseDurationWithFallback() = %v", got)
	}
	if got := ParseDurationWithFallback("", time.Second); got != time.Second {
		t.Errorf("ParseDurationWithFallback() fallback = %v", got)
	}
	if got := ParseIntWithFallback("12", 1); got != 12 {
		t.Errorf("ParseIntWithFallback() = %d", got)
	}
	if got := ParseIntWithFallback("x", 1); got != 1 {
		t.Errorf("ParseIntWithFallback() fallback = %d", got)
	}
	if got := ParseBoolWithFallback("1", false); !got {
		t.Errorf("ParseBoolWithFallback() = %v", got)
	}
	if got := ParseUint32WithFallback("750", 8, 0755); got != 0750 {
		t.Errorf("ParseUint32WithFallback() = %o", got)
	}
	if got := ParseUint32WithFallback("9", 8, 0755); got != 0755 {
		t.Errorf("ParseUint32WithFallback() fallback = %o", got)
	}
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}
