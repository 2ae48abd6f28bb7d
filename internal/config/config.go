package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"task-list/internal/client"
)

const (
	DriverSQLite   = "sqlite"
	DriverSQLite3  = "sqlite3"
	DriverPostgres = "postgres"

	memoryDatabase = ":memory:"
)

// Config holds all configuration options for the task list application
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Server      ServerConfig      `mapstructure:"server"`
	Client      ClientConfig      `mapstructure:"client"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Application ApplicationConfig `mapstructure:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `mapstructure:"driver" env:"TL_DB_DRIVER"`
	Dir            string        `mapstructure:"dir" env:"TL_DB_DIR"`
	Filename       string        `mapstructure:"filename" env:"TL_DB_FILENAME"`
	DSN            string        `mapstructure:"dsn" env:"TL_DB_DSN"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout" env:"TL_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" env:"TL_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `mapstructure:"dir_permissions" env:"TL_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" env:"TL_SERVER_ADDR"`
	AllowedOrigin   string        `mapstructure:"allowed_origin" env:"TL_FRONTEND_URL"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" env:"TL_SERVER_SHUTDOWN_TIMEOUT"`
}

// ClientConfig holds API client configuration
type ClientConfig struct {
	BaseURL        string        `mapstructure:"base_url" env:"TL_API_URL"`
	MaxAttempts    int           `mapstructure:"max_attempts" env:"TL_CLIENT_MAX_ATTEMPTS"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" env:"TL_CLIENT_RETRY_DELAY"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" env:"TL_CLIENT_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength int `mapstructure:"title_min_length" env:"TL_VALIDATION_TITLE_MIN"`
	TitleMaxLength int `mapstructure:"title_max_length" env:"TL_VALIDATION_TITLE_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" env:"TL_APP_TIMEOUT"`
	Verbose   bool          `mapstructure:"verbose" env:"TL_APP_VERBOSE"`
	LogFormat string        `mapstructure:"log_format" env:"TL_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tl")

	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            defaultDBDir,
			Filename:       "tl.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:            ":3001",
			AllowedOrigin:   "http://localhost:3000",
			ShutdownTimeout: 10 * time.Second,
		},
		Client: ClientConfig{
			BaseURL:        client.DefaultBaseURL,
			MaxAttempts:    client.DefaultMaxAttempts,
			RetryBaseDelay: client.DefaultBaseDelay,
			RequestTimeout: 10 * time.Second,
		},
		Validation: ValidationConfig{
			TitleMinLength: 1,
			TitleMaxLength: 500,
		},
		Application: ApplicationConfig{
			Timeout:   60 * time.Second,
			Verbose:   false,
			LogFormat: "text",
		},
	}
}

// IsInMemory reports whether the SQLite database lives in memory only
func (c *Config) IsInMemory() bool {
	return c.Database.Filename == memoryDatabase
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.IsInMemory() {
		return memoryDatabase
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if driver := os.Getenv("TL_DB_DRIVER"); driver != "" {
		c.Database.Driver = strings.ToLower(driver)
	}
	if dir := os.Getenv("TL_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TL_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if dsn := os.Getenv("TL_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if timeout := os.Getenv("TL_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TL_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TL_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Server configuration
	if addr := os.Getenv("TL_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if origin := os.Getenv("TL_FRONTEND_URL"); origin != "" {
		c.Server.AllowedOrigin = origin
	}
	if timeout := os.Getenv("TL_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}

	// Client configuration
	if os.Getenv(client.EnvBaseURL) != "" {
		c.Client.BaseURL = client.BaseURLFromEnv()
	}
	if attempts := os.Getenv("TL_CLIENT_MAX_ATTEMPTS"); attempts != "" {
		c.Client.MaxAttempts = ParseIntWithFallback(attempts, c.Client.MaxAttempts)
	}
	if delay := os.Getenv("TL_CLIENT_RETRY_DELAY"); delay != "" {
		c.Client.RetryBaseDelay = ParseDurationWithFallback(delay, c.Client.RetryBaseDelay)
	}
	if timeout := os.Getenv("TL_CLIENT_TIMEOUT"); timeout != "" {
		c.Client.RequestTimeout = ParseDurationWithFallback(timeout, c.Client.RequestTimeout)
	}

	// Validation configuration
	if minLen := os.Getenv("TL_VALIDATION_TITLE_MIN"); minLen != "" {
		c.Validation.TitleMinLength = ParseIntWithFallback(minLen, c.Validation.TitleMinLength)
	}
	if maxLen := os.Getenv("TL_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}

	// Application configuration
	if timeout := os.Getenv("TL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if format := os.Getenv("TL_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = strings.ToLower(format)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite, DriverSQLite3:
		if c.Database.Dir == "" && !c.IsInMemory() {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return &ConfigError{Field: "database.dsn", Message: "a connection string is required for postgres"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: "driver must be one of sqlite, sqlite3, postgres"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate client configuration
	if c.Client.BaseURL == "" {
		return &ConfigError{Field: "client.base_url", Message: "API base URL cannot be empty"}
	}
	if c.Client.MaxAttempts < 1 {
		return &ConfigError{Field: "client.max_attempts", Message: "max attempts must be at least 1"}
	}
	if c.Client.RetryBaseDelay < 0 {
		return &ConfigError{Field: "client.retry_base_delay", Message: "retry delay cannot be negative"}
	}
	if c.Client.RequestTimeout <= 0 {
		return &ConfigError{Field: "client.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch c.Application.LogFormat {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "application.log_format", Message: "log format must be one of text, json, logfmt"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
