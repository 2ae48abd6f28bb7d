package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithConfigFile sets an explicit config file. Without one, TL_CONFIG is
// consulted.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	path := l.configFile
	if path == "" {
		path = os.Getenv("TL_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, l.config); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile merges a YAML, TOML or JSON file into cfg. The format follows the
// file extension.
func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	// Load base configuration
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDriver   *string
	DBDir      *string
	DBFilename *string
	DBDSN      *string

	// Server overrides
	ServerAddr *string

	// Client overrides
	APIURL *string

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	LogFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDriver != nil {
		config.Database.Driver = *overrides.DBDriver
	}
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBDSN != nil {
		config.Database.DSN = *overrides.DBDSN
	}

	// Server overrides
	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}

	// Client overrides
	if overrides.APIURL != nil {
		config.Client.BaseURL = *overrides.APIURL
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
}
