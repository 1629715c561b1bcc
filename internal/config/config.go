// Package config loads runtime settings from defaults, an optional config file
// and RCB_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go-reusable-content/internal/setuppath"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	HiveRoot     string `mapstructure:"hive_root"`     // Directory holding the versioned hives ("15", ...)
	MajorVersion int    `mapstructure:"major_version"` // Hive the Layouts files are expected in
	DataDir      string `mapstructure:"data_dir"`      // Where the content list is stored
	Store        string `mapstructure:"store"`         // json or sqlite
	Listen       string `mapstructure:"listen"`        // HTTP listen address
	SanitizeHTML bool   `mapstructure:"sanitize_html"` // Sanitize loaded HTML files
	LogLevel     string `mapstructure:"log_level"`     // debug, info, warn, error
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hive_root", "/opt/sharepoint/Web Server Extensions")
	v.SetDefault("major_version", setuppath.SharePointMajorVersion)
	v.SetDefault("data_dir", ".reusable_content")
	v.SetDefault("store", StoreJSON)
	v.SetDefault("listen", ":8080")
	v.SetDefault("sanitize_html", false)
	v.SetDefault("log_level", "info")
}

// Load reads the configuration. An empty path looks for rcb.yaml in the working
// directory and is fine if there is none; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RCB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rcb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail much later.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %q or %q)", c.Store, StoreJSON, StoreSQLite)
	}
	if c.MajorVersion <= 0 {
		return fmt.Errorf("major_version must be positive, got %d", c.MajorVersion)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
