// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		ID string `mapstructure:"id" yaml:"id"`
	} `mapstructure:"store" yaml:"store"`

	Catalog struct {
		// Backend selects the catalog provider: "file" or "postgrest".
		Backend string `mapstructure:"backend" yaml:"backend"`
		// File is the YAML catalog path used by the file backend.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"catalog" yaml:"catalog"`

	PostgREST struct {
		URL    string `mapstructure:"url" yaml:"url"`
		APIKey string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"postgrest" yaml:"postgrest"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.pricelist")
	v.AddConfigPath(".pricelist")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("PRICELIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key always comes from the environment, never the file
	if err := v.BindEnv("postgrest.api_key", "PRICELIST_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind PRICELIST_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("catalog.backend", "file")
	v.SetDefault("catalog.file", "catalog.yaml")

	v.SetDefault("server.addr", ":8080")

	// Registered with empty defaults so environment overrides are visible
	// to Unmarshal even when no config file sets them.
	v.SetDefault("store.id", "")
	v.SetDefault("postgrest.url", "")
}

// validateConfig checks the configuration for invalid combinations
func validateConfig(c *Config) error {
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	switch c.Catalog.Backend {
	case "file":
		if c.Catalog.File == "" {
			return fmt.Errorf("catalog.file is required for the file backend")
		}
	case "postgrest":
		if c.PostgREST.URL == "" {
			return fmt.Errorf("postgrest.url is required for the postgrest backend")
		}
	default:
		return fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend)
	}

	return nil
}
