// Package config loads application configuration for the agent directory.
// Values come from an optional YAML file, AGENTDIR_* environment variables,
// and built-in defaults, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Data    DataConfig    `mapstructure:"data"`
	Ratings RatingsConfig `mapstructure:"ratings"`
	Search  SearchConfig  `mapstructure:"search"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "debug" or "release"
}

// DataConfig points at the catalog sources.
type DataConfig struct {
	CatalogCSV string `mapstructure:"catalog_csv"`
	UserAgents string `mapstructure:"user_agents"`
}

// RatingsConfig selects and configures the rating store backend.
type RatingsConfig struct {
	Backend string `mapstructure:"backend"` // "json" or "sqlite"
	Path    string `mapstructure:"path"`
}

// SearchConfig tunes the relevance engine.
type SearchConfig struct {
	Threshold   float64 `mapstructure:"threshold"`
	MinTopRated int     `mapstructure:"min_top_rated"`
}

// Load reads configuration from the given file path (optional, may be empty)
// and the environment, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("data.catalog_csv", "data/agents.csv")
	v.SetDefault("data.user_agents", "data/user_agents.json")
	v.SetDefault("ratings.backend", "json")
	v.SetDefault("ratings.path", "data/ratings.json")
	v.SetDefault("search.threshold", 0.1)
	v.SetDefault("search.min_top_rated", 1)

	v.SetEnvPrefix("AGENTDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("server.mode must be 'debug' or 'release', got %q", c.Server.Mode)
	}
	if c.Ratings.Backend != "json" && c.Ratings.Backend != "sqlite" {
		return fmt.Errorf("ratings.backend must be 'json' or 'sqlite', got %q", c.Ratings.Backend)
	}
	if c.Ratings.Path == "" {
		return fmt.Errorf("ratings.path must not be empty")
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold %g must be within [0, 1]", c.Search.Threshold)
	}
	if c.Search.MinTopRated < 1 {
		return fmt.Errorf("search.min_top_rated must be at least 1, got %d", c.Search.MinTopRated)
	}
	return nil
}
