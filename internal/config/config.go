package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile     string `envconfig:"LOG_FILE" default:""`

	// Outbound fetches. Every external request is bounded by FetchTimeout;
	// a timed-out fetch is a source-level failure, never a pipeline one.
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`

	SearchBaseURL  string `envconfig:"SEARCH_BASE_URL" default:"https://html.duckduckgo.com/html/"`
	FailoryBaseURL string `envconfig:"FAILORY_BASE_URL" default:"https://www.failory.com"`
	ProfileBaseURL string `envconfig:"PROFILE_BASE_URL" default:"https://www.linkedin.com/in/"`

	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"1800s"`

	// Redis-backed cache is selected when REDIS_ADDR is set; the in-memory
	// store is the default.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	AuditLogPath string `envconfig:"AUDIT_LOG_PATH" default:"search_log.csv"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if strings.TrimSpace(c.SearchBaseURL) == "" {
		return fmt.Errorf("SEARCH_BASE_URL is required")
	}
	if strings.TrimSpace(c.FailoryBaseURL) == "" {
		return fmt.Errorf("FAILORY_BASE_URL is required")
	}
	if strings.TrimSpace(c.ProfileBaseURL) == "" {
		return fmt.Errorf("PROFILE_BASE_URL is required")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}
	if strings.TrimSpace(c.AuditLogPath) == "" {
		return fmt.Errorf("AUDIT_LOG_PATH is required")
	}
	return nil
}
