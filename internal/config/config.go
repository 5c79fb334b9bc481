package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/MimeLyc/rask-sdk-go/pkg/log"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

// Config holds the command-line configuration.
// Supports environment variables with sensible defaults
//
// Environment Variables:
// Rask API:
// - RASK_CLIENT_ID: OAuth2 client id (required)
// - RASK_CLIENT_SECRET: OAuth2 client secret (required)
// - RASK_API_URL: API base URL (default: https://api.rask.ai)
// - RASK_TOKEN_URL: token endpoint (default: the Rask identity provider)
// - RASK_SCOPES: space separated scopes (default: api/source api/input api/output api/limit)
// - RASK_TIMEOUT: request timeout in seconds (default: 30)
// - RASK_UPLOAD_TIMEOUT: upload timeout in seconds (default: 1800)
//
// Other:
// - LOG_LEVEL: debug, info, warn or error (default: info)
// - RASK_WATCH_SCHEDULE: cron schedule for project polling (default: @every 30s)
type Config struct {
	Rask  RaskConfig  `json:"rask"`
	Log   LogConfig   `json:"log"`
	Watch WatchConfig `json:"watch"`

	dotEnv string
}

// RaskConfig holds the API credentials and endpoints.
type RaskConfig struct {
	ClientID      string   `json:"client_id"`
	ClientSecret  string   `json:"-"`
	APIURL        string   `json:"api_url"`
	TokenURL      string   `json:"token_url"`
	Scopes        []string `json:"scopes"`
	Timeout       int      `json:"timeout"`
	UploadTimeout int      `json:"upload_timeout"`
}

type LogConfig struct {
	Level log.LogLevel `json:"level"`
}

// WatchConfig holds the project watcher schedule.
type WatchConfig struct {
	Schedule string `json:"schedule"`
}

// DefaultWatchSchedule polls a project every thirty seconds.
const DefaultWatchSchedule = "@every 30s"

// Option is a function type for configuring Config
type Option func(*Config)

// WithDotEnv loads path into the environment before it is read. Variables
// already set take precedence. A missing file is ignored.
func WithDotEnv(path string) Option {
	return func(c *Config) {
		c.dotEnv = path
	}
}

// WithClientID overrides RASK_CLIENT_ID.
func WithClientID(id string) Option {
	return func(c *Config) {
		c.Rask.ClientID = id
	}
}

// WithLogLevel overrides LOG_LEVEL.
func WithLogLevel(level log.LogLevel) Option {
	return func(c *Config) {
		c.Log.Level = level
	}
}

// NewFromEnv creates a new Config instance with values from environment variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	pre := &Config{}
	for _, opt := range opts {
		opt(pre)
	}
	if pre.dotEnv != "" {
		if err := godotenv.Load(pre.dotEnv); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", pre.dotEnv, err)
		}
	}

	config := &Config{
		Rask: RaskConfig{
			ClientID:      getEnvString("RASK_CLIENT_ID", ""),
			ClientSecret:  getEnvString("RASK_CLIENT_SECRET", ""),
			APIURL:        getEnvString("RASK_API_URL", rask.DefaultBaseURL),
			TokenURL:      getEnvString("RASK_TOKEN_URL", rask.DefaultTokenURL),
			Scopes:        strings.Fields(getEnvString("RASK_SCOPES", strings.Join(rask.DefaultScopes(), " "))),
			Timeout:       getEnvInt("RASK_TIMEOUT", int(rask.DefaultTimeout/time.Second)),
			UploadTimeout: getEnvInt("RASK_UPLOAD_TIMEOUT", int(rask.DefaultUploadTimeout/time.Second)),
		},
		Log: LogConfig{
			Level: log.ParseLevel(getEnvString("LOG_LEVEL", "info")),
		},
		Watch: WatchConfig{
			Schedule: getEnvString("RASK_WATCH_SCHEDULE", DefaultWatchSchedule),
		},
		dotEnv: pre.dotEnv,
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Debug("Config: api=%s token=%s scopes=%v", config.Rask.APIURL, config.Rask.TokenURL, config.Rask.Scopes)
	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Rask.ClientID == "" {
		return fmt.Errorf("RASK_CLIENT_ID is required")
	}
	if c.Rask.ClientSecret == "" {
		return fmt.Errorf("RASK_CLIENT_SECRET is required")
	}
	if c.Rask.Timeout <= 0 || c.Rask.UploadTimeout <= 0 {
		return fmt.Errorf("RASK_TIMEOUT and RASK_UPLOAD_TIMEOUT must be positive")
	}
	if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
		return fmt.Errorf("invalid RASK_WATCH_SCHEDULE: %w", err)
	}
	return nil
}

// Client converts the configuration into a client configuration.
func (c *Config) Client() *rask.Config {
	return &rask.Config{
		ClientID:      c.Rask.ClientID,
		ClientSecret:  c.Rask.ClientSecret,
		BaseURL:       c.Rask.APIURL,
		TokenURL:      c.Rask.TokenURL,
		Scopes:        append([]string(nil), c.Rask.Scopes...),
		Timeout:       time.Duration(c.Rask.Timeout) * time.Second,
		UploadTimeout: time.Duration(c.Rask.UploadTimeout) * time.Second,
	}
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
