package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Reports     ReportsConfig `toml:"reports"`
	Archive     ArchiveConfig `toml:"archive"`
	Logging     LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ReportsConfig controls where report documents are loaded from.
type ReportsConfig struct {
	Dir       string `toml:"dir"`        // Flat-file reports directory (default: "./reports")
	BaseURL   string `toml:"base_url"`   // When set, reports are fetched over HTTP instead of read from Dir
	RateLimit int    `toml:"rate_limit"` // Remote fetch rate limit, requests per second
}

// ArchiveConfig controls the archive index refresh.
type ArchiveConfig struct {
	RefreshSchedule string `toml:"refresh_schedule"` // Cron schedule (with seconds field)
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Reports: ReportsConfig{
			Dir:       "./reports",
			RateLimit: 10,
		},
		Archive: ArchiveConfig{
			RefreshSchedule: "0 */10 * * * *", // Every 10 minutes
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 ->
// file2 -> ... -> environment. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies SWINGSIGNAL_* environment variable overrides
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SWINGSIGNAL_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("SWINGSIGNAL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if host := os.Getenv("SWINGSIGNAL_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if dir := os.Getenv("SWINGSIGNAL_REPORTS_DIR"); dir != "" {
		config.Reports.Dir = dir
	}

	if level := os.Getenv("SWINGSIGNAL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
