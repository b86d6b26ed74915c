// Package config loads the application configuration from defaults, an
// optional YAML file and SHEETLOG_* environment variables, in that
// precedence order (environment wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains token-bucket rate limiting settings.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"` // console, file or both
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains the filesystem layout.
type PathsConfig struct {
	// WorkbooksDir is scanned for the .xlsx registers offered to users.
	WorkbooksDir string `yaml:"workbooks_dir" envconfig:"WORKBOOKS_DIR"`
	// ReportsDir receives exported delimiter-separated files.
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
}

// EngineConfig tunes the change-log engine.
type EngineConfig struct {
	// FoldCase and FoldAccents opt into merged person identities. Both
	// default to off: raw-text identity matches the source data exactly.
	FoldCase    bool `yaml:"fold_case" envconfig:"FOLD_CASE"`
	FoldAccents bool `yaml:"fold_accents" envconfig:"FOLD_ACCENTS"`
	// CacheExtraction memoizes extracted events per (workbook, modtime).
	CacheExtraction bool `yaml:"cache_extraction" envconfig:"CACHE_EXTRACTION"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: filepath.Join("logs", "sheetlog.log"),
		},
		Paths: PathsConfig{
			WorkbooksDir: "workbooks",
			ReportsDir:   "reports",
		},
		Engine: EngineConfig{
			CacheExtraction: true,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// SHEETLOG_CONFIG (falling back to config.yaml when present), then
// environment variables.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("SHEETLOG_CONFIG")
	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults plus environment apply.
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := envconfig.Process("SHEETLOG", &cfg); err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit enabled with non-positive rps %v", c.Server.RateLimit.RPS)
	}
	if c.Paths.WorkbooksDir == "" {
		return fmt.Errorf("workbooks directory must be set")
	}
	return nil
}

// ReportPath resolves an export file name inside the reports directory.
func (c *Config) ReportPath(name string) string {
	return filepath.Join(c.Paths.ReportsDir, name)
}
