// Package config loads the YAML configuration used by the command line tool.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrjoshuak/postcollect/internal/fetch"
	"github.com/mrjoshuak/postcollect/internal/logging"
	"github.com/mrjoshuak/postcollect/internal/siteconfig"
)

// Environment variables consulted by Load and Path.
const (
	EnvConfigPath = "POSTCOLLECT_CONFIG"
	EnvDBPath     = "POSTCOLLECT_DB"
)

// Config holds all settings.
type Config struct {
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxRedirects      int           `yaml:"max_redirects"`
	SiteConfigDir     string        `yaml:"site_config_dir"`
	RemoteSiteConfigs bool          `yaml:"remote_site_configs"`
	SiteConfigBaseURL string        `yaml:"site_config_base_url"`
	RateLimitRPS      float64       `yaml:"rate_limit_rps"`
	Database          string        `yaml:"database"`
	Log               LogConfig     `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Timeout:           fetch.DefaultTimeout,
		MaxRedirects:      fetch.DefaultMaxRedirects,
		RemoteSiteConfigs: true,
		SiteConfigBaseURL: siteconfig.DefaultBaseURL,
		Database:          defaultDBPath(),
		Log: LogConfig{
			Level:      "info",
			Console:    true,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path loads the defaults only; a missing
// file at the default path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Path()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config yaml: %w", err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	applyEnvironmentOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Path returns the config file path from the environment, or
// ~/.postcollect/config.yaml.
func Path() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".postcollect", "config.yaml")
}

func applyEnvironmentOverrides(cfg *Config) {
	if path := os.Getenv(EnvDBPath); path != "" {
		cfg.Database = path
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects must not be negative, got %d", c.MaxRedirects)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must not be negative, got %g", c.RateLimitRPS)
	}
	if c.RemoteSiteConfigs {
		u, err := url.Parse(c.SiteConfigBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("site_config_base_url must be an http(s) URL, got %q", c.SiteConfigBaseURL)
		}
	}
	if c.Database == "" {
		return errors.New("database is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LoggingOptions converts the log section for logging.New.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:      c.Log.Level,
		Console:    c.Log.Console,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "postcollect.db"
	}
	return filepath.Join(home, ".postcollect", "postcollect.db")
}
