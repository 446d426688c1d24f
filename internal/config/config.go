package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/secop-lookup/internal/api"
)

// Config holds CLI configuration stored at ~/.secop/config.
type Config struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	DefaultDataset string  `yaml:"default_dataset,omitempty"`
	DefaultLimit   int     `yaml:"default_limit"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	LogLevel       string  `yaml:"log_level"`
	ExportDir      string  `yaml:"export_dir,omitempty"`
	HistoryEnabled bool    `yaml:"history_enabled"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		BaseURL:        api.DefaultBaseURL,
		TimeoutSeconds: 30,
		DefaultLimit:   api.DefaultSearchLimit,
		RatePerSecond:  api.DefaultRatePerSecond,
		LogLevel:       "info",
		HistoryEnabled: true,
	}
}

// Dir returns the secop state directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".secop")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Load reads the config file, falling back to defaults when it does not
// exist, then applies environment overrides.
func Load() (*Config, error) {
	cfg := Defaults()
	path := Path()

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("stat config: %w", err)
	default:
		if perm := info.Mode().Perm(); perm&0o077 != 0 {
			return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("SECOP_API_URL")); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SECOP_TIMEOUT")); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SECOP_TIMEOUT: %w", err)
		}
		c.TimeoutSeconds = secs
	}
	return nil
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = api.DefaultBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = api.DefaultSearchLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolvedExportDir returns where JSON exports are written.
func (c *Config) ResolvedExportDir() string {
	if strings.TrimSpace(c.ExportDir) != "" {
		return c.ExportDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return Dir()
	}
	return wd
}

// HistoryPath returns the sqlite query history database path.
func (c *Config) HistoryPath() string {
	return filepath.Join(Dir(), "history.db")
}

// Client builds an API client from the config.
func (c *Config) Client() *api.Client {
	client := api.NewClient(c.BaseURL, c.Timeout())
	client.SetRateLimit(c.RatePerSecond, api.DefaultBurst)
	return client
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}
