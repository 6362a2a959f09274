// Package config loads skycount settings from ~/.skycount/config.yaml
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	dirName        = ".skycount"
	configFileName = "config.yaml"
	logFileName    = "skycount.log"

	DefaultBaseURL = "https://api.weatherapi.com/v1"
	DefaultQuery   = "copenhagen"
	DefaultTimeout = 10 * time.Second
	DefaultTheme   = "classic"
	DefaultAddr    = ":8080"
)

// Themes the ui package knows how to build.
var Themes = []string{"classic", "neon", "mono"}

// Config holds all skycount configuration.
type Config struct {
	Weather WeatherConfig `yaml:"weather"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// WeatherConfig configures the weather API client.
// The API key is not stored here; see GetKey.
type WeatherConfig struct {
	BaseURL string        `yaml:"base_url"`
	Query   string        `yaml:"query"`
	Timeout time.Duration `yaml:"timeout"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // used by the interactive UI
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Dir returns ~/.skycount.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns ~/.skycount/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	logFile := logFileName
	if dir, err := Dir(); err == nil {
		logFile = filepath.Join(dir, logFileName)
	}
	return &Config{
		Weather: WeatherConfig{BaseURL: DefaultBaseURL, Query: DefaultQuery, Timeout: DefaultTimeout},
		UI:      UIConfig{Theme: DefaultTheme},
		Logging: LoggingConfig{Level: "info", File: logFile},
		Server:  ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads path (or the default path when empty) over the defaults,
// then applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("SKYCOUNT_WEATHER_QUERY")); v != "" {
		c.Weather.Query = v
	}
	if v := strings.TrimSpace(os.Getenv("SKYCOUNT_THEME")); v != "" {
		c.UI.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("SKYCOUNT_ADDR")); v != "" {
		c.Server.Addr = v
	}
}

// fillDefaults restores values a partial file left empty.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = d.Weather.BaseURL
	}
	if c.Weather.Query == "" {
		c.Weather.Query = d.Weather.Query
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = d.Logging.File
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
}

// Validate checks values that would otherwise fail later and far away.
func (c *Config) Validate() error {
	known := false
	for _, t := range Themes {
		if strings.EqualFold(c.UI.Theme, t) {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.UI.Theme, strings.Join(Themes, ", "))
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("weather.timeout must be positive, got %s", c.Weather.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
