package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CODESTREAK_"

type Config struct {
	BaseURL         string        `yaml:"base_url" env:"BASE_URL"`
	InitData        string        `yaml:"init_data" env:"INIT_DATA"`
	BotUsername     string        `yaml:"bot_username" env:"BOT_USERNAME"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile         string        `yaml:"log_file" env:"LOG_FILE"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"REFRESH_INTERVAL"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
	Haptics         bool          `yaml:"haptics" env:"HAPTICS"`
	Motion          string        `yaml:"motion" env:"MOTION"`
}

func Default() Config {
	return Config{
		BaseURL:         "http://127.0.0.1:8000",
		LogLevel:        "info",
		RefreshInterval: 0,
		Haptics:         true,
		Motion:          "full",
	}
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "codestreak", "config.yaml")
}

// Load layers defaults, the YAML file at path, an optional .env file and
// CODESTREAK_* environment variables, in that order. It does not validate:
// callers apply flag overrides first and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return Config{}, err
		}
	}

	// .env is a development convenience; a missing file is not an error.
	_ = godotenv.Load()

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	case "":
		c.LogLevel = "info"
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must be non-negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must be non-negative")
	}
	switch c.Motion {
	case "", "full", "reduced", "off":
	default:
		return fmt.Errorf("invalid motion level %q", c.Motion)
	}
	if c.Motion == "" {
		c.Motion = "full"
	}
	c.InitData = strings.TrimSpace(c.InitData)
	c.BotUsername = strings.TrimPrefix(strings.TrimSpace(c.BotUsername), "@")
	return nil
}
