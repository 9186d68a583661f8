package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codestreak/internal/platform/config"
)

func TestLoadLayersFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "base_url: https://streak.example.com/\nbot_username: \"@streakbot\"\nlog_level: debug\nrefresh_interval: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CODESTREAK_INIT_DATA", " query_id=1&hash=abc ")
	t.Setenv("CODESTREAK_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	if cfg.BaseURL != "https://streak.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.BotUsername != "streakbot" {
		t.Fatalf("expected @ stripped from bot username, got %q", cfg.BotUsername)
	}
	if cfg.InitData != "query_id=1&hash=abc" {
		t.Fatalf("expected init data from env, got %q", cfg.InitData)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected env to override file log level, got %q", cfg.LogLevel)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("expected 30s refresh interval, got %s", cfg.RefreshInterval)
	}
	if cfg.Motion != "full" {
		t.Fatalf("expected default motion level, got %q", cfg.Motion)
	}
}

func TestLoadLeavesInvalidValuesForOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("CODESTREAK_BASE_URL", "not a url")
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load must not validate before overrides: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected the env base url to be rejected without an override")
	}
	cfg.BaseURL = "https://streak.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("override should make the config valid: %v", err)
	}
}

func TestLoadFailsOnMissingExplicitFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	cases := []config.Config{
		func() config.Config { c := config.Default(); c.BaseURL = "not a url"; return c }(),
		func() config.Config { c := config.Default(); c.LogLevel = "loud"; return c }(),
		func() config.Config { c := config.Default(); c.RefreshInterval = -time.Second; return c }(),
		func() config.Config { c := config.Default(); c.Motion = "wild"; return c }(),
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, c)
		}
	}
}
