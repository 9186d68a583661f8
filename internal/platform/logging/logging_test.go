package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codestreak/internal/platform/logging"
)

func TestNewWritesToFileWithPrefix(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "codestreak.log")
	logger, closer, err := logging.New("debug", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("status fetched", "mode", "dashboard")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(b)
	if !strings.Contains(line, "codestreak") || !strings.Contains(line, "status fetched") || !strings.Contains(line, "mode=dashboard") {
		t.Fatalf("unexpected log line: %q", line)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, _, err := logging.New("chatty", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestTUIPathPrefersConfiguredFile(t *testing.T) {
	t.Parallel()
	if got := logging.TUIPath("/tmp/custom.log"); got != "/tmp/custom.log" {
		t.Fatalf("expected configured path, got %q", got)
	}
}

func TestNewTUIDefaultsToCacheFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
	path := logging.TUIPath("")
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, filepath.Join("codestreak", "tui.log")) {
		t.Fatalf("unexpected default path %q", path)
	}
	logger, closer, err := logging.NewTUI("info", "")
	if err != nil {
		t.Fatalf("new tui logger: %v", err)
	}
	logger.Info("goal reached", "metric", "github_commits")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "goal reached") {
		t.Fatalf("expected log line in %s, got %q", path, b)
	}
}
