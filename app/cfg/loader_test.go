package cfg

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadArgsDefaults(t *testing.T) {
	unsetEnv(t, "DIGEST_CONFIG", "DB_PATH", "DAYS", "FETCH_TIMEOUT", "SERVE")

	cfg, err := LoadArgs([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.ConfigFile != "./digest.yml" {
		t.Errorf("Expected config './digest.yml', got '%s'", cfg.ConfigFile)
	}
	if cfg.DBPath != "./digest.db" {
		t.Errorf("Expected db path './digest.db', got '%s'", cfg.DBPath)
	}
	if cfg.Days != 31 {
		t.Errorf("Expected 31 days, got %d", cfg.Days)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Serve {
		t.Error("Expected run mode by default")
	}
	if Get() != cfg {
		t.Error("Expected Get to return the loaded configuration")
	}
}

func TestLoadArgsFlagsAndEnv(t *testing.T) {
	unsetEnv(t, "DAYS", "SERVE", "PORT", "SKIP_FAILED_SOURCES")
	t.Setenv("DB_PATH", "/var/lib/digest/state.db")

	cfg, err := LoadArgs([]string{"--days", "7", "--skip-failed-sources", "--serve", "--port", "9090"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Days != 7 {
		t.Errorf("Expected 7 days, got %d", cfg.Days)
	}
	if cfg.DBPath != "/var/lib/digest/state.db" {
		t.Errorf("Expected db path from environment, got '%s'", cfg.DBPath)
	}
	if !cfg.SkipFailedSources {
		t.Error("Expected skip-failed-sources to be set")
	}
	if !cfg.Serve || cfg.Port != "9090" {
		t.Errorf("Expected serve on 9090, got serve=%v port=%s", cfg.Serve, cfg.Port)
	}
}

func TestLoadArgsRejectsNonPositiveDays(t *testing.T) {
	unsetEnv(t, "DAYS")

	if _, err := LoadArgs([]string{"--days", "0"}); err == nil {
		t.Error("Expected error for zero days")
	}
}
