package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.RetryBackoff != 50*time.Millisecond {
		t.Errorf("expected 50ms backoff, got %s", cfg.RetryBackoff)
	}
	if cfg.QueueName != "orders:events" {
		t.Errorf("expected orders:events, got %s", cfg.QueueName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("WORKER_COUNT", "12")
	t.Setenv("HOLD_DURATION", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("expected :9999, got %s", cfg.HTTPAddr)
	}
	if cfg.WorkerCount != 12 {
		t.Errorf("expected 12 workers, got %d", cfg.WorkerCount)
	}
	if cfg.HoldDuration != time.Second {
		t.Errorf("expected 1s hold, got %s", cfg.HoldDuration)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected default 4 workers, got %d", cfg.WorkerCount)
	}
}

func TestLoad_TOMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	content := []byte("http_addr = \":7070\"\nqueue_name = \"events:test\"\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("expected :7070, got %s", cfg.HTTPAddr)
	}
	if cfg.QueueName != "events:test" {
		t.Errorf("expected events:test, got %s", cfg.QueueName)
	}
}

func TestLoad_TOMLDurationOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	content := []byte("retry_backoff_ms = 200\nslow_threshold_ms = 750\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RetryBackoff != 200*time.Millisecond {
		t.Errorf("expected 200ms backoff, got %s", cfg.RetryBackoff)
	}
	if cfg.SlowThreshold != 750*time.Millisecond {
		t.Errorf("expected 750ms threshold, got %s", cfg.SlowThreshold)
	}
	// Absent keys keep the env/default values.
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected default 30s TTL, got %s", cfg.CacheTTL)
	}
}

func TestLoad_MissingTOMLFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}
