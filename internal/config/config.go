// Package config provides runtime configuration for the demo services.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the knobs used across the demo binaries. Every binary
// loads the full struct; each one reads only the fields it cares about.
type Config struct {
	HTTPAddr        string        `toml:"http_addr"`
	ShutdownTimeout time.Duration `toml:"-"`

	SQLitePath string `toml:"sqlite_path"`
	MySQLDSN   string `toml:"mysql_dsn"`
	RedisAddr  string `toml:"redis_addr"`

	// deadlock demo
	HoldDuration time.Duration `toml:"-"`

	// optimistic demo
	MaxAttempts  int           `toml:"max_attempts"`
	RetryBackoff time.Duration `toml:"-"`

	// latency trio
	CacheTTL      time.Duration `toml:"-"`
	SlowThreshold time.Duration `toml:"-"`
	SlowSleep     time.Duration `toml:"-"`
	GzipMinSize   int           `toml:"gzip_min_size"`

	// bus demo
	QueueName    string        `toml:"queue_name"`
	WorkerCount  int           `toml:"worker_count"`
	ProcessDelay time.Duration `toml:"-"`
}

// fileDurations carries the duration knobs of the TOML file as
// millisecond ints, matching the *_MS environment variables.
type fileDurations struct {
	ShutdownTimeoutMs int `toml:"shutdown_timeout_ms"`
	HoldDurationMs    int `toml:"hold_duration_ms"`
	RetryBackoffMs    int `toml:"retry_backoff_ms"`
	CacheTTLMs        int `toml:"cache_ttl_ms"`
	SlowThresholdMs   int `toml:"slow_threshold_ms"`
	SlowSleepMs       int `toml:"slow_sleep_ms"`
	ProcessDelayMs    int `toml:"process_delay_ms"`
}

func (fd fileDurations) apply(cfg *Config) {
	set := func(dst *time.Duration, ms int) {
		if ms > 0 {
			*dst = time.Duration(ms) * time.Millisecond
		}
	}
	set(&cfg.ShutdownTimeout, fd.ShutdownTimeoutMs)
	set(&cfg.HoldDuration, fd.HoldDurationMs)
	set(&cfg.RetryBackoff, fd.RetryBackoffMs)
	set(&cfg.CacheTTL, fd.CacheTTLMs)
	set(&cfg.SlowThreshold, fd.SlowThresholdMs)
	set(&cfg.SlowSleep, fd.SlowSleepMs)
	set(&cfg.ProcessDelay, fd.ProcessDelayMs)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	return time.Duration(atoienv(key, defMs)) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load collects configuration from environment with defaults, then
// applies an optional TOML override named by CONFIG_FILE.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
		SQLitePath:      getenv("SQLITE_PATH", "orders.db"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/demo?parseTime=true"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		HoldDuration:    durenvs("HOLD_DURATION", 3),
		MaxAttempts:     atoienv("MAX_ATTEMPTS", 3),
		RetryBackoff:    durenvms("RETRY_BACKOFF_MS", 50),
		CacheTTL:        durenvs("CACHE_TTL", 30),
		SlowThreshold:   durenvms("SLOW_THRESHOLD_MS", 500),
		SlowSleep:       durenvms("SLOW_SLEEP_MS", 1500),
		GzipMinSize:     atoienv("GZIP_MIN_SIZE", 1024),
		QueueName:       getenv("QUEUE_NAME", "orders:events"),
		WorkerCount:     atoienv("WORKER_COUNT", 4),
		ProcessDelay:    durenvms("PROCESS_DELAY_MS", 100),
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	var fd fileDurations
	if err := toml.Unmarshal(data, &fd); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	fd.apply(&cfg)
	return cfg, nil
}
