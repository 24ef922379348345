// Package config loads the backend settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aTrapDeer/portfolio-backend/internal/mail"
	"github.com/aTrapDeer/portfolio-backend/internal/store"
)

type Config struct {
	Port        string
	DatabaseURL string

	// CORS origins; empty entries are ignored.
	FrontendURLs []string

	CacheTTL     time.Duration
	CacheCleanup time.Duration

	RevalidationURL    string
	RevalidationSecret string

	SMTP mail.Config

	LogLevel  string
	LogFormat string
}

// Default returns the settings used when nothing is set.
func Default() *Config {
	return &Config{
		Port:         "2022",
		DatabaseURL:  "file:portfolio.db",
		CacheTTL:     5 * time.Minute,
		CacheCleanup: 10 * time.Minute,
		SMTP: mail.Config{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads .env files (if present) into the environment and builds a Config
// from it.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
		slog.Debug("no .env file found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (*Config, error) {
	d := Default()
	cfg := &Config{
		Port:               getEnv("SERVER_PORT", d.Port),
		DatabaseURL:        getEnv("DATABASE_URL", d.DatabaseURL),
		FrontendURLs:       nonEmpty(os.Getenv("FRONTEND_URL"), os.Getenv("FRONTEND_URL2")),
		RevalidationURL:    os.Getenv("NEXT_REVALIDATION_URL"),
		RevalidationSecret: os.Getenv("REVALIDATION_SECRET"),
		SMTP: mail.Config{
			Host: getEnv("SMTP_HOST", d.SMTP.Host),
			Port: getEnv("SMTP_PORT", d.SMTP.Port),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   os.Getenv("TO_EMAIL"),
		},
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", d.LogLevel)),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", d.LogFormat)),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", d.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.CacheCleanup, err = getDuration("CACHE_CLEANUP", d.CacheCleanup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("SERVER_PORT must be a port number, got %q", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.CacheTTL < 0 || c.CacheCleanup < 0 {
		return fmt.Errorf("cache durations must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

// Driver picks the store driver from the DATABASE_URL scheme.
func (c *Config) Driver() string {
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return store.DriverPostgres
	}
	return store.DriverSQLite
}

// ParseLevel maps debug|info|warn|error onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
