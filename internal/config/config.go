package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds the runtime settings shared by the API and MCP binaries.
type Config struct {
	Addr          string
	LogLevel      string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	MaxSessions   int
	OTLPLogs      bool
}

// Defaults used when a variable is unset or empty.
var Defaults = Config{
	Addr:          ":8080",
	LogLevel:      "info",
	SessionTTL:    30 * time.Minute,
	SweepInterval: time.Minute,
	MaxSessions:   1000,
	OTLPLogs:      false,
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load reads .env and then the process environment.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Defaults.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get("CALCULATOR_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := get("CALCULATOR_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	var err error
	if v, ok := get("CALCULATOR_SESSION_TTL"); ok {
		if cfg.SessionTTL, err = cast.ToDurationE(v); err != nil {
			return Config{}, fmt.Errorf("CALCULATOR_SESSION_TTL: %w", err)
		}
	}
	if v, ok := get("CALCULATOR_SWEEP_INTERVAL"); ok {
		if cfg.SweepInterval, err = cast.ToDurationE(v); err != nil {
			return Config{}, fmt.Errorf("CALCULATOR_SWEEP_INTERVAL: %w", err)
		}
	}
	if v, ok := get("CALCULATOR_MAX_SESSIONS"); ok {
		if cfg.MaxSessions, err = cast.ToIntE(v); err != nil {
			return Config{}, fmt.Errorf("CALCULATOR_MAX_SESSIONS: %w", err)
		}
	}
	if v, ok := get("CALCULATOR_OTLP_LOGS"); ok {
		if cfg.OTLPLogs, err = cast.ToBoolE(v); err != nil {
			return Config{}, fmt.Errorf("CALCULATOR_OTLP_LOGS: %w", err)
		}
	}

	if cfg.MaxSessions < 0 {
		return Config{}, fmt.Errorf("CALCULATOR_MAX_SESSIONS: must not be negative, got %d", cfg.MaxSessions)
	}
	if cfg.SessionTTL < 0 || cfg.SweepInterval < 0 {
		return Config{}, errors.New("session durations must not be negative")
	}

	return cfg, nil
}
