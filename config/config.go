package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AntonStoeckl/library-catalog-go/lending"
)

const (
	EnvLogLevel                  = "LIBRARY_LOG_LEVEL"
	EnvLogFormat                 = "LIBRARY_LOG_FORMAT"
	EnvAllowCheckoutFromReserved = "LIBRARY_ALLOW_CHECKOUT_FROM_RESERVED"
	EnvMetricsBackend            = "LIBRARY_METRICS_BACKEND"
	EnvShowJSON                  = "LIBRARY_SHOW_JSON"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"

	MetricsBackendNone       = "none"
	MetricsBackendPrometheus = "prometheus"
	MetricsBackendOTel       = "otel"
)

// ErrInvalidConfig is returned when a setting has a value that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the demo settings.
type Config struct {
	LogLevel                  slog.Level
	LogFormat                 string
	AllowCheckoutFromReserved bool
	MetricsBackend            string
	ShowJSON                  bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:                  slog.LevelWarn,
		LogFormat:                 LogFormatText,
		AllowCheckoutFromReserved: lending.DefaultPolicy().AllowCheckoutFromReserved,
		MetricsBackend:            MetricsBackendNone,
	}
}

// Load reads the given .env files (missing ones are ignored, variables already set in the
// environment win) and then the LIBRARY_* variables on top of Default.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, file, err)
		}
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which has the signature of os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	if v, ok := lookup(EnvLogLevel); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvLogLevel, v))
		}
	}

	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(EnvAllowCheckoutFromReserved); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvAllowCheckoutFromReserved, v))
		} else {
			cfg.AllowCheckoutFromReserved = b
		}
	}

	if v, ok := lookup(EnvMetricsBackend); ok {
		cfg.MetricsBackend = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(EnvShowJSON); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvShowJSON, v))
		} else {
			cfg.ShowJSON = b
		}
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

// Validate checks the settings that only allow a fixed set of values.
func (c Config) Validate() error {
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}

	switch c.MetricsBackend {
	case MetricsBackendNone, MetricsBackendPrometheus, MetricsBackendOTel:
	default:
		return fmt.Errorf("%w: metrics backend %q", ErrInvalidConfig, c.MetricsBackend)
	}

	return nil
}

// Policy returns the lending policy described by the config.
func (c Config) Policy() lending.Policy {
	return lending.Policy{AllowCheckoutFromReserved: c.AllowCheckoutFromReserved}
}
