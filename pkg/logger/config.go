package logger

import "log/slog"

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config controls log output. Parse it from the environment with
// caarlos0/env, or fill it in directly.
type Config struct {
	Format string       `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
	Level  slog.Level   `env:"LOG_LEVEL" envDefault:"INFO"`
}

// SentryConfig holds Sentry integration configuration.
// An empty DSN disables Sentry.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel is the lowest level stored as a Sentry log; errors always create issues.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}
