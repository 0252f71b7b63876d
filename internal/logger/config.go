package logger

import (
	"os"
	"strings"
)

// Environment variables read by ConfigFromEnv and NewZapLoggerFromEnv.
const (
	envLogLevel      = "DREDD_RUNNER_LOG_LEVEL"
	envLogFormat     = "DREDD_RUNNER_LOG_FORMAT"
	envLogCaller     = "DREDD_RUNNER_LOG_CALLER"
	envLogStacktrace = "DREDD_RUNNER_LOG_STACKTRACE"
	envVerbosity     = "DREDD_RUNNER_VERBOSITY"
)

// Config holds logger configuration
type Config struct {
	Level      Level
	Format     string // "console" or "json"
	Caller     bool   // Include caller information
	Stacktrace string // Level at which to include stack traces
}

// ConfigFromEnv creates a logger configuration from environment variables
func ConfigFromEnv() *Config {
	cfg := &Config{
		Level:      InfoLevel,
		Format:     "console",
		Stacktrace: "panic",
	}

	if levelStr := os.Getenv(envLogLevel); levelStr != "" {
		cfg.Level = LevelFromString(levelStr)
	}

	if format := os.Getenv(envLogFormat); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	cfg.Caller = os.Getenv(envLogCaller) == "true"

	if stacktrace := os.Getenv(envLogStacktrace); stacktrace != "" {
		cfg.Stacktrace = strings.ToLower(stacktrace)
	}

	return cfg
}

// IsDevelopment returns true if the logger is configured for development mode
func (c *Config) IsDevelopment() bool {
	return c.Format == "console"
}
