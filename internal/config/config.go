// Package config provides configuration management for the dredd-runner CLI.
// It loads configuration from environment variables with sensible defaults.
// No configuration files are read.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Verbosity represents the output verbosity level
type Verbosity string

const (
	// VerbosityNormal shows only essential output
	VerbosityNormal Verbosity = "normal"
	// VerbosityVerbose includes the rendered command and run timing
	VerbosityVerbose Verbosity = "verbose"
	// VerbosityDebug provides full debug logging
	VerbosityDebug Verbosity = "debug"
)

// ShellMode selects how rendered commands are executed
type ShellMode string

const (
	// ShellExec hands commands to /bin/sh -c
	ShellExec ShellMode = "exec"
	// ShellInterp runs commands with the in-process shell interpreter
	ShellInterp ShellMode = "interp"
)

// Defaults shared with the dredd package. They are duplicated here so config
// stays free of domain imports.
const (
	DefaultCommand  = "dredd"
	DefaultEndpoint = "http://localhost:3000"
)

// Config holds all configuration for the dredd-runner CLI
type Config struct {
	// Verbosity controls output level
	Verbosity Verbosity

	// Command is the validator binary to invoke
	Command string

	// Endpoint is the API base URL dredd validates against
	Endpoint string

	// Blueprints are the blueprint glob patterns. Empty means the runner's
	// defaults.
	Blueprints []string

	// Shell selects the execution backend
	Shell ShellMode

	// Color enables colored terminal output
	Color bool
}

// New creates a new Config instance from environment variables
func New() (*Config, error) {
	cfg := &Config{}

	// Load Verbosity - defaults to normal
	verbosity := os.Getenv("DREDD_RUNNER_VERBOSITY")
	if verbosity == "" {
		cfg.Verbosity = VerbosityNormal
	} else {
		switch Verbosity(verbosity) {
		case VerbosityNormal, VerbosityVerbose, VerbosityDebug:
			cfg.Verbosity = Verbosity(verbosity)
		default:
			return nil, fmt.Errorf("DREDD_RUNNER_VERBOSITY must be one of: normal, verbose, debug; got: %s", verbosity)
		}
	}

	// Load Command - defaults to dredd
	cfg.Command = DefaultCommand
	if command, exists := os.LookupEnv("DREDD_RUNNER_COMMAND"); exists {
		if strings.TrimSpace(command) == "" {
			return nil, fmt.Errorf("DREDD_RUNNER_COMMAND cannot be empty")
		}
		cfg.Command = command
	}

	// Load Endpoint - defaults to the local development server
	cfg.Endpoint = DefaultEndpoint
	if endpoint, exists := os.LookupEnv("DREDD_RUNNER_ENDPOINT"); exists {
		if err := ValidateEndpoint(endpoint); err != nil {
			return nil, fmt.Errorf("DREDD_RUNNER_ENDPOINT %w", err)
		}
		cfg.Endpoint = endpoint
	}

	// Load Blueprints - space separated, defaults to none
	cfg.Blueprints = strings.Fields(os.Getenv("DREDD_RUNNER_BLUEPRINTS"))

	// Load Shell - defaults to exec
	shell := os.Getenv("DREDD_RUNNER_SHELL")
	if shell == "" {
		cfg.Shell = ShellExec
	} else {
		mode, err := ParseShellMode(shell)
		if err != nil {
			return nil, fmt.Errorf("DREDD_RUNNER_SHELL %w", err)
		}
		cfg.Shell = mode
	}

	// Load Color - defaults to true
	color, err := parseBoolEnv("DREDD_RUNNER_COLOR", true)
	if err != nil {
		return nil, err
	}
	cfg.Color = color

	return cfg, nil
}

// IsVerbose returns true if verbosity is verbose or debug
func (c *Config) IsVerbose() bool {
	return c.Verbosity == VerbosityVerbose || c.Verbosity == VerbosityDebug
}

// IsDebug returns true if verbosity is debug
func (c *Config) IsDebug() bool {
	return c.Verbosity == VerbosityDebug
}

// ValidateEndpoint checks that endpoint is a non-empty absolute http(s) URL
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("cannot be empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https, got: %s", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host, got: %s", endpoint)
	}
	return nil
}

// ParseShellMode parses an execution backend name
func ParseShellMode(s string) (ShellMode, error) {
	switch ShellMode(strings.ToLower(s)) {
	case ShellExec:
		return ShellExec, nil
	case ShellInterp:
		return ShellInterp, nil
	default:
		return "", fmt.Errorf("must be one of: exec, interp; got: %s", s)
	}
}

// parseBoolEnv parses a boolean environment variable with a default value
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be true or false, got: %s", key, value)
	}
}
