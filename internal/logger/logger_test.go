package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Backland-Labs/dredd-runner/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(level)
	l.SetOutput(&buf)
	return l, &buf
}

// observe swaps the core of z for an in-memory one, keeping its options
func observe(z *ZapLogger) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	wrapped := z.WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core { return core }))
	return newZapLogger(wrapped), logs
}

// TestNewLogger tests the creation of a new logger instance
func TestNewLogger(t *testing.T) {
	for _, level := range []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel} {
		if got := New(level).level; got != level {
			t.Errorf("New(%v) level = %v", level, got)
		}
	}
}

// TestLoggerLevels tests which messages each level lets through
func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		log       func(l *Logger)
		indicator string
		wantLine  bool
	}{
		{"debug at debug", DebugLevel, func(l *Logger) { l.Debug("rendered command") }, "[DEBUG]", true},
		{"debug at info", InfoLevel, func(l *Logger) { l.Debug("rendered command") }, "[DEBUG]", false},
		{"info at info", InfoLevel, func(l *Logger) { l.Info("dredd finished") }, "[INFO]", true},
		{"info at warn", WarnLevel, func(l *Logger) { l.Info("dredd finished") }, "[INFO]", false},
		{"warn at warn", WarnLevel, func(l *Logger) { l.Warn("skipping run") }, "[WARN]", true},
		{"warn at error", ErrorLevel, func(l *Logger) { l.Warn("skipping run") }, "[WARN]", false},
		{"error at error", ErrorLevel, func(l *Logger) { l.Error("dredd could not be run") }, "[ERROR]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferLogger(tt.level)

			tt.log(l)
			output := buf.String()

			if !tt.wantLine {
				if output != "" {
					t.Errorf("expected no output, got %q", output)
				}
				return
			}
			if !strings.Contains(output, time.Now().Format("2006-01-02")) {
				t.Error("log line should contain date in YYYY-MM-DD format")
			}
			if !strings.Contains(output, tt.indicator) {
				t.Errorf("log line should contain %s, got %q", tt.indicator, output)
			}
		})
	}
}

// TestLoggerFormatting tests printf-style formatting
func TestLoggerFormatting(t *testing.T) {
	l, buf := newBufferLogger(DebugLevel)

	l.Debugf("rendered %s with %d flags", "dredd", 2)
	if !strings.Contains(buf.String(), "rendered dredd with 2 flags") {
		t.Error("Debugf should support printf-style formatting")
	}

	buf.Reset()
	l.Warnf("exit code %d", 3)
	if !strings.Contains(buf.String(), "exit code 3") {
		t.Error("Warnf should support printf-style formatting")
	}

	buf.Reset()
	l.Errorf("error %x", 255)
	if !strings.Contains(buf.String(), "error ff") {
		t.Error("Errorf should support printf-style formatting")
	}
}

// TestLoggerWithFields tests logging with contextual information
func TestLoggerWithFields(t *testing.T) {
	l, buf := newBufferLogger(DebugLevel)

	l.WithField("run_id", "abc").Info("dredd finished")
	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Error("WithField should add field to log output")
	}

	buf.Reset()
	l.WithFields(map[string]interface{}{
		"run_id":    "abc",
		"exit_code": 1,
		"command":   "dredd",
	}).WithField("duration_ms", 12.5).Info("dredd finished")

	want := "dredd finished command=dredd duration_ms=12.5 exit_code=1 run_id=abc"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("fields should be sorted by key, got %q", buf.String())
	}

	buf.Reset()
	l.Info("no fields")
	if strings.Contains(buf.String(), "run_id") {
		t.Error("WithFields should not modify the parent logger")
	}
}

// TestGlobalLogger tests the global logger instance
func TestGlobalLogger(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	if original == nil {
		t.Fatal("GetLogger should return a non-nil logger")
	}

	custom, buf := newBufferLogger(DebugLevel)
	SetLogger(custom)
	Debug("global logger test")
	Warnf("global %s", "warning")

	if !strings.Contains(buf.String(), "global logger test") {
		t.Error("SetLogger should update the global logger")
	}
	if !strings.Contains(buf.String(), "[WARN] global warning") {
		t.Error("package-level helpers should log through the global logger")
	}
}

// TestLevelFromString tests parsing log levels from strings
func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"ERROR", ErrorLevel},
		{"invalid", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LevelFromString(tt.input); got != tt.expected {
				t.Errorf("LevelFromString(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestNewZapLogger tests that the zap backend honors the requested level
func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		level       Level
		development bool
		enabled     zap.AtomicLevel
	}{
		{DebugLevel, true, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{InfoLevel, false, zap.NewAtomicLevelAt(zap.InfoLevel)},
		{WarnLevel, true, zap.NewAtomicLevelAt(zap.WarnLevel)},
		{ErrorLevel, false, zap.NewAtomicLevelAt(zap.ErrorLevel)},
	}

	for _, tt := range tests {
		z, err := NewZapLogger(tt.level, tt.development)
		if err != nil {
			t.Fatalf("NewZapLogger(%v) error = %v", tt.level, err)
		}
		want := tt.enabled.Level()
		if !z.Core().Enabled(want) {
			t.Errorf("level %v should be enabled", want)
		}
		if want > zap.DebugLevel && z.Core().Enabled(want-1) {
			t.Errorf("level %v should be disabled", want-1)
		}
	}
}

// TestZapLoggerFromEnv tests environment driven zap configuration
func TestZapLoggerFromEnv(t *testing.T) {
	t.Setenv(envLogLevel, "")
	t.Setenv(envVerbosity, "debug")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envLogCaller, "true")
	t.Setenv(envLogStacktrace, "error")

	z, err := NewZapLoggerFromEnv()
	if err != nil {
		t.Fatalf("NewZapLoggerFromEnv() error = %v", err)
	}
	if !z.Core().Enabled(zap.DebugLevel) {
		t.Error("DREDD_RUNNER_VERBOSITY=debug should enable debug logs")
	}

	t.Setenv(envLogLevel, "error")
	z, err = NewZapLoggerFromEnv()
	if err != nil {
		t.Fatalf("NewZapLoggerFromEnv() error = %v", err)
	}
	if z.Core().Enabled(zap.WarnLevel) {
		t.Error("DREDD_RUNNER_LOG_LEVEL should take precedence over verbosity")
	}
}

// TestInitializeFromConfig tests verbosity to level mapping
func TestInitializeFromConfig(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })
	t.Setenv(envLogLevel, "")

	tests := []struct {
		verbosity config.Verbosity
		want      Level
	}{
		{config.VerbosityNormal, WarnLevel},
		{config.VerbosityVerbose, InfoLevel},
		{config.VerbosityDebug, DebugLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.verbosity), func(t *testing.T) {
			InitializeFromConfig(&config.Config{Verbosity: tt.verbosity})

			l := GetLogger()
			if l.level != tt.want {
				t.Errorf("level = %v, want %v", l.level, tt.want)
			}
			if l.zap == nil {
				t.Fatal("expected zap backend")
			}
			if !l.zap.Core().Enabled(zapLevel(tt.want)) {
				t.Errorf("zap backend should enable %v", tt.want)
			}
		})
	}
}

// TestConfigFromEnv tests logger configuration parsing
func TestConfigFromEnv(t *testing.T) {
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "JSON")
	t.Setenv(envLogCaller, "true")
	t.Setenv(envLogStacktrace, "Error")

	cfg := ConfigFromEnv()

	if cfg.Level != DebugLevel {
		t.Errorf("Level = %v, want %v", cfg.Level, DebugLevel)
	}
	if cfg.Format != "json" || cfg.IsDevelopment() {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.Caller {
		t.Error("Caller should be true")
	}
	if cfg.Stacktrace != "error" {
		t.Errorf("Stacktrace = %q, want error", cfg.Stacktrace)
	}
}

// TestDevelopmentLoggerSkipsWarnStacktraces tests that console mode does not
// attach stack traces to warnings
func TestDevelopmentLoggerSkipsWarnStacktraces(t *testing.T) {
	if !zapConfig(WarnLevel, true).DisableStacktrace {
		t.Error("development config should disable zap's default stack traces")
	}

	z, err := NewZapLogger(WarnLevel, true)
	if err != nil {
		t.Fatalf("NewZapLogger() error = %v", err)
	}
	z, logs := observe(z)
	z.Warn("Skipping run")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Stack != "" {
		t.Errorf("warning should carry no stack trace, got %q", entries[0].Stack)
	}
}

// TestZapLoggerWithConfig tests caller and stack trace options
func TestZapLoggerWithConfig(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		warnStack  bool
		errorStack bool
		caller     bool
	}{
		{"defaults", Config{Stacktrace: "panic"}, false, false, false},
		{"error traces", Config{Stacktrace: "error"}, false, true, false},
		{"warn traces", Config{Stacktrace: "warn"}, true, true, false},
		{"caller", Config{Stacktrace: "panic", Caller: true}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, logs := observe(newZapLogger(zap.NewNop()).withConfig(&tt.cfg))
			z.Warn("warn")
			z.Error("error")

			entries := logs.All()
			if len(entries) != 2 {
				t.Fatalf("got %d entries, want 2", len(entries))
			}
			if got := entries[0].Stack != ""; got != tt.warnStack {
				t.Errorf("warn stack = %v, want %v", got, tt.warnStack)
			}
			if got := entries[1].Stack != ""; got != tt.errorStack {
				t.Errorf("error stack = %v, want %v", got, tt.errorStack)
			}
			if got := entries[0].Caller.Defined; got != tt.caller {
				t.Errorf("caller = %v, want %v", got, tt.caller)
			}
		})
	}
}

// TestInitializeFromConfigAppliesStacktrace tests that re-initializing keeps
// the environment's stack trace level
func TestInitializeFromConfigAppliesStacktrace(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })
	t.Setenv(envLogLevel, "")
	t.Setenv(envLogFormat, "")
	t.Setenv(envLogCaller, "")
	t.Setenv(envLogStacktrace, "error")

	InitializeFromConfig(&config.Config{Verbosity: config.VerbosityNormal})

	l := GetLogger()
	if l.zap == nil {
		t.Fatal("expected zap backend")
	}
	z, logs := observe(l.zap)
	z.Warn("warn")
	z.Error("error")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Stack != "" {
		t.Error("warning should carry no stack trace")
	}
	if entries[1].Stack == "" {
		t.Error("DREDD_RUNNER_LOG_STACKTRACE=error should trace errors")
	}
}
