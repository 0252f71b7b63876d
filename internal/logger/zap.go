package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap.Logger to provide our logging interface
type ZapLogger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

func newZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{Logger: z, sugar: z.Sugar()}
}

// NewZapLogger creates a new ZapLogger with the specified configuration
func NewZapLogger(level Level, development bool) (*ZapLogger, error) {
	config := zapConfig(level, development)

	logger, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return newZapLogger(logger), nil
}

func zapConfig(level Level, development bool) zap.Config {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		// Development mode would trace every warning, including a skipped run
		config.DisableStacktrace = true
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	config.Level = zap.NewAtomicLevelAt(zapLevel(level))
	return config
}

// NewZapLoggerFromEnv creates a logger configured from environment variables
func NewZapLoggerFromEnv() (*ZapLogger, error) {
	cfg := ConfigFromEnv()

	level := cfg.Level
	if os.Getenv(envLogLevel) == "" {
		switch os.Getenv(envVerbosity) {
		case "debug":
			level = DebugLevel
		case "verbose":
			level = InfoLevel
		default:
			level = WarnLevel
		}
	}

	logger, err := NewZapLogger(level, cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}

	return logger.withConfig(cfg), nil
}

// withConfig applies the caller and stack trace settings from cfg.
func (l *ZapLogger) withConfig(cfg *Config) *ZapLogger {
	opts := []zap.Option{zap.AddStacktrace(stacktraceLevel(cfg.Stacktrace))}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller())
	}
	return newZapLogger(l.WithOptions(opts...))
}

func stacktraceLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "panic":
		return zap.PanicLevel
	default:
		return zap.FatalLevel
	}
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zap.DebugLevel
	case WarnLevel:
		return zap.WarnLevel
	case ErrorLevel:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// WithFields adds multiple fields to the logger context
func (l *ZapLogger) WithFields(fields map[string]interface{}) *Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return &Logger{zap: newZapLogger(l.With(zapFields...))}
}

// Legacy interface compatibility

func (l *ZapLogger) Debug(msg string) {
	l.Logger.Debug(msg)
}

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Info(msg string) {
	l.Logger.Info(msg)
}

func (l *ZapLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Warn(msg string) {
	l.Logger.Warn(msg)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *ZapLogger) Error(msg string) {
	l.Logger.Error(msg)
}

func (l *ZapLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes any buffered log entries
func (l *ZapLogger) Sync() error {
	return l.Logger.Sync()
}
