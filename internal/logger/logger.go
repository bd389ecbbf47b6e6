package logger

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the logging interface used across onboard. It is satisfied by
// go.uber.org/zap.SugaredLogger.
//
// Loggers should be injected and Named per component, e.g. lggr.Named("carousel").
// Tests should use [Test] or [TestObserved]; [New] is for the running program.
//
// Levels
//   - Error: an infrastructure operation failed (prefs write, config reload).
//   - Warn: something degraded but the program carries on.
//   - Info: lifecycle events (session start, onboarding completed).
//   - Debug: per-gesture decisions, dropped samples, ignored input.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Debugf(format string, values ...any)
	Infof(format string, values ...any)
	Warnf(format string, values ...any)
	Errorf(format string, values ...any)

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	// Named returns a child logger with name appended.
	Named(name string) Logger
	// With returns a child logger carrying the given fields.
	With(keysAndValues ...any) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

// Config selects the level and destination of the program logger.
type Config struct {
	Level string
	// Path is the file logs are appended to. Empty means no logging, since
	// the terminal belongs to the UI.
	Path string
}

// New returns a Logger for c.
func New(c Config) (Logger, error) {
	if strings.TrimSpace(c.Path) == "" {
		return Nop(), nil
	}
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	return NewWith(func(cfg *zap.Config) {
		cfg.Level.SetLevel(lvl)
		cfg.Encoding = "console"
		cfg.Sampling = nil
		cfg.OutputPaths = []string{c.Path}
		cfg.ErrorOutputPaths = []string{c.Path}
	})
}

// NewWith returns a new Logger from a modified [zap.Config].
func NewWith(cfgFn func(*zap.Config)) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfgFn(&cfg)
	core, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &logger{core.Sugar()}, nil
}

// ParseLevel maps a level name to a zap level. Empty defaults to info.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// Test returns a new test Logger for tb.
func Test(tb testing.TB) Logger {
	tb.Helper()
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000000")
	lggr := zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zaptest.NewTestingWriter(tb),
			zapcore.DebugLevel,
		),
	)
	return &logger{lggr.Sugar()}
}

// TestObserved returns a new test Logger for tb and ObservedLogs at the given Level.
func TestObserved(tb testing.TB, lvl zapcore.Level) (Logger, *observer.ObservedLogs) {
	tb.Helper()
	oCore, logs := observer.New(lvl)
	observe := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, oCore)
	})
	return &logger{zaptest.NewLogger(tb, zaptest.WrapOptions(observe, zap.AddCaller())).Sugar()}, logs
}

// Nop returns a no-op Logger.
func Nop() Logger {
	return &logger{zap.New(zapcore.NewNopCore()).Sugar()}
}

type logger struct {
	*zap.SugaredLogger
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}
