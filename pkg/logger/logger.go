package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	envLocal = "local"
	envTest  = "test"
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	skipped = zap.NewNop()
)

// SetupLogger builds the process logger for env and installs it as the package default.
func SetupLogger(env string, level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case envLocal, envTest:
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	SetLogger(l)

	return l, nil
}

// SetLogger replaces the package default logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	base = l
	skipped = l.WithOptions(zap.AddCallerSkip(1))
	mu.Unlock()
}

func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return skipped
}

func Debug(msg string, fields ...zap.Field) {
	get().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	get().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	get().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	get().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	get().Fatal(msg, fields...)
}

func Sync() error {
	return Logger().Sync()
}
