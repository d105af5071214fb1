// Package logger wraps the zap logger shared by the application.
package logger

import (
	"go.uber.org/zap"
)

type LoggerI interface {
	Info(msg string, keysAndValues ...interface{})
	Init(lvl string) error
}

type Logger struct {
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log: zap.NewNop(),
	}
}

// Init replaces the logger with a production logger at level.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.InitialFields = map[string]interface{}{"app": "webpages"}

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}

// Named returns a child logger for a component.
func (l *Logger) Named(component string) *zap.Logger {
	return l.Log.Named(component)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Log.Sugar().Infow(msg, keysAndValues...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.Log.Sync()
}
