package bff

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
)

// NewLogger returns a new zap.SugaredLogger using the production config,
// or the development config when BFF_DEBUG=true is set.
func NewLogger() *zap.SugaredLogger {
	var config zap.Config
	debugMode, ok := os.LookupEnv("BFF_DEBUG")
	if ok && debugMode == "true" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.OutputPaths = []string{"stdout"}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named("bff").Sugar()
}

var (
	loggerMu  sync.RWMutex
	pkgLogger *zap.SugaredLogger
)

// Logger returns the package logger, building it on first use. Helpers
// that log without taking a context, such as LogFrame and ParseDates,
// write through it.
func Logger() *zap.SugaredLogger {
	loggerMu.RLock()
	l := pkgLogger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if pkgLogger == nil {
		pkgLogger = NewLogger()
	}
	return pkgLogger
}

// SetLogger replaces the package logger, for callers that already carry
// a configured zap logger and for capturing output in tests.
func SetLogger(logger *zap.SugaredLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	pkgLogger = logger
}

type loggerKey struct{}

// WithLogger returns a copy of parent context in which the value
// associated with the logger key is the supplied logger.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger in the context, falling back to the
// package logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return Logger()
}
