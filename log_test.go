package bff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)

	t.Setenv("BFF_DEBUG", "true")
	debug := NewLogger()
	assert.NotNil(t, debug)
}

func TestLoggerContext(t *testing.T) {
	logger := zap.NewNop().Sugar()

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	// Without a logger in the context the package logger is returned.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestSetLogger(t *testing.T) {
	old := Logger()
	defer SetLogger(old)

	replacement := zap.NewNop().Sugar()
	SetLogger(replacement)
	assert.Same(t, replacement, Logger())
}
