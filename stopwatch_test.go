package bff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStopwatchElapsed(t *testing.T) {
	clock := clockz.NewFakeClock()
	sw := NewStopwatch().WithClock(clock)

	assert.Equal(t, time.Duration(0), sw.Elapsed())

	clock.Advance(150 * time.Millisecond)
	assert.Equal(t, 150*time.Millisecond, sw.Elapsed())

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 200*time.Millisecond, sw.Elapsed())
}

func TestStopwatchReset(t *testing.T) {
	clock := clockz.NewFakeClock()
	sw := NewStopwatch().WithClock(clock)

	clock.Advance(2 * time.Second)
	assert.Equal(t, 2*time.Second, sw.Reset())

	// Reset opens a new stage.
	assert.Equal(t, time.Duration(0), sw.Elapsed())
	clock.Advance(25 * time.Millisecond)
	assert.Equal(t, 25*time.Millisecond, sw.Elapsed())
}

func TestStopwatchLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	old := Logger()
	SetLogger(zap.New(core).Sugar())
	defer SetLogger(old)

	clock := clockz.NewFakeClock()
	sw := NewStopwatch().WithClock(clock)
	clock.Advance(time.Second)

	elapsed := sw.Log("stage done")
	assert.Equal(t, time.Second, elapsed)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "stage done", entry.Message)
	assert.Equal(t, "1s", entry.ContextMap()["elapsed"])

	// Logging does not reset the stopwatch.
	clock.Advance(time.Second)
	assert.Equal(t, 2*time.Second, sw.Elapsed())
}

func TestStopwatchRealClock(t *testing.T) {
	sw := NewStopwatch()
	assert.GreaterOrEqual(t, sw.Elapsed(), time.Duration(0))
}
