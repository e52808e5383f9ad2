package bff

import "github.com/zoobzio/clockz"

// Clock provides time operations for deterministic testing. The timing
// helpers accept a Clock so tests can drive time manually with a fake
// implementation instead of sleeping.
type Clock = clockz.Clock

// Timer represents a single event timer.
type Timer = clockz.Timer

// Ticker delivers ticks at intervals.
type Ticker = clockz.Ticker

// RealClock is the default Clock using standard time.
var RealClock Clock = clockz.RealClock
