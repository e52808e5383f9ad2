package bff

import "time"

// Stopwatch measures elapsed time between the stages of an analysis
// script. It starts on creation; Reset marks the beginning of the next
// stage. Time flows through the Clock abstraction, so tests advance a
// fake clock instead of sleeping.
type Stopwatch struct {
	clock Clock
	start time.Time
}

// NewStopwatch creates a started stopwatch using the real clock.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{
		clock: RealClock,
		start: RealClock.Now(),
	}
}

// WithClock replaces the clock and restarts the stopwatch.
func (s *Stopwatch) WithClock(clock Clock) *Stopwatch {
	s.clock = clock
	s.start = clock.Now()
	return s
}

// Elapsed returns the time since the stopwatch started or was last reset.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.clock.Now().Sub(s.start)
}

// Reset restarts the stopwatch and returns the elapsed time up to the
// reset, so a stage can be closed and the next one opened in one call.
func (s *Stopwatch) Reset() time.Duration {
	now := s.clock.Now()
	elapsed := now.Sub(s.start)
	s.start = now
	return elapsed
}

// Log writes the elapsed time at info level with the given message and
// returns it. The stopwatch keeps running.
func (s *Stopwatch) Log(msg string) time.Duration {
	elapsed := s.Elapsed()
	Logger().Infow(msg, "elapsed", elapsed.String())
	return elapsed
}
