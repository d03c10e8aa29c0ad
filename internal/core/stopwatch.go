package core

import "time"

// Stopwatch accumulates elapsed play time from explicit Advance calls.
// It never reads the wall clock, so a fixed tick rate makes it deterministic.
type Stopwatch struct {
	running bool
	elapsed time.Duration
}

// Start begins counting. Starting a running stopwatch is a no-op.
func (s *Stopwatch) Start() {
	s.running = true
}

// Stop pauses counting. Stopping a stopped stopwatch is a no-op.
func (s *Stopwatch) Stop() {
	s.running = false
}

// Reset stops the stopwatch and clears the elapsed time.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Advance adds dt to the elapsed time if the stopwatch is running.
func (s *Stopwatch) Advance(dt time.Duration) {
	if s.running && dt > 0 {
		s.elapsed += dt
	}
}

// Elapsed returns the accumulated time.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.elapsed
}

// Seconds returns the elapsed time in whole seconds.
func (s *Stopwatch) Seconds() int {
	return int(s.elapsed / time.Second)
}

// TickDuration converts a tick rate into the duration of one tick.
func TickDuration(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}
