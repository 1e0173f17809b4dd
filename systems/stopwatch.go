package systems

import "time"

// Stopwatch accumulates elapsed time from explicit ticks.
// It never reads the wall clock itself; the driver feeds it frame deltas.
type Stopwatch struct {
	elapsed time.Duration
	paused  bool
}

// Tick adds dt unless the stopwatch is paused.
func (s *Stopwatch) Tick(dt time.Duration) {
	if s.paused || dt <= 0 {
		return
	}
	s.elapsed += dt
}

// Elapsed returns the accumulated time.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.elapsed
}

// Pause freezes the stopwatch.
func (s *Stopwatch) Pause() {
	s.paused = true
}

// Unpause resumes the stopwatch.
func (s *Stopwatch) Unpause() {
	s.paused = false
}

// Paused reports whether ticks are ignored.
func (s *Stopwatch) Paused() bool {
	return s.paused
}

// Reset clears the elapsed time.
func (s *Stopwatch) Reset() {
	s.elapsed = 0
}
