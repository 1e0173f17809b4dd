// Package telemetry collects playback and particle statistics over time
// windows and writes them as structured logs and CSV.
package telemetry

import "time"

// StreamSnapshot holds the playback buffer state sampled at flush time.
type StreamSnapshot struct {
	Playing     bool
	Elapsed     time.Duration
	PlayIndex   int
	LoadIndex   int
	QueueLen    int
	QueueReady  int
	TargetIndex int
	Lag         int
}

// FieldSnapshot holds the particle field state sampled at flush time.
type FieldSnapshot struct {
	Particles  int
	StillCount int
	StillAges  []float64 // Sorted in place by Flush
}

// Collector accumulates events within time windows and produces WindowStats.
// Windows are measured in driver time, so paused stretches still flush.
type Collector struct {
	window time.Duration

	now         time.Duration
	windowStart time.Duration

	// Event counters for current window
	steps           int
	playingSteps    int
	framesShown     int
	framesRequested int
	underruns       int
	fieldSkips      int
	toggles         int
}

// NewCollector creates a collector flushing every windowSec seconds.
func NewCollector(windowSec float64) *Collector {
	window := time.Duration(windowSec * float64(time.Second))
	if window <= 0 {
		window = 10 * time.Second
	}
	return &Collector{window: window}
}

// RecordStep records one driver step of length dt.
func (c *Collector) RecordStep(dt time.Duration, playing bool) {
	c.now += dt
	c.steps++
	if playing {
		c.playingSteps++
	}
}

// RecordFrameShown records a display advance.
func (c *Collector) RecordFrameShown() {
	c.framesShown++
}

// RecordRequests records frames requested by a refill.
func (c *Collector) RecordRequests(n int) {
	c.framesRequested += n
}

// RecordUnderruns records additional underrun steps.
func (c *Collector) RecordUnderruns(n int) {
	c.underruns += n
}

// RecordFieldSkip records a particle tick ignored by the frame guard.
func (c *Collector) RecordFieldSkip() {
	c.fieldSkips++
}

// RecordToggle records a play/pause toggle.
func (c *Collector) RecordToggle() {
	c.toggles++
}

// Now returns the total driver time recorded.
func (c *Collector) Now() time.Duration {
	return c.now
}

// ShouldFlush returns true if the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return c.now-c.windowStart >= c.window
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(stream StreamSnapshot, field FieldSnapshot) WindowStats {
	state := "paused"
	if stream.Playing {
		state = "playing"
	}

	var stillFraction float64
	if field.Particles > 0 {
		stillFraction = float64(field.StillCount) / float64(field.Particles)
	}
	ageMean, ageStd, ageP10, ageP50, ageP90 := ComputeAgeStats(field.StillAges)

	stats := WindowStats{
		WindowStartSec:  c.windowStart.Seconds(),
		WindowEndSec:    c.now.Seconds(),
		PlaybackSec:     stream.Elapsed.Seconds(),
		State:           state,
		PlayIndex:       stream.PlayIndex,
		LoadIndex:       stream.LoadIndex,
		QueueLen:        stream.QueueLen,
		QueueReady:      stream.QueueReady,
		TargetIndex:     stream.TargetIndex,
		Lag:             stream.Lag,
		Steps:           c.steps,
		PlayingSteps:    c.playingSteps,
		FramesShown:     c.framesShown,
		FramesRequested: c.framesRequested,
		Underruns:       c.underruns,
		FieldSkips:      c.fieldSkips,
		Toggles:         c.toggles,
		Particles:       field.Particles,
		StillFraction:   stillFraction,
		AgeMean:         ageMean,
		AgeStd:          ageStd,
		AgeP10:          ageP10,
		AgeP50:          ageP50,
		AgeP90:          ageP90,
	}

	c.windowStart = c.now
	c.steps = 0
	c.playingSteps = 0
	c.framesShown = 0
	c.framesRequested = 0
	c.underruns = 0
	c.fieldSkips = 0
	c.toggles = 0

	return stats
}
