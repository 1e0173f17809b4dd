package systems

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pthm-cable/silhouette/frames"
)

// PlaybackConfig fixes the shape of the frame stream.
type PlaybackConfig struct {
	FrameCount    int     // Total frames in the video
	FPS           float64 // Display rate
	PrefetchDepth int     // Max frames requested but not yet displayed
	FirstIndex    int     // First index requested; 1 leaves frame 0 as the blank start
}

// PlaybackBuffer prefetches frames ahead of the display cursor and releases
// them when the playback clock says they are due.
//
// Invariants: 0 <= playIndex <= loadIndex <= FrameCount and
// Len() == loadIndex - FirstIndex - playIndex <= PrefetchDepth.
type PlaybackBuffer struct {
	cfg    PlaybackConfig
	loader frames.Loader

	// FIFO ring of requested frames
	ring  []*frames.PendingFrame
	head  int
	count int

	loadIndex int // Next index to request
	playIndex int // Frames displayed so far
	clock     Stopwatch
	displayed *frames.PendingFrame

	underruns int // Steps where a frame was due but none was ready
}

// NewPlaybackBuffer creates a buffer drawing frames from loader.
func NewPlaybackBuffer(cfg PlaybackConfig, loader frames.Loader) (*PlaybackBuffer, error) {
	if loader == nil {
		return nil, errors.New("playback buffer: nil loader")
	}
	if cfg.FrameCount < 1 {
		return nil, fmt.Errorf("playback buffer: frame count must be positive, got %d", cfg.FrameCount)
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("playback buffer: fps must be positive, got %g", cfg.FPS)
	}
	if cfg.PrefetchDepth < 1 {
		return nil, fmt.Errorf("playback buffer: prefetch depth must be positive, got %d", cfg.PrefetchDepth)
	}
	if cfg.FirstIndex < 0 || cfg.FirstIndex > cfg.FrameCount {
		return nil, fmt.Errorf("playback buffer: first index %d outside [0, %d]", cfg.FirstIndex, cfg.FrameCount)
	}

	return &PlaybackBuffer{
		cfg:       cfg,
		loader:    loader,
		ring:      make([]*frames.PendingFrame, cfg.PrefetchDepth),
		loadIndex: cfg.FirstIndex,
	}, nil
}

// Tick advances the playback clock. The caller only ticks while playing.
func (b *PlaybackBuffer) Tick(dt time.Duration) {
	b.clock.Tick(dt)
}

// Refill requests frames until the queue is full or the stream is exhausted.
// It returns the number of frames requested.
func (b *PlaybackBuffer) Refill() int {
	n := 0
	for b.count < len(b.ring) && b.loadIndex < b.cfg.FrameCount {
		p := b.loader.Request(b.loadIndex)
		if p == nil {
			// A loader that cannot hand out a handle is treated as never resolving
			p = frames.NewPendingFrame(b.loadIndex)
		}
		b.ring[(b.head+b.count)%len(b.ring)] = p
		b.count++
		b.loadIndex++
		n++
	}
	return n
}

// AdvanceDisplay shows the next frame if one is due and ready.
// At most one frame is released per call, so a stalled stream catches up
// over successive steps instead of skipping frames.
func (b *PlaybackBuffer) AdvanceDisplay() bool {
	if b.playIndex >= b.TargetIndex() {
		return false
	}
	if b.count == 0 {
		if !b.EndOfStream() {
			b.underruns++
		}
		return false
	}

	front := b.ring[b.head]
	if !front.Ready() {
		b.underruns++
		return false
	}

	b.ring[b.head] = nil
	b.head = (b.head + 1) % len(b.ring)
	b.count--
	b.displayed = front
	b.playIndex++
	return true
}

// TargetIndex returns how many frames should have been shown by now.
func (b *PlaybackBuffer) TargetIndex() int {
	return int(math.Floor(b.clock.Elapsed().Seconds() / (1.0 / b.cfg.FPS)))
}

// Displayed returns the raster currently on screen, or nil before the first frame.
func (b *PlaybackBuffer) Displayed() *frames.Frame {
	if b.displayed == nil {
		return nil
	}
	return b.displayed.Frame()
}

// DisplayedIndex returns the frame index on screen, or -1 for the blank start.
func (b *PlaybackBuffer) DisplayedIndex() int {
	if b.displayed == nil {
		return -1
	}
	return b.displayed.Index()
}

// LoadIndex returns the next index that will be requested.
func (b *PlaybackBuffer) LoadIndex() int {
	return b.loadIndex
}

// PlayIndex returns the number of frames displayed so far.
func (b *PlaybackBuffer) PlayIndex() int {
	return b.playIndex
}

// Len returns the number of queued frames.
func (b *PlaybackBuffer) Len() int {
	return b.count
}

// Ready returns how many queued frames at the front are resolved.
func (b *PlaybackBuffer) Ready() int {
	n := 0
	for i := 0; i < b.count; i++ {
		if !b.ring[(b.head+i)%len(b.ring)].Ready() {
			break
		}
		n++
	}
	return n
}

// Elapsed returns the playback clock.
func (b *PlaybackBuffer) Elapsed() time.Duration {
	return b.clock.Elapsed()
}

// Lag returns how many due frames have not been shown yet.
func (b *PlaybackBuffer) Lag() int {
	return max(0, b.TargetIndex()-b.playIndex)
}

// Underruns returns the number of steps a due frame was unavailable.
func (b *PlaybackBuffer) Underruns() int {
	return b.underruns
}

// EndOfStream reports whether every frame has been requested.
func (b *PlaybackBuffer) EndOfStream() bool {
	return b.loadIndex >= b.cfg.FrameCount
}

// Finished reports whether the last frame has been displayed.
func (b *PlaybackBuffer) Finished() bool {
	return b.EndOfStream() && b.count == 0
}

// Config returns the stream configuration.
func (b *PlaybackBuffer) Config() PlaybackConfig {
	return b.cfg
}

// CheckInvariants reports any violated cursor or queue invariant.
func (b *PlaybackBuffer) CheckInvariants() error {
	if b.playIndex < 0 || b.playIndex > b.loadIndex || b.loadIndex > b.cfg.FrameCount {
		return fmt.Errorf("cursor order violated: play %d, load %d, frames %d", b.playIndex, b.loadIndex, b.cfg.FrameCount)
	}
	if b.count > b.cfg.PrefetchDepth {
		return fmt.Errorf("queue length %d exceeds prefetch depth %d", b.count, b.cfg.PrefetchDepth)
	}
	if want := b.loadIndex - b.cfg.FirstIndex - b.playIndex; b.count != want {
		return fmt.Errorf("queue length %d, want load - first - play = %d", b.count, want)
	}
	return nil
}
