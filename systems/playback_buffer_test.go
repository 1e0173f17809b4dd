package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/silhouette/frames"
)

// frameStep is slightly longer than one frame at 10 fps so floor() lands cleanly.
const frameStep = 100*time.Millisecond + time.Millisecond

func instantLoader(w, h int) *frames.InstantLoader {
	return &frames.InstantLoader{Source: func(index int) (*frames.Frame, error) {
		return frames.NewFrame(w, h, uint8(index)), nil
	}}
}

// manualLoader hands out handles that the test resolves explicitly.
type manualLoader struct {
	handles map[int]*frames.PendingFrame
}

func newManualLoader() *manualLoader {
	return &manualLoader{handles: make(map[int]*frames.PendingFrame)}
}

func (l *manualLoader) Request(index int) *frames.PendingFrame {
	p := frames.NewPendingFrame(index)
	l.handles[index] = p
	return p
}

func (l *manualLoader) resolve(index int) {
	l.handles[index].Resolve(frames.NewFrame(1, 1, uint8(index)))
}

func mustBuffer(t *testing.T, cfg PlaybackConfig, loader frames.Loader) *PlaybackBuffer {
	t.Helper()
	b, err := NewPlaybackBuffer(cfg, loader)
	if err != nil {
		t.Fatalf("NewPlaybackBuffer failed: %v", err)
	}
	return b
}

func checkInvariants(t *testing.T, b *PlaybackBuffer) {
	t.Helper()
	if err := b.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestNewPlaybackBufferValidation(t *testing.T) {
	loader := instantLoader(1, 1)
	tests := []struct {
		name   string
		cfg    PlaybackConfig
		loader frames.Loader
	}{
		{"nil loader", PlaybackConfig{FrameCount: 10, FPS: 30, PrefetchDepth: 4}, nil},
		{"zero frames", PlaybackConfig{FrameCount: 0, FPS: 30, PrefetchDepth: 4}, loader},
		{"zero fps", PlaybackConfig{FrameCount: 10, FPS: 0, PrefetchDepth: 4}, loader},
		{"zero depth", PlaybackConfig{FrameCount: 10, FPS: 30, PrefetchDepth: 0}, loader},
		{"first index past end", PlaybackConfig{FrameCount: 10, FPS: 30, PrefetchDepth: 4, FirstIndex: 11}, loader},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPlaybackBuffer(tc.cfg, tc.loader); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestRefillFillsToDepth covers a 10-frame stream with depth 4 and an
// instantly resolving loader, starting the load cursor at 0.
func TestRefillFillsToDepth(t *testing.T) {
	b := mustBuffer(t, PlaybackConfig{FrameCount: 10, FPS: 10, PrefetchDepth: 4, FirstIndex: 0}, instantLoader(1, 1))

	for i := 0; i < 4; i++ {
		b.Refill()
		checkInvariants(t, b)
	}
	if b.LoadIndex() != 4 {
		t.Errorf("LoadIndex = %d, want 4", b.LoadIndex())
	}
	if b.Len() != 4 {
		t.Errorf("Len = %d, want 4", b.Len())
	}

	// Play through; refill must stop at the end of the stream
	for step := 0; step < 50; step++ {
		b.Tick(frameStep)
		b.AdvanceDisplay()
		b.Refill()
		checkInvariants(t, b)
	}
	if b.LoadIndex() != 10 {
		t.Errorf("LoadIndex = %d, want 10", b.LoadIndex())
	}
	if n := b.Refill(); n != 0 {
		t.Errorf("Refill at end of stream requested %d frames", n)
	}
	if b.PlayIndex() != 10 || !b.Finished() {
		t.Errorf("PlayIndex = %d, Finished = %v; want 10, true", b.PlayIndex(), b.Finished())
	}
}

func TestRefillStartsAfterBlankFrame(t *testing.T) {
	loader := instantLoader(1, 1)
	b := mustBuffer(t, PlaybackConfig{FrameCount: 100, FPS: 30, PrefetchDepth: 4, FirstIndex: 1}, loader)

	if n := b.Refill(); n != 4 {
		t.Fatalf("Refill requested %d, want 4", n)
	}
	got := loader.Requested()
	want := []int{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("requested %v, want %v", got, want)
		}
	}
	if b.LoadIndex() != 5 || b.Len() != 4 {
		t.Errorf("LoadIndex = %d, Len = %d; want 5, 4", b.LoadIndex(), b.Len())
	}
	checkInvariants(t, b)

	// Full queue: a second refill is a no-op
	if n := b.Refill(); n != 0 {
		t.Errorf("second Refill requested %d", n)
	}
}

func TestAdvanceDisplayWaitsForDueTime(t *testing.T) {
	b := mustBuffer(t, PlaybackConfig{FrameCount: 100, FPS: 10, PrefetchDepth: 8, FirstIndex: 1}, instantLoader(1, 1))
	b.Refill()

	if b.AdvanceDisplay() {
		t.Fatal("advanced before any time elapsed")
	}
	if b.Displayed() != nil || b.DisplayedIndex() != -1 {
		t.Fatal("blank start should have no displayed frame")
	}

	b.Tick(50 * time.Millisecond)
	if b.AdvanceDisplay() {
		t.Fatal("advanced before the first frame was due")
	}

	b.Tick(51 * time.Millisecond)
	if !b.AdvanceDisplay() {
		t.Fatal("did not advance when the frame was due")
	}
	if b.PlayIndex() != 1 || b.DisplayedIndex() != 1 {
		t.Errorf("PlayIndex = %d, DisplayedIndex = %d; want 1, 1", b.PlayIndex(), b.DisplayedIndex())
	}
	if got := b.Displayed().Intensity(0, 0); got != 1 {
		t.Errorf("displayed frame intensity = %d, want 1", got)
	}

	// Three frames due: one per call
	b.Tick(3 * frameStep)
	if !b.AdvanceDisplay() || b.PlayIndex() != 2 {
		t.Fatalf("PlayIndex = %d after one call, want 2", b.PlayIndex())
	}
	if b.Lag() != 2 {
		t.Errorf("Lag = %d, want 2", b.Lag())
	}
}

func TestAdvanceDisplayHoldsOnStall(t *testing.T) {
	loader := newManualLoader()
	b := mustBuffer(t, PlaybackConfig{FrameCount: 100, FPS: 10, PrefetchDepth: 4, FirstIndex: 1}, loader)
	b.Refill()

	b.Tick(5 * frameStep)
	for i := 0; i < 3; i++ {
		if b.AdvanceDisplay() {
			t.Fatal("advanced past an unresolved frame")
		}
	}
	if b.PlayIndex() != 0 || b.Underruns() != 3 {
		t.Errorf("PlayIndex = %d, Underruns = %d; want 0, 3", b.PlayIndex(), b.Underruns())
	}

	// A later frame resolving does not allow skipping the front one
	loader.resolve(2)
	if b.AdvanceDisplay() {
		t.Fatal("skipped an unresolved front frame")
	}

	loader.resolve(1)
	loader.resolve(3)
	var shown []int
	for b.AdvanceDisplay() {
		shown = append(shown, b.DisplayedIndex())
	}
	want := []int{1, 2, 3}
	if len(shown) != len(want) {
		t.Fatalf("shown %v, want %v", shown, want)
	}
	for i := range want {
		if shown[i] != want[i] {
			t.Fatalf("shown %v, want %v", shown, want)
		}
	}
	// Frame 4 is due but pending: display holds frame 3
	if b.DisplayedIndex() != 3 {
		t.Errorf("DisplayedIndex = %d, want 3", b.DisplayedIndex())
	}
	checkInvariants(t, b)
}

func TestFailedFrameStallsForever(t *testing.T) {
	loader := frames.LoaderFunc(func(index int) *frames.PendingFrame {
		p := frames.NewPendingFrame(index)
		p.Fail(nil)
		return p
	})
	b := mustBuffer(t, PlaybackConfig{FrameCount: 10, FPS: 10, PrefetchDepth: 2, FirstIndex: 1}, loader)
	b.Refill()
	b.Tick(time.Second)
	for i := 0; i < 10; i++ {
		b.AdvanceDisplay()
		b.Refill()
	}
	if b.PlayIndex() != 0 || b.LoadIndex() != 3 {
		t.Errorf("PlayIndex = %d, LoadIndex = %d; want 0, 3", b.PlayIndex(), b.LoadIndex())
	}
}

func TestEndOfStreamKeepsLastFrame(t *testing.T) {
	b := mustBuffer(t, PlaybackConfig{FrameCount: 3, FPS: 10, PrefetchDepth: 8, FirstIndex: 1}, instantLoader(1, 1))
	b.Refill()
	if !b.EndOfStream() || b.Len() != 2 {
		t.Fatalf("EndOfStream = %v, Len = %d; want true, 2", b.EndOfStream(), b.Len())
	}

	for i := 0; i < 10; i++ {
		b.Tick(frameStep)
		b.AdvanceDisplay()
		b.Refill()
	}
	if !b.Finished() || b.PlayIndex() != 2 || b.DisplayedIndex() != 2 {
		t.Errorf("Finished = %v, PlayIndex = %d, DisplayedIndex = %d", b.Finished(), b.PlayIndex(), b.DisplayedIndex())
	}
	if b.Underruns() != 0 {
		t.Errorf("end of stream counted %d underruns", b.Underruns())
	}
	if b.Displayed() == nil {
		t.Error("last frame should stay displayed")
	}
}

func TestTickWithoutElapsedDoesNotAdvance(t *testing.T) {
	b := mustBuffer(t, PlaybackConfig{FrameCount: 10, FPS: 30, PrefetchDepth: 4, FirstIndex: 1}, instantLoader(1, 1))
	b.Refill()
	for i := 0; i < 100; i++ {
		b.AdvanceDisplay()
	}
	if b.PlayIndex() != 0 || b.Elapsed() != 0 {
		t.Errorf("PlayIndex = %d, Elapsed = %v without ticks", b.PlayIndex(), b.Elapsed())
	}
}

// TestInvariantsUnderRandomSchedule drives the buffer with random ticks and
// random loader latency and checks the cursor invariants after every step.
func TestInvariantsUnderRandomSchedule(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		loader := newManualLoader()
		b := mustBuffer(t, PlaybackConfig{FrameCount: 200, FPS: 30, PrefetchDepth: 16, FirstIndex: 1}, loader)

		for step := 0; step < 2000; step++ {
			switch rng.Intn(4) {
			case 0:
				b.Refill()
			case 1:
				b.Tick(time.Duration(rng.Intn(50)) * time.Millisecond)
			case 2:
				b.AdvanceDisplay()
			case 3:
				for idx, p := range loader.handles {
					if !p.Ready() && rng.Intn(3) == 0 {
						loader.resolve(idx)
					}
				}
			}
			checkInvariants(t, b)
			if b.Len() > 16 {
				t.Fatalf("seed %d: Len %d exceeds depth", seed, b.Len())
			}
		}
	}
}

func TestStopwatch(t *testing.T) {
	var s Stopwatch
	s.Tick(time.Second)
	s.Pause()
	s.Tick(time.Second)
	if s.Elapsed() != time.Second || !s.Paused() {
		t.Errorf("Elapsed = %v while paused, want 1s", s.Elapsed())
	}
	s.Unpause()
	s.Tick(-time.Second)
	s.Tick(time.Second)
	if s.Elapsed() != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", s.Elapsed())
	}
	s.Reset()
	if s.Elapsed() != 0 {
		t.Errorf("Elapsed after Reset = %v", s.Elapsed())
	}
}
