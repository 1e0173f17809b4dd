package frames

import (
	"sync"
	"sync/atomic"
)

// FrameState tags how far a frame request has progressed.
type FrameState uint32

const (
	FrameRequested FrameState = iota // Not resolved yet
	FrameReady                       // Raster available
	FrameFailed                      // Loading failed; never becomes ready
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case FrameRequested:
		return "requested"
	case FrameReady:
		return "ready"
	case FrameFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PendingFrame is a handle to the raster for exactly one frame index.
// It is resolved at most once by a loader and polled by its consumer;
// polling never blocks.
type PendingFrame struct {
	index int
	state atomic.Uint32
	once  sync.Once

	// Written before state is published, read only after observing it.
	frame *Frame
	err   error
}

// NewPendingFrame returns an unresolved handle for index.
func NewPendingFrame(index int) *PendingFrame {
	return &PendingFrame{index: index}
}

// ResolvedFrame returns a handle that is already ready.
func ResolvedFrame(index int, f *Frame) *PendingFrame {
	p := NewPendingFrame(index)
	p.Resolve(f)
	return p
}

// Index returns the frame index this handle was requested for.
func (p *PendingFrame) Index() int {
	return p.index
}

// State returns the current resolution state.
func (p *PendingFrame) State() FrameState {
	return FrameState(p.state.Load())
}

// Ready reports whether the raster is available.
func (p *PendingFrame) Ready() bool {
	return p.State() == FrameReady
}

// Frame returns the raster, or nil if the handle is not ready.
func (p *PendingFrame) Frame() *Frame {
	if !p.Ready() {
		return nil
	}
	return p.frame
}

// Err returns the loading error of a failed handle.
func (p *PendingFrame) Err() error {
	if p.State() != FrameFailed {
		return nil
	}
	return p.err
}

// Resolve publishes the raster. Only the first Resolve or Fail has effect.
func (p *PendingFrame) Resolve(f *Frame) {
	p.once.Do(func() {
		p.frame = f
		p.state.Store(uint32(FrameReady))
	})
}

// Fail marks the handle as permanently unresolvable.
func (p *PendingFrame) Fail(err error) {
	p.once.Do(func() {
		p.err = err
		p.state.Store(uint32(FrameFailed))
	})
}
