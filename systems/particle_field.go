package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/silhouette/components"
	"github.com/pthm-cable/silhouette/frames"
)

// RandSource supplies the random walk. *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	Width, Height int     // Domain and expected raster size
	Count         int     // Particle population
	Step          int     // Random step range [-Step, Step] per axis
	Threshold     uint8   // Intensity above this keeps a particle moving
	FadeTau       float64 // Fade time constant in frames
}

// ParticleField random-walks particles over bright pixels and freezes them
// over dark ones, in a toroidal domain centred on the origin.
type ParticleField struct {
	cfg          FieldConfig
	halfW, halfH float32
	rng          RandSource

	particles []components.Particle
	colors    []components.Color

	stillCount int // Particles on dark pixels in the last tick
	ticks      int // Ticks that sampled a frame
	skipped    int // Ticks ignored because of a missing or mismatched frame
}

// NewParticleField spawns cfg.Count particles at random integer positions.
func NewParticleField(cfg FieldConfig, rng RandSource) (*ParticleField, error) {
	if rng == nil {
		return nil, errors.New("particle field: nil random source")
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("particle field: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Count < 0 || cfg.Step < 0 {
		return nil, fmt.Errorf("particle field: invalid count %d or step %d", cfg.Count, cfg.Step)
	}
	if cfg.FadeTau <= 0 {
		return nil, fmt.Errorf("particle field: fade tau must be positive, got %g", cfg.FadeTau)
	}

	f := &ParticleField{
		cfg:       cfg,
		halfW:     float32(cfg.Width) / 2,
		halfH:     float32(cfg.Height) / 2,
		rng:       rng,
		particles: make([]components.Particle, cfg.Count),
		colors:    make([]components.Color, cfg.Count),
	}
	for i := range f.particles {
		f.particles[i].Pos = components.Position{
			X: float32(rng.Intn(cfg.Width)) - f.halfW,
			Y: float32(rng.Intn(cfg.Height)) - f.halfH,
		}
	}
	return f, nil
}

// Tick updates every particle against the displayed frame.
// A nil frame or one whose size differs from the domain leaves all
// particles untouched and returns false.
func (f *ParticleField) Tick(frame *frames.Frame, playIndex int) bool {
	if !frame.SizeMatches(f.cfg.Width, f.cfg.Height) {
		f.skipped++
		return false
	}

	still := 0
	for i := range f.particles {
		p := &f.particles[i]

		x, y := f.PixelAt(p.Pos)
		if frame.Intensity(x, y) > f.cfg.Threshold {
			p.Pos.X += float32(f.randomStep())
			p.Pos.Y += float32(f.randomStep())
		} else {
			p.LastStill = playIndex
			still++
		}

		p.Pos.X = Wrap(p.Pos.X, f.halfW)
		p.Pos.Y = Wrap(p.Pos.Y, f.halfH)
	}

	f.stillCount = still
	f.ticks++
	return true
}

// PixelAt maps a domain position to raster coordinates.
// Domain y grows upward while raster rows grow downward, so the row is flipped.
// Coordinates saturate at zero and are clamped into the raster.
func (f *ParticleField) PixelAt(pos components.Position) (x, y int) {
	x = saturatingFloor(pos.X + f.halfW)
	y = saturatingFloor(pos.Y + f.halfH)
	y = max(0, f.cfg.Height-1-y)

	x = min(x, f.cfg.Width-1)
	y = min(y, f.cfg.Height-1)
	return x, y
}

// randomStep returns a uniform integer in [-Step, Step].
func (f *ParticleField) randomStep() int {
	return f.rng.Intn(2*f.cfg.Step+1) - f.cfg.Step
}

// UpdateColors recomputes the fade colour of every particle.
func (f *ParticleField) UpdateColors(playIndex int) {
	for i := range f.particles {
		f.colors[i] = FadeColor(f.particles[i].StillAge(playIndex), f.cfg.FadeTau)
	}
}

// Particles returns the particle slice. Callers must not modify it.
func (f *ParticleField) Particles() []components.Particle {
	return f.particles
}

// Colors returns per-particle colours; all black until UpdateColors runs.
func (f *ParticleField) Colors() []components.Color {
	return f.colors
}

// Len returns the population size.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// StillCount returns how many particles sat on dark pixels in the last tick.
func (f *ParticleField) StillCount() int {
	return f.stillCount
}

// Skipped returns how many ticks were ignored because of the frame guard.
func (f *ParticleField) Skipped() int {
	return f.skipped
}

// Ticks returns how many ticks sampled a frame.
func (f *ParticleField) Ticks() int {
	return f.ticks
}

// Bounds returns the half extents of the domain.
func (f *ParticleField) Bounds() (halfW, halfH float32) {
	return f.halfW, f.halfH
}

// StillAges appends playIndex - LastStill for every particle to dst.
func (f *ParticleField) StillAges(dst []float64, playIndex int) []float64 {
	for i := range f.particles {
		dst = append(dst, float64(f.particles[i].StillAge(playIndex)))
	}
	return dst
}

// FadeColor maps frames since a particle was last still to a colour:
// black at 0, then red rising as 1 - exp(-diff/tau).
func FadeColor(diff int, tau float64) components.Color {
	if diff <= 0 {
		return components.Black
	}
	return components.Color{R: float32(1 - math.Exp(-float64(diff)/tau))}
}

// saturatingFloor floors v, mapping negatives to 0.
func saturatingFloor(v float32) int {
	if v <= 0 || v != v {
		return 0
	}
	return int(v)
}
