// Package components defines the plain data carried by particles.
package components

// Position represents a particle's position in the centred video domain.
// X grows to the right and Y grows upward; (0, 0) is the frame centre.
type Position struct {
	X, Y float32
}

// Particle holds per-particle simulation state.
type Particle struct {
	Pos Position

	// LastStill is the play index at which the particle was last observed
	// on a dark pixel. It starts at 0 and is refreshed every tick the
	// particle stays still, so a frozen particle keeps a fade age of 0.
	LastStill int
}

// StillAge returns how many displayed frames have passed since the particle
// was last still.
func (p Particle) StillAge(playIndex int) int {
	return playIndex - p.LastStill
}

// Color is a linear RGB colour with channels in [0, 1].
type Color struct {
	R, G, B float32
}

// Black is the default particle colour.
var Black = Color{}
