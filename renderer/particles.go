package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silhouette/components"
)

// ParticleRenderer draws field particles as small squares centred on screen.
// World y points up, so screen y is flipped.
type ParticleRenderer struct {
	centerX, centerY float32
	size             float32
}

// NewParticleRenderer creates a renderer for a screen of the given size.
func NewParticleRenderer(screenW, screenH int32, size float32) *ParticleRenderer {
	if size <= 0 {
		size = 2
	}
	return &ParticleRenderer{
		centerX: float32(screenW) / 2,
		centerY: float32(screenH) / 2,
		size:    size,
	}
}

// ScreenPos converts a world position to the top-left corner of its square.
func (r *ParticleRenderer) ScreenPos(p components.Position) (x, y float32) {
	half := r.size / 2
	return r.centerX + p.X - half, r.centerY - p.Y - half
}

// Draw renders all particles. colors may be nil, in which case every
// particle is black.
func (r *ParticleRenderer) Draw(particles []components.Particle, colors []components.Color) {
	for i := range particles {
		color := rl.Black
		if i < len(colors) {
			color = ToRaylib(colors[i])
		}

		x, y := r.ScreenPos(particles[i].Pos)
		rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: r.size, Y: r.size}, color)
	}
}

// ToRaylib converts a [0, 1] float color to an opaque raylib color.
func ToRaylib(c components.Color) rl.Color {
	return rl.Color{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: 255,
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
