package renderer

import (
	"testing"

	"github.com/pthm-cable/silhouette/components"
)

func TestScreenPosFlipsY(t *testing.T) {
	r := NewParticleRenderer(480, 360, 2)

	tests := []struct {
		name  string
		pos   components.Position
		wantX float32
		wantY float32
	}{
		{"origin", components.Position{X: 0, Y: 0}, 239, 179},
		{"up is up", components.Position{X: 0, Y: 100}, 239, 79},
		{"left edge", components.Position{X: -240, Y: 0}, -1, 179},
		{"bottom right", components.Position{X: 239, Y: -180}, 478, 359},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := r.ScreenPos(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("ScreenPos(%v) = (%v, %v), want (%v, %v)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestToRaylib(t *testing.T) {
	tests := []struct {
		name  string
		in    components.Color
		wantR uint8
	}{
		{"black", components.Black, 0},
		{"full", components.Color{R: 1}, 255},
		{"half", components.Color{R: 0.5}, 128},
		{"clamped high", components.Color{R: 2}, 255},
		{"clamped low", components.Color{R: -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ToRaylib(tt.in)
			if c.R != tt.wantR || c.G != 0 || c.B != 0 || c.A != 255 {
				t.Errorf("ToRaylib(%v) = %+v, want R=%d", tt.in, c, tt.wantR)
			}
		})
	}
}
