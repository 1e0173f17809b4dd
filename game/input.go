package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Update advances one rendered frame in graphical mode.
func (g *Game) Update() {
	g.handleInput()

	if g.music != nil {
		g.music.Update()
	}

	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	g.Step(dt)
	g.perfCollector.RecordFrame()
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Play/pause fires on release, like a button
	if rl.IsKeyReleased(rl.KeySpace) {
		g.RequestToggle()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.hud.Toggle()
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.perfPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.setShowFrame(!g.showFrame)
	}
}

// setShowFrame shows or hides the video frame behind the particles.
func (g *Game) setShowFrame(show bool) {
	g.showFrame = show
	if g.background != nil {
		g.background.SetEnabled(show)
	}
}

// setVolume applies a new soundtrack volume.
func (g *Game) setVolume(v float32) {
	g.volume = v
	if g.music != nil {
		g.music.SetVolume(v)
	}
}
