package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silhouette/systems"
)

// ControlsResult reports the user's interaction with the controls panel.
type ControlsResult struct {
	TogglePressed bool
	Volume        float32
	ShowFrame     bool
}

// ControlsPanel renders the play/pause button, volume slider and frame toggle.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls and returns the resulting values. When hidden
// the inputs are passed through unchanged.
func (c *ControlsPanel) Draw(state systems.PlayState, volume float32, showFrame bool) ControlsResult {
	result := ControlsResult{Volume: volume, ShowFrame: showFrame}
	if !c.visible {
		return result
	}

	r := c.renderer
	padding := float32(r.Theme.Padding)
	height := int32(3*26) + r.Theme.Padding*2
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x) + padding
	y := float32(c.y) + padding
	inner := float32(c.width) - padding*2

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 22}, ToggleLabel(state)) {
		result.TogglePressed = true
	}
	y += 26

	result.Volume = gui.SliderBar(
		rl.Rectangle{X: x + 50, Y: y, Width: inner - 90, Height: 20},
		"Volume", "",
		volume, 0, 1,
	)
	y += 26

	frameLabel := "Show frame"
	if showFrame {
		frameLabel = "Hide frame"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 22}, frameLabel) {
		result.ShowFrame = !showFrame
	}

	return result
}

// ToggleLabel returns the button text for the given playback state.
func ToggleLabel(state systems.PlayState) string {
	if state == systems.Playing {
		return "Pause"
	}
	return "Play"
}
