package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silhouette/frames"
)

// BackgroundRenderer shows the displayed video frame behind the particles.
// It is hidden unless enabled.
type BackgroundRenderer struct {
	texture rl.Texture2D

	width, height    int
	screenW, screenH float32
	lastIndex        int
	enabled          bool
	initialized      bool
}

// NewBackgroundRenderer creates a renderer for frames of the given size.
func NewBackgroundRenderer(screenW, screenH int32, width, height int, enabled bool) *BackgroundRenderer {
	return &BackgroundRenderer{
		width:     width,
		height:    height,
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		lastIndex: -1,
		enabled:   enabled,
	}
}

// Init creates the texture (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	img := rl.GenImageColor(b.width, b.height, rl.White)
	b.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	b.initialized = true
}

// SetEnabled shows or hides the frame.
func (b *BackgroundRenderer) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// Enabled reports whether the frame is drawn.
func (b *BackgroundRenderer) Enabled() bool {
	return b.enabled
}

// Draw uploads the frame if it changed and draws it centred on screen.
// Frames of the wrong size are skipped.
func (b *BackgroundRenderer) Draw(frame *frames.Frame, index int) {
	if !b.enabled || frame == nil || !frame.SizeMatches(b.width, b.height) {
		return
	}
	if !b.initialized {
		b.Init()
	}

	if index != b.lastIndex {
		rl.UpdateTexture(b.texture, frame.RGBA())
		b.lastIndex = index
	}

	x := int32((b.screenW - float32(b.width)) / 2)
	y := int32((b.screenH - float32(b.height)) / 2)
	rl.DrawTexture(b.texture, x, y, rl.White)
}

// Unload releases GPU resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadTexture(b.texture)
		b.initialized = false
	}
}
