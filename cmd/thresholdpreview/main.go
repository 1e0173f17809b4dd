// Threshold preview tool - shows which pixels keep particles moving.
//
// Usage: go run ./cmd/thresholdpreview [-synthetic]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silhouette/config"
	"github.com/pthm-cable/silhouette/frames"
)

const (
	windowWidth  = 1000
	windowHeight = 560
	panelX       = 520
	panelWidth   = windowWidth - panelX - 20
)

var (
	movingColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	stillColor  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	synthetic := flag.Bool("synthetic", false, "Preview synthetic frames instead of files")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	source := frames.DiskSource(cfg.Video.FramesDir, cfg.Video.FramePattern)
	if *synthetic {
		source = frames.SyntheticSource(cfg.Video.Width, cfg.Video.Height, int(cfg.Video.FPS*4))
	}

	rl.InitWindow(windowWidth, windowHeight, "Threshold Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	w, h := cfg.Video.Width, cfg.Video.Height
	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	threshold := float32(cfg.Particles.Threshold)
	index := cfg.Video.FirstIndex
	var frame *frames.Frame
	var loadErr error
	needsLoad, needsMask := true, true
	var stillFraction float32

	for !rl.WindowShouldClose() {
		if needsLoad {
			frame, loadErr = source(index)
			needsLoad = false
			needsMask = true
		}
		if needsMask && frame != nil && frame.SizeMatches(w, h) {
			var pixels []color.RGBA
			pixels, stillFraction = mask(frame, uint8(threshold))
			rl.UpdateTexture(texture, pixels)
			needsMask = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview, scaled to fit
		scale := float32(500) / float32(max(w, h))
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)},
			rl.Rectangle{X: 10, Y: 10, Width: float32(w) * scale, Height: float32(h) * scale},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, int32(float32(w)*scale), int32(float32(h)*scale), rl.DarkGray)

		statsY := int32(float32(h)*scale + 25)
		switch {
		case loadErr != nil:
			rl.DrawText(loadErr.Error(), 15, statsY, 14, rl.Red)
		case !frame.SizeMatches(w, h):
			rl.DrawText(fmt.Sprintf("Frame is %dx%d, expected %dx%d", frame.Width, frame.Height, w, h), 15, statsY, 14, rl.Red)
		default:
			rl.DrawText(fmt.Sprintf("Frame %d  Still: %.1f%%", index, stillFraction*100), 15, statsY, 16, rl.DarkGray)
		}

		// Control panel
		y := float32(10)
		rl.DrawText("Brightness Threshold", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		rl.DrawText("Threshold (pixels above it keep moving)", panelX, int32(y), 14, rl.Gray)
		y += 18
		newThreshold := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: y, Width: panelWidth - 80, Height: 20},
			"0", "255",
			threshold, 0, 255,
		)
		rl.DrawText(fmt.Sprintf("%d", uint8(threshold)), int32(panelX+panelWidth-70), int32(y+2), 16, rl.DarkGray)
		if uint8(newThreshold) != uint8(threshold) {
			threshold = newThreshold
			needsMask = true
		}
		y += 35

		rl.DrawText("Frame", panelX, int32(y), 14, rl.Gray)
		y += 18
		newIndex := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: y, Width: panelWidth - 80, Height: 20},
			"", "",
			float32(index), float32(cfg.Video.FirstIndex), float32(cfg.Video.FrameCount-1),
		)
		if int(newIndex) != index {
			index = int(newIndex)
			needsLoad = true
		}
		y += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Prev") && index > cfg.Video.FirstIndex {
			index--
			needsLoad = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Next") && index < cfg.Video.FrameCount-1 {
			index++
			needsLoad = true
		}
		y += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Reset") {
			threshold = float32(cfg.Particles.Threshold)
			needsMask = true
		}
		y += 55

		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		yamlText := fmt.Sprintf("particles:\n  threshold: %d", uint8(threshold))
		rl.DrawText(yamlText, panelX, int32(y), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yamlText)
		}

		rl.EndDrawing()
	}
}

// mask colours pixels that freeze particles and returns the frozen fraction.
func mask(f *frames.Frame, threshold uint8) ([]color.RGBA, float32) {
	out := make([]color.RGBA, f.Width*f.Height)
	still := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Intensity(x, y) > threshold {
				out[y*f.Width+x] = movingColor
			} else {
				out[y*f.Width+x] = stillColor
				still++
			}
		}
	}
	return out, float32(still) / float32(len(out))
}
