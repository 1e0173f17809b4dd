package game

import (
	"log/slog"
	"os"

	"github.com/pthm-cable/silhouette/audio"
	"github.com/pthm-cable/silhouette/config"
	"github.com/pthm-cable/silhouette/frames"
	"github.com/pthm-cable/silhouette/renderer"
	"github.com/pthm-cable/silhouette/systems"
	"github.com/pthm-cable/silhouette/ui"
)

// syntheticOrbitSec is how long the synthetic disc takes to circle once.
const syntheticOrbitSec = 4

// newLoader builds the configured frame loader.
func newLoader(cfg *config.Config, synthetic bool) frames.Loader {
	if synthetic {
		period := int(cfg.Video.FPS * syntheticOrbitSec)
		slog.Info("using synthetic frames", "period", period)
		return frames.NewSyntheticLoader(cfg.Video.Width, cfg.Video.Height, period,
			cfg.Buffer.LoaderWorkers, cfg.Buffer.RequestQueue)
	}

	if _, err := os.Stat(cfg.Video.FramesDir); err != nil {
		// Every request will fail and playback will stall on the first frame
		slog.Warn("frames directory unavailable", "dir", cfg.Video.FramesDir, "error", err)
	}
	return frames.NewDiskLoader(cfg.Video.FramesDir, cfg.Video.FramePattern,
		cfg.Buffer.LoaderWorkers, cfg.Buffer.RequestQueue)
}

// newSink picks the audio sink for the current mode.
func (g *Game) newSink() systems.AudioSink {
	if g.headless {
		return &audio.NopSink{}
	}
	g.music = audio.NewMusicSink(g.cfg.Audio.Track, g.volume)
	return g.music
}

// initRendering creates the raylib-backed renderers and panels.
func (g *Game) initRendering() {
	sw, sh := int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height)

	g.particleRenderer = renderer.NewParticleRenderer(sw, sh, float32(g.cfg.Particles.Size))
	g.background = renderer.NewBackgroundRenderer(sw, sh, g.cfg.Video.Width, g.cfg.Video.Height, g.showFrame)
	g.background.Init()

	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(sw-176, 6, 170)
	g.perfPanel = ui.NewPerfPanel(sw-226, sh-160)
}

// closeLoader stops loader goroutines, abandoning in-flight requests.
func (g *Game) closeLoader() {
	if c, ok := g.loader.(closer); ok {
		c.Close()
	}
}

// Unload releases all resources.
func (g *Game) Unload() {
	g.closeLoader()

	if g.music != nil {
		g.music.Unload()
	}
	if g.background != nil {
		g.background.Unload()
	}

	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}

	slog.Info("player stopped",
		"steps", g.steps,
		"play_index", g.buffer.PlayIndex(),
		"underruns", g.buffer.Underruns(),
	)
}
