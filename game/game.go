// Package game wires the frame stream, particle field and playback
// controller into a single sequential step.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/silhouette/audio"
	"github.com/pthm-cable/silhouette/config"
	"github.com/pthm-cable/silhouette/frames"
	"github.com/pthm-cable/silhouette/renderer"
	"github.com/pthm-cable/silhouette/systems"
	"github.com/pthm-cable/silhouette/telemetry"
	"github.com/pthm-cable/silhouette/ui"
)

// Options configures a player instance.
type Options struct {
	Seed           int64
	Headless       bool
	Autoplay       bool // Toggle to Playing on the first step
	Synthetic      bool // Generate frames instead of reading them from disk
	FadeEnabled    bool // Overrides particles.fade_enabled when true
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string

	// Injected collaborators, mainly for tests. Nil selects the configured ones.
	Config *config.Config
	Loader frames.Loader
	Audio  systems.AudioSink
}

// closer is implemented by loaders that own goroutines.
type closer interface {
	Close()
}

// Game holds the complete player state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	loader     frames.Loader
	buffer     *systems.PlaybackBuffer
	field      *systems.ParticleField
	controller *systems.PlaybackController
	sink       systems.AudioSink
	music      *audio.MusicSink // nil unless the raylib sink is in use
	registry   *systems.SystemRegistry

	// Rendering (graphical mode only)
	particleRenderer *renderer.ParticleRenderer
	background       *renderer.BackgroundRenderer
	hud              *ui.HUD
	controls         *ui.ControlsPanel
	perfPanel        *ui.PerfPanel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	ageBuf        []float64

	// State
	headless        bool
	fadeEnabled     bool
	showFrame       bool
	volume          float32
	steps           int
	toggleRequested bool
	lastUnderruns   int
	finished        bool
}

// NewGame creates a player with default options.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a player with the given options.
// Graphical mode requires the raylib window and audio device to exist.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	g := &Game{
		cfg:             cfg,
		rng:             rand.New(rand.NewSource(opts.Seed)),
		controller:      systems.NewPlaybackController(),
		registry:        systems.NewSystemRegistry(),
		collector:       telemetry.NewCollector(statsWindow),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:        opts.LogStats,
		headless:        opts.Headless,
		fadeEnabled:     cfg.Particles.FadeEnabled || opts.FadeEnabled,
		showFrame:       cfg.Screen.ShowFrame,
		volume:          float32(cfg.Audio.Volume),
		toggleRequested: opts.Autoplay,
	}

	g.loader = opts.Loader
	if g.loader == nil {
		g.loader = newLoader(cfg, opts.Synthetic)
	}

	buffer, err := systems.NewPlaybackBuffer(systems.PlaybackConfig{
		FrameCount:    cfg.Video.FrameCount,
		FPS:           cfg.Video.FPS,
		PrefetchDepth: cfg.Buffer.PrefetchDepth,
		FirstIndex:    cfg.Video.FirstIndex,
	}, g.loader)
	if err != nil {
		g.closeLoader()
		return nil, fmt.Errorf("creating playback buffer: %w", err)
	}
	g.buffer = buffer

	field, err := systems.NewParticleField(systems.FieldConfig{
		Width:     cfg.Video.Width,
		Height:    cfg.Video.Height,
		Count:     cfg.Particles.Count,
		Step:      cfg.Particles.Step,
		Threshold: cfg.Particles.Threshold,
		FadeTau:   cfg.Particles.FadeTau,
	}, g.rng)
	if err != nil {
		g.closeLoader()
		return nil, fmt.Errorf("creating particle field: %w", err)
	}
	g.field = field

	g.sink = opts.Audio
	if g.sink == nil {
		g.sink = g.newSink()
	}

	if !g.headless {
		g.initRendering()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.closeLoader()
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		slog.Info("writing run output", "dir", om.Dir(), "run_id", om.RunID())
	}

	slog.Info("player ready",
		"frames", cfg.Video.FrameCount,
		"fps", cfg.Video.FPS,
		"particles", cfg.Particles.Count,
		"prefetch_depth", cfg.Buffer.PrefetchDepth,
		"fade", g.fadeEnabled,
		"headless", g.headless,
	)

	return g, nil
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// RequestToggle schedules a play/pause toggle for the next step.
func (g *Game) RequestToggle() {
	g.toggleRequested = true
}

// State returns the playback state.
func (g *Game) State() systems.PlayState {
	return g.controller.State()
}

// Buffer returns the playback buffer.
func (g *Game) Buffer() *systems.PlaybackBuffer {
	return g.buffer
}

// Field returns the particle field.
func (g *Game) Field() *systems.ParticleField {
	return g.field
}

// Steps returns the number of completed steps.
func (g *Game) Steps() int {
	return g.steps
}

// Finished reports whether every frame has been displayed.
func (g *Game) Finished() bool {
	return g.buffer.Finished()
}

// Elapsed returns the playback time.
func (g *Game) Elapsed() time.Duration {
	return g.buffer.Elapsed()
}
