// Package config provides configuration loading and access for the player.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all player configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Video     VideoConfig     `yaml:"video"`
	Buffer    BufferConfig    `yaml:"buffer"`
	Particles ParticlesConfig `yaml:"particles"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	ShowFrame bool   `yaml:"show_frame"` // Draw the current frame behind the particles
}

// VideoConfig describes the precomputed frame sequence.
type VideoConfig struct {
	FrameCount   int     `yaml:"frame_count"`
	FPS          float64 `yaml:"fps"`
	Width        int     `yaml:"width"`  // Expected raster width; other sizes are ignored by the field
	Height       int     `yaml:"height"` // Expected raster height
	FramesDir    string  `yaml:"frames_dir"`
	FramePattern string  `yaml:"frame_pattern"` // fmt pattern taking the frame index
	FirstIndex   int     `yaml:"first_index"`   // First index requested; frame 0 is the blank initial display
}

// BufferConfig holds look-ahead buffer parameters.
type BufferConfig struct {
	PrefetchDepth int `yaml:"prefetch_depth"` // Max frames requested but not yet displayed
	LoaderWorkers int `yaml:"loader_workers"` // Decode goroutines
	RequestQueue  int `yaml:"request_queue"`  // Buffered request channel size
}

// ParticlesConfig holds particle field parameters.
type ParticlesConfig struct {
	Count       int     `yaml:"count"`
	Step        int     `yaml:"step"`      // Random step range [-step, step] per axis
	Threshold   uint8   `yaml:"threshold"` // Intensity above this moves the particle
	FadeEnabled bool    `yaml:"fade_enabled"`
	FadeTau     float64 `yaml:"fade_tau"` // Fade time constant in frames
	Size        float64 `yaml:"size"`     // Drawn size in pixels
}

// AudioConfig holds soundtrack parameters.
type AudioConfig struct {
	Track  string  `yaml:"track"`
	Volume float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of playback per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Steps averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfW         float32       // Video.Width / 2
	HalfH         float32       // Video.Height / 2
	FrameDuration time.Duration // 1 / Video.FPS
	StepDuration  time.Duration // 1 / Screen.TargetFPS, used by headless stepping
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports values the player cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Video.FrameCount < 1 {
		errs = append(errs, fmt.Errorf("video.frame_count must be positive, got %d", c.Video.FrameCount))
	}
	if c.Video.FPS <= 0 {
		errs = append(errs, fmt.Errorf("video.fps must be positive, got %g", c.Video.FPS))
	}
	if c.Video.Width < 1 || c.Video.Height < 1 {
		errs = append(errs, fmt.Errorf("video size must be positive, got %dx%d", c.Video.Width, c.Video.Height))
	}
	if c.Video.FirstIndex < 0 || c.Video.FirstIndex > c.Video.FrameCount {
		errs = append(errs, fmt.Errorf("video.first_index %d outside [0, %d]", c.Video.FirstIndex, c.Video.FrameCount))
	}
	if c.Buffer.PrefetchDepth < 1 {
		errs = append(errs, fmt.Errorf("buffer.prefetch_depth must be positive, got %d", c.Buffer.PrefetchDepth))
	}
	if c.Particles.Count < 0 {
		errs = append(errs, fmt.Errorf("particles.count must not be negative, got %d", c.Particles.Count))
	}
	if c.Particles.Step < 0 {
		errs = append(errs, fmt.Errorf("particles.step must not be negative, got %d", c.Particles.Step))
	}
	if c.Particles.FadeTau <= 0 {
		errs = append(errs, fmt.Errorf("particles.fade_tau must be positive, got %g", c.Particles.FadeTau))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfW = float32(c.Video.Width) / 2
	c.Derived.HalfH = float32(c.Video.Height) / 2
	c.Derived.FrameDuration = time.Duration(float64(time.Second) / c.Video.FPS)

	// Headless stepping defaults to the frame rate when no target is set
	fps := float64(c.Screen.TargetFPS)
	if fps <= 0 {
		fps = c.Video.FPS
	}
	c.Derived.StepDuration = time.Duration(float64(time.Second) / fps)

	if c.Buffer.LoaderWorkers < 1 {
		c.Buffer.LoaderWorkers = 1
	}
	if c.Buffer.RequestQueue < 1 {
		c.Buffer.RequestQueue = c.Buffer.PrefetchDepth
	}
	if c.Video.FramePattern == "" {
		c.Video.FramePattern = "out%04d.png"
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
