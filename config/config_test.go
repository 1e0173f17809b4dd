package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsMatchVideoContract(t *testing.T) {
	cfg := Defaults()

	if cfg.Video.Width != 480 || cfg.Video.Height != 360 {
		t.Errorf("video size = %dx%d, want 480x360", cfg.Video.Width, cfg.Video.Height)
	}
	if cfg.Video.FrameCount != 6572 {
		t.Errorf("frame_count = %d, want 6572", cfg.Video.FrameCount)
	}
	if cfg.Video.FPS != 30 {
		t.Errorf("fps = %g, want 30", cfg.Video.FPS)
	}
	if cfg.Video.FirstIndex != 1 {
		t.Errorf("first_index = %d, want 1", cfg.Video.FirstIndex)
	}
	if cfg.Buffer.PrefetchDepth != 256 {
		t.Errorf("prefetch_depth = %d, want 256", cfg.Buffer.PrefetchDepth)
	}
	if cfg.Particles.Count != 30000 {
		t.Errorf("particles.count = %d, want 30000", cfg.Particles.Count)
	}
	if cfg.Particles.Step != 5 || cfg.Particles.Threshold != 128 || cfg.Particles.FadeTau != 12 {
		t.Errorf("particles = %+v, want step 5, threshold 128, tau 12", cfg.Particles)
	}
	if cfg.Particles.FadeEnabled {
		t.Error("fade should be disabled by default")
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Defaults()

	if cfg.Derived.HalfW != 240 || cfg.Derived.HalfH != 180 {
		t.Errorf("half extents = (%v, %v), want (240, 180)", cfg.Derived.HalfW, cfg.Derived.HalfH)
	}
	want := time.Second / 30
	if d := cfg.Derived.FrameDuration - want; d > time.Microsecond || d < -time.Microsecond {
		t.Errorf("frame duration = %v, want ~%v", cfg.Derived.FrameDuration, want)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("video:\n  frame_count: 10\nbuffer:\n  prefetch_depth: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Video.FrameCount != 10 {
		t.Errorf("frame_count = %d, want 10", cfg.Video.FrameCount)
	}
	if cfg.Buffer.PrefetchDepth != 4 {
		t.Errorf("prefetch_depth = %d, want 4", cfg.Buffer.PrefetchDepth)
	}
	// Untouched keys keep their defaults
	if cfg.Video.FPS != 30 {
		t.Errorf("fps = %g, want default 30", cfg.Video.FPS)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero frames", "video:\n  frame_count: 0\n"},
		{"zero fps", "video:\n  fps: 0\n"},
		{"zero prefetch", "buffer:\n  prefetch_depth: 0\n"},
		{"negative step", "particles:\n  step: -1\n"},
		{"first index past end", "video:\n  frame_count: 5\n  first_index: 6\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Particles.FadeEnabled = true

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Particles.FadeEnabled {
		t.Error("fade_enabled lost on round trip")
	}
}
