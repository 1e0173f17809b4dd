package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/silhouette/systems"
)

func TestStatusLines(t *testing.T) {
	data := HUDData{
		PlayIndex:     30,
		LoadIndex:     286,
		FrameCount:    6572,
		QueueLen:      256,
		QueueReady:    200,
		Lag:           2,
		Underruns:     5,
		StillFraction: 0.25,
		Elapsed:       1234 * time.Millisecond,
		FPS:           60,
	}

	lines := StatusLines(data)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for _, want := range []string{"Frame: 30/6572", "Loaded: 286", "FPS: 60"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line 0 %q missing %q", lines[0], want)
		}
	}
	for _, want := range []string{"Queue: 256 (200 ready)", "Lag: 2", "Underruns: 5"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("line 1 %q missing %q", lines[1], want)
		}
	}
	if !strings.Contains(lines[2], "1.23s") || !strings.Contains(lines[2], "Still: 25%") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		data HUDData
		want float32
	}{
		{"no frames", HUDData{PlayIndex: 5}, 0},
		{"start", HUDData{FrameCount: 100}, 0},
		{"half", HUDData{PlayIndex: 50, FrameCount: 100}, 0.5},
		{"end", HUDData{PlayIndex: 100, FrameCount: 100}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByDuration(t *testing.T) {
	times := map[string]time.Duration{
		systems.SystemRefill:  2 * time.Millisecond,
		systems.SystemField:   5 * time.Millisecond,
		systems.SystemDisplay: 2 * time.Millisecond,
		systems.SystemAudio:   time.Microsecond,
	}

	got := SortByDuration(times)
	want := []string{systems.SystemField, systems.SystemDisplay, systems.SystemRefill, systems.SystemAudio}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("SortByDuration = %v, want %v", got, want)
	}
}

func TestToggleLabel(t *testing.T) {
	if ToggleLabel(systems.Paused) != "Play" || ToggleLabel(systems.Playing) != "Pause" {
		t.Error("unexpected toggle labels")
	}
}
