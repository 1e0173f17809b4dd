package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/silhouette/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager methods are no-ops
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.RunID() != "" {
		t.Error("nil manager should report empty dir and run id")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	root := t.TempDir()
	om, err := NewOutputManager(root)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	if om.RunID() == "" || filepath.Dir(om.Dir()) != root {
		t.Fatalf("run dir %q not under %q", om.Dir(), root)
	}

	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndSec: float64(i), PlayIndex: i * 30}); err != nil {
			t.Fatalf("WriteTelemetry failed: %v", err)
		}
		if err := om.WritePerf(PerfStats{AvgStepDuration: time.Millisecond}, float64(i)); err != nil {
			t.Fatalf("WritePerf failed: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(om.Dir(), "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[0], "play_index") || strings.Contains(lines[1], "play_index") {
		t.Errorf("header written incorrectly: %q / %q", lines[0], lines[1])
	}

	if _, err := os.Stat(filepath.Join(om.Dir(), "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
	perf, err := os.ReadFile(filepath.Join(om.Dir(), "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(perf)), "\n")); n != 3 {
		t.Errorf("perf.csv has %d lines, want 3", n)
	}
}
