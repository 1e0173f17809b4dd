// Frame generator - writes synthetic frames to disk for the disk loader.
//
// Usage: go run ./cmd/framegen -out assets/frames
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/silhouette/config"
	"github.com/pthm-cable/silhouette/frames"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outDir := flag.String("out", "", "Output directory (empty = video.frames_dir)")
	count := flag.Int("count", 0, "Frames to write (0 = video.frame_count)")
	period := flag.Int("period", 120, "Frames per orbit of the disc")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Video.FramesDir
	}
	n := *count
	if n <= 0 {
		n = cfg.Video.FrameCount
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("failed to create output directory", "dir", dir, "error", err)
		os.Exit(1)
	}

	source := frames.SyntheticSource(cfg.Video.Width, cfg.Video.Height, *period)
	for i := cfg.Video.FirstIndex; i < n; i++ {
		f, err := source(i)
		if err != nil {
			slog.Error("failed to generate frame", "index", i, "error", err)
			os.Exit(1)
		}
		path := frames.FramePath(dir, cfg.Video.FramePattern, i)
		if err := frames.EncodePNG(path, f); err != nil {
			slog.Error("failed to write frame", "index", i, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("frames written",
		"dir", dir,
		"first", cfg.Video.FirstIndex,
		"last", n-1,
		"width", cfg.Video.Width,
		"height", cfg.Video.Height,
	)
}
