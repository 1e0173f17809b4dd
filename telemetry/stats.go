package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartSec float64 `csv:"-"`
	WindowEndSec   float64 `csv:"window_end"`
	PlaybackSec    float64 `csv:"playback_sec"`
	State          string  `csv:"state"`

	// Stream cursors at window end
	PlayIndex   int `csv:"play_index"`
	LoadIndex   int `csv:"load_index"`
	QueueLen    int `csv:"queue_len"`
	QueueReady  int `csv:"queue_ready"`
	TargetIndex int `csv:"target_index"`
	Lag         int `csv:"lag"`

	// Events during window
	Steps           int `csv:"steps"`
	PlayingSteps    int `csv:"playing_steps"`
	FramesShown     int `csv:"frames_shown"`
	FramesRequested int `csv:"frames_requested"`
	Underruns       int `csv:"underruns"`
	FieldSkips      int `csv:"field_skips"`
	Toggles         int `csv:"toggles"`

	// Particle field at window end
	Particles     int     `csv:"particles"`
	StillFraction float64 `csv:"still_fraction"`

	// Frames since each particle was last still
	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`
}

// ComputeAgeStats calculates mean, std, and percentiles of still ages.
// values is sorted in place.
func ComputeAgeStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sort.Float64s(values)
	mean, std = stat.PopMeanStdDev(values, nil)

	p10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, values, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStartSec),
		slog.Float64("window_end", s.WindowEndSec),
		slog.Float64("playback_sec", s.PlaybackSec),
		slog.String("state", s.State),
		slog.Int("play_index", s.PlayIndex),
		slog.Int("load_index", s.LoadIndex),
		slog.Int("queue_len", s.QueueLen),
		slog.Int("queue_ready", s.QueueReady),
		slog.Int("target_index", s.TargetIndex),
		slog.Int("lag", s.Lag),
		slog.Int("steps", s.Steps),
		slog.Int("playing_steps", s.PlayingSteps),
		slog.Int("frames_shown", s.FramesShown),
		slog.Int("frames_requested", s.FramesRequested),
		slog.Int("underruns", s.Underruns),
		slog.Int("field_skips", s.FieldSkips),
		slog.Int("toggles", s.Toggles),
		slog.Int("particles", s.Particles),
		slog.Float64("still_fraction", s.StillFraction),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_std", s.AgeStd),
		slog.Float64("age_p10", s.AgeP10),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("age_p90", s.AgeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndSec,
		"playback_sec", s.PlaybackSec,
		"state", s.State,
		"play_index", s.PlayIndex,
		"load_index", s.LoadIndex,
		"queue_len", s.QueueLen,
		"queue_ready", s.QueueReady,
		"lag", s.Lag,
		"frames_shown", s.FramesShown,
		"underruns", s.Underruns,
		"field_skips", s.FieldSkips,
		"still_fraction", s.StillFraction,
		"age_mean", s.AgeMean,
		"age_p50", s.AgeP50,
		"age_p90", s.AgeP90,
	)
}
