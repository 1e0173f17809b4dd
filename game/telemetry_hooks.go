package game

import (
	"log/slog"

	"github.com/pthm-cable/silhouette/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	g.ageBuf = g.field.StillAges(g.ageBuf[:0], g.buffer.PlayIndex())
	stats := g.collector.Flush(g.streamSnapshot(), telemetry.FieldSnapshot{
		Particles:  g.field.Len(),
		StillCount: g.field.StillCount(),
		StillAges:  g.ageBuf,
	})
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndSec); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// streamSnapshot samples the playback buffer.
func (g *Game) streamSnapshot() telemetry.StreamSnapshot {
	return telemetry.StreamSnapshot{
		Playing:     g.controller.Playing(),
		Elapsed:     g.buffer.Elapsed(),
		PlayIndex:   g.buffer.PlayIndex(),
		LoadIndex:   g.buffer.LoadIndex(),
		QueueLen:    g.buffer.Len(),
		QueueReady:  g.buffer.Ready(),
		TargetIndex: g.buffer.TargetIndex(),
		Lag:         g.buffer.Lag(),
	}
}
