package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/silhouette/telemetry"
)

// UpdateHeadless advances one fixed step without touching raylib.
func (g *Game) UpdateHeadless() {
	g.Step(g.cfg.Derived.StepDuration)
}

// Step runs one control step of length dt: pending toggle, audio mirror,
// refill, then (only while playing) clock, display and particles.
func (g *Game) Step(dt time.Duration) {
	g.perfCollector.StartStep()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	if g.toggleRequested {
		g.toggleRequested = false
		state := g.controller.Toggle()
		g.collector.RecordToggle()
		slog.Info("playback toggled", "state", state.String(), "play_index", g.buffer.PlayIndex())
	}

	g.perfCollector.StartPhase(telemetry.PhaseAudio)
	g.controller.Sync(g.sink)

	g.perfCollector.StartPhase(telemetry.PhaseRefill)
	if n := g.buffer.Refill(); n > 0 {
		g.collector.RecordRequests(n)
	}

	playing := g.controller.Playing()
	if playing {
		g.perfCollector.StartPhase(telemetry.PhaseDisplay)
		g.buffer.Tick(dt)
		if g.buffer.AdvanceDisplay() {
			g.collector.RecordFrameShown()
		}
		if u := g.buffer.Underruns(); u != g.lastUnderruns {
			g.collector.RecordUnderruns(u - g.lastUnderruns)
			g.lastUnderruns = u
		}

		g.perfCollector.StartPhase(telemetry.PhaseField)
		if !g.field.Tick(g.buffer.Displayed(), g.buffer.PlayIndex()) {
			g.collector.RecordFieldSkip()
		}

		if g.fadeEnabled {
			g.perfCollector.StartPhase(telemetry.PhaseFade)
			g.field.UpdateColors(g.buffer.PlayIndex())
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordStep(dt, playing)
	g.flushTelemetry()

	if !g.finished && g.buffer.Finished() {
		g.finished = true
		slog.Info("end of stream",
			"frames", g.buffer.PlayIndex(),
			"elapsed", g.buffer.Elapsed().String(),
			"underruns", g.buffer.Underruns(),
		)
	}

	g.perfCollector.EndStep()
	g.steps++
}
