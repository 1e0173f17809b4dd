package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silhouette/ui"
)

const controlsLegend = "SPACE play/pause | F frame | H hide UI | P perf | F11 fullscreen"

// Draw renders the current state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.White)

	g.background.Draw(g.buffer.Displayed(), g.buffer.PlayIndex())

	colors := g.field.Colors()
	if !g.fadeEnabled {
		colors = nil
	}
	g.particleRenderer.Draw(g.field.Particles(), colors)

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD, controls and perf panel.
func (g *Game) drawUI() {
	g.hud.Draw(g.hudData())

	result := g.controls.Draw(g.controller.State(), g.volume, g.showFrame)
	if result.TogglePressed {
		g.RequestToggle()
	}
	if result.Volume != g.volume {
		g.setVolume(result.Volume)
	}
	if result.ShowFrame != g.showFrame {
		g.setShowFrame(result.ShowFrame)
	}

	perf := g.perfCollector.Stats()
	g.perfPanel.Draw(ui.PerfPanelData{
		SystemTimes: perf.PhaseAvg,
		Total:       perf.AvgStepDuration,
		Registry:    g.registry,
	})

	if g.hud.IsVisible() {
		g.hud.DrawControls(int32(g.cfg.Screen.Height), controlsLegend)
	}
}

// hudData collects the values shown in the HUD.
func (g *Game) hudData() ui.HUDData {
	var still float32
	if n := g.field.Len(); n > 0 {
		still = float32(g.field.StillCount()) / float32(n)
	}
	return ui.HUDData{
		Title:         g.cfg.Screen.Title,
		State:         g.controller.State(),
		PlayIndex:     g.buffer.PlayIndex(),
		LoadIndex:     g.buffer.LoadIndex(),
		FrameCount:    g.cfg.Video.FrameCount,
		QueueLen:      g.buffer.Len(),
		QueueReady:    g.buffer.Ready(),
		Lag:           g.buffer.Lag(),
		Underruns:     g.buffer.Underruns(),
		StillFraction: still,
		Elapsed:       g.buffer.Elapsed(),
		FPS:           rl.GetFPS(),
	}
}
