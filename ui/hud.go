package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silhouette/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	State         systems.PlayState
	PlayIndex     int
	LoadIndex     int
	FrameCount    int
	QueueLen      int
	QueueReady    int
	Lag           int
	Underruns     int
	StillFraction float32
	Elapsed       time.Duration
	FPS           int32
}

// Progress returns the displayed fraction of the video.
func (d HUDData) Progress() float32 {
	if d.FrameCount <= 0 {
		return 0
	}
	return clamp01(float32(d.PlayIndex) / float32(d.FrameCount))
}

// StatusLines formats the HUD text rows.
func StatusLines(d HUDData) []string {
	return []string{
		fmt.Sprintf("Frame: %d/%d | Loaded: %d | FPS: %d", d.PlayIndex, d.FrameCount, d.LoadIndex, d.FPS),
		fmt.Sprintf("Queue: %d (%d ready) | Lag: %d | Underruns: %d", d.QueueLen, d.QueueReady, d.Lag, d.Underruns),
		fmt.Sprintf("Time: %s | Still: %.0f%%", d.Elapsed.Round(10*time.Millisecond), d.StillFraction*100),
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		visible:  true,
	}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// IsVisible returns whether the HUD is shown.
func (h *HUD) IsVisible() bool {
	return h.visible
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}

	r := h.renderer
	lines := StatusLines(data)
	width := int32(330)
	height := r.Theme.Padding*2 + r.Theme.LineHeight*int32(len(lines)+2) + 4
	x, y := int32(6), int32(6)

	r.DrawPanel(x, y, width, height)
	y += r.Theme.Padding
	x += r.Theme.Padding

	rl.DrawText(data.Title, x, y, r.Theme.HeaderFontSize, rl.White)

	stateColor := rl.Yellow
	if data.State == systems.Playing {
		stateColor = rl.Green
	}
	rl.DrawText(data.State.String(), x+width-80, y, r.Theme.HeaderFontSize, stateColor)
	y += r.Theme.LineHeight

	for _, line := range lines {
		rl.DrawText(line, x, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += r.Theme.LineHeight
	}
	r.DrawBar(x, y, "Progress", data.Progress(), width-r.Theme.Padding*2)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 12, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration
	Total       time.Duration
	Registry    *systems.SystemRegistry
}

// PerfPanel renders the per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Toggle switches panel visibility.
func (p *PerfPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	if !p.visible {
		return
	}

	names := SortByDuration(data.SystemTimes)
	r := p.renderer
	width := int32(220)
	height := r.Theme.Padding*2 + 36 + int32(len(names))*14
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Step Performance", x, y, r.Theme.HeaderFontSize, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, r.Theme.FontSize, rl.Yellow)
	y += 16

	for _, name := range names {
		avg := data.SystemTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		displayName := name
		if data.Registry != nil {
			displayName = data.Registry.GetName(name)
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// SortByDuration returns the keys of times sorted by duration (descending),
// ties broken by name.
func SortByDuration(times map[string]time.Duration) []string {
	names := make([]string, 0, len(times))
	for name := range times {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if times[names[i]] != times[names[j]] {
			return times[names[i]] > times[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
