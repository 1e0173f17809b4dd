package systems

// PlayState is the playback controller state.
type PlayState uint8

const (
	Paused PlayState = iota
	Playing
)

// String returns the state name.
func (s PlayState) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

// AudioSink is the soundtrack the controller mirrors its state to.
// Play and Pause must be idempotent; Ready reports whether the track is loaded.
type AudioSink interface {
	Ready() bool
	Play()
	Pause()
}

// PlaybackController is a two-state toggle gating the whole player.
// It starts paused.
type PlaybackController struct {
	state   PlayState
	toggles int
}

// NewPlaybackController returns a paused controller.
func NewPlaybackController() *PlaybackController {
	return &PlaybackController{state: Paused}
}

// Toggle flips the state and returns the new one.
func (c *PlaybackController) Toggle() PlayState {
	if c.state == Playing {
		c.state = Paused
	} else {
		c.state = Playing
	}
	c.toggles++
	return c.state
}

// State returns the current state.
func (c *PlaybackController) State() PlayState {
	return c.state
}

// Playing reports whether playback is running.
func (c *PlaybackController) Playing() bool {
	return c.state == Playing
}

// Toggles returns how many times the state was flipped.
func (c *PlaybackController) Toggles() int {
	return c.toggles
}

// Sync issues play or pause to the sink according to the current state.
// Nothing is sent until the sink is ready. Returns whether a command was sent.
func (c *PlaybackController) Sync(sink AudioSink) bool {
	if sink == nil || !sink.Ready() {
		return false
	}
	if c.state == Playing {
		sink.Play()
	} else {
		sink.Pause()
	}
	return true
}
