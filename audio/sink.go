// Package audio plays the soundtrack that the playback controller mirrors.
package audio

// Command is the last instruction a sink received.
type Command uint8

const (
	CommandNone Command = iota
	CommandPlay
	CommandPause
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	default:
		return "none"
	}
}

// NopSink is a silent sink for headless runs. It records what it was told.
type NopSink struct {
	Unready bool // Report not ready, as if the track were still loading

	last   Command
	plays  int
	pauses int
}

// Ready reports whether commands are accepted.
func (s *NopSink) Ready() bool { return !s.Unready }

// Play records a play command.
func (s *NopSink) Play() {
	s.last = CommandPlay
	s.plays++
}

// Pause records a pause command.
func (s *NopSink) Pause() {
	s.last = CommandPause
	s.pauses++
}

// Last returns the most recent command.
func (s *NopSink) Last() Command { return s.last }

// Counts returns how many play and pause commands were received.
func (s *NopSink) Counts() (plays, pauses int) { return s.plays, s.pauses }
