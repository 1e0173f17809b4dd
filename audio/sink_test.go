package audio

import "testing"

func TestNopSinkRecordsCommands(t *testing.T) {
	s := &NopSink{}
	if !s.Ready() || s.Last() != CommandNone {
		t.Fatalf("fresh sink: ready %v, last %v", s.Ready(), s.Last())
	}

	s.Play()
	s.Play()
	s.Pause()
	if s.Last() != CommandPause {
		t.Errorf("Last = %v, want pause", s.Last())
	}
	if plays, pauses := s.Counts(); plays != 2 || pauses != 1 {
		t.Errorf("Counts = (%d, %d), want (2, 1)", plays, pauses)
	}
}

func TestNopSinkUnready(t *testing.T) {
	s := &NopSink{Unready: true}
	if s.Ready() {
		t.Error("Unready sink reported ready")
	}
}

func TestCommandString(t *testing.T) {
	tests := map[Command]string{CommandNone: "none", CommandPlay: "play", CommandPause: "pause"}
	for c, want := range tests {
		if c.String() != want {
			t.Errorf("%d.String() = %q, want %q", c, c.String(), want)
		}
	}
}

func TestMusicSinkMissingTrackNotReady(t *testing.T) {
	// Stat fails before any raylib call is made
	s := NewMusicSink("does/not/exist.ogg", 1)
	if s.Ready() {
		t.Fatal("sink with missing track reported ready")
	}
	// Commands on an unready sink are ignored
	s.Play()
	s.Pause()
	s.Update()
	s.Unload()
	if s.Played() != 0 {
		t.Errorf("Played = %v, want 0", s.Played())
	}
}

func TestMusicSinkVolumeClamped(t *testing.T) {
	s := NewMusicSink("", 0.5)
	if s.Volume() != 0.5 {
		t.Errorf("Volume = %v, want 0.5", s.Volume())
	}
	s.SetVolume(2)
	if s.Volume() != 1 {
		t.Errorf("Volume = %v, want clamped to 1", s.Volume())
	}
	s.SetVolume(-1)
	if s.Volume() != 0 {
		t.Errorf("Volume = %v, want clamped to 0", s.Volume())
	}
}
