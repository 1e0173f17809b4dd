package audio

import (
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MusicSink streams a track through the raylib audio device.
// The audio device must be initialised before Load and stay open until Unload.
type MusicSink struct {
	music   rl.Music
	loaded  bool
	started bool
	playing bool
	volume  float32
}

// NewMusicSink loads the track at path. A missing or unreadable track is
// logged and leaves the sink permanently not ready; it is not an error.
func NewMusicSink(path string, volume float32) *MusicSink {
	s := &MusicSink{volume: volume}
	if err := s.load(path, volume); err != nil {
		slog.Warn("soundtrack unavailable", "path", path, "error", err)
	}
	return s
}

func (s *MusicSink) load(path string, volume float32) error {
	if path == "" {
		return fmt.Errorf("no track configured")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat track: %w", err)
	}
	if !rl.IsAudioDeviceReady() {
		return fmt.Errorf("audio device not ready")
	}

	music := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(music) {
		return fmt.Errorf("decoding track %s failed", path)
	}
	music.Looping = false
	rl.SetMusicVolume(music, volume)

	s.music = music
	s.loaded = true
	slog.Info("soundtrack loaded", "path", path, "length_sec", rl.GetMusicTimeLength(music))
	return nil
}

// Ready reports whether the track is loaded.
func (s *MusicSink) Ready() bool {
	return s.loaded
}

// Play starts or resumes the track. Repeated calls are no-ops.
func (s *MusicSink) Play() {
	if !s.loaded || s.playing {
		return
	}
	if s.started {
		rl.ResumeMusicStream(s.music)
	} else {
		rl.PlayMusicStream(s.music)
		s.started = true
	}
	s.playing = true
}

// Pause pauses the track. Repeated calls are no-ops.
func (s *MusicSink) Pause() {
	if !s.loaded || !s.playing {
		return
	}
	rl.PauseMusicStream(s.music)
	s.playing = false
}

// SetVolume sets the stream volume in [0, 1].
func (s *MusicSink) SetVolume(volume float32) {
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	s.volume = volume
	if s.loaded {
		rl.SetMusicVolume(s.music, volume)
	}
}

// Volume returns the current stream volume.
func (s *MusicSink) Volume() float32 {
	return s.volume
}

// Update refills the stream buffers; call once per rendered frame.
func (s *MusicSink) Update() {
	if s.loaded {
		rl.UpdateMusicStream(s.music)
	}
}

// Played returns the playback position in seconds.
func (s *MusicSink) Played() float32 {
	if !s.loaded {
		return 0
	}
	return rl.GetMusicTimePlayed(s.music)
}

// Unload releases the stream.
func (s *MusicSink) Unload() {
	if !s.loaded {
		return
	}
	rl.UnloadMusicStream(s.music)
	s.loaded = false
	s.playing = false
}
