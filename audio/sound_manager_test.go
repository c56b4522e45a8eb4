package audio

import (
	"testing"
	"time"
)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(DefaultConfig(), nil, nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	if sm.Play(SoundCreak) || sm.PlayPitched(SoundClick, 1.05) || sm.PlayTone(55, time.Second) {
		t.Error("Expected playback refused before Initialize")
	}
	sm.StartBreath()
	sm.SetBreathLevel(1.0)
	sm.StopBreath()
	sm.Cleanup()

	if sm.IsRunning() {
		t.Error("Expected not running")
	}
	if sm.BreathLevel() != 1.0 {
		t.Errorf("Expected breath level remembered, got %v", sm.BreathLevel())
	}
}

func TestSoundManagerMute(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mute = true
	sm := NewSoundManager(cfg, nil, nil)
	if !sm.IsMuted() {
		t.Fatal("Expected muted from config")
	}
	if sm.ToggleMute() || sm.IsMuted() {
		t.Error("Expected unmuted after toggle")
	}
	if !sm.ToggleMute() {
		t.Error("Expected muted after second toggle")
	}
}

func TestAudioServiceWithoutStart(t *testing.T) {
	s := NewService(nil, nil)
	if s.Name() != "audio" || len(s.Dependencies()) != 0 {
		t.Fatal("unexpected identity")
	}
	if err := s.Init(Config{Mute: true, Volume: 0.5, SampleRate: 22050}); err != nil {
		t.Fatal(err)
	}
	if s.Manager() == nil || !s.Manager().IsMuted() {
		t.Error("Expected muted manager after Init")
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
