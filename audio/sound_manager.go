package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/parameter"
	"github.com/lixenwraith/night-door/status"
)

// Config holds playback settings
type Config struct {
	Mute       bool
	Volume     float64 // Linear master gain, 0..1
	SampleRate int
}

// DefaultConfig returns the default playback settings
func DefaultConfig() Config {
	return Config{
		Volume:     parameter.AudioMasterVolume,
		SampleRate: parameter.AudioSampleRate,
	}
}

// SoundManager manages all game audio
// Every call is safe before Initialize and after Cleanup; they report false or do nothing
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	sr          beep.SampleRate
	cache       *soundCache
	mixer       *beep.Mixer
	master      *effects.Volume
	breath      *beep.Ctrl
	breathVol   *effects.Volume
	breathLevel float64
	initialized bool
	muted       atomic.Bool
	log         logrus.FieldLogger

	statPlayed *atomic.Int64
	statMuted  *atomic.Bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg Config, reg *status.Registry, log logrus.FieldLogger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	sr := beep.SampleRate(cfg.SampleRate)
	sm := &SoundManager{
		cfg:         cfg,
		sr:          sr,
		cache:       newSoundCache(sr),
		mixer:       &beep.Mixer{},
		breathLevel: parameter.BreathVolumeClosed,
		log:         core.ComponentLogger(log, "audio"),
		statPlayed:  reg.Ints.Get("audio.played"),
		statMuted:   reg.Bools.Get("audio.muted"),
	}
	sm.muted.Store(cfg.Mute)
	sm.statMuted.Store(cfg.Mute)
	return sm
}

// gain converts a linear level to the base-2 exponent effects.Volume expects
func gain(linear float64) float64 {
	if linear <= 0 {
		return 0
	}
	return math.Log2(linear)
}

// Initialize opens the speaker and starts the master mix
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.sr, sm.sr.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	sm.cache.preload()
	sm.master = &effects.Volume{
		Streamer: sm.mixer,
		Base:     2,
		Volume:   gain(sm.cfg.Volume),
		Silent:   sm.muted.Load() || sm.cfg.Volume <= 0,
	}
	speaker.Play(sm.master)
	sm.initialized = true
	sm.log.WithField("sample_rate", int(sm.sr)).Info("audio initialized")
	return nil
}

// Cleanup stops all sounds and closes the audio device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	sm.breath = nil
	sm.breathVol = nil
	sm.initialized = false
}

// Play starts a one-shot effect
func (sm *SoundManager) Play(st SoundType) bool {
	return sm.PlayPitched(st, 1.0)
}

// PlayPitched starts a one-shot effect resampled by pitch (>1 is higher)
func (sm *SoundManager) PlayPitched(st SoundType, pitch float64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted.Load() {
		return false
	}
	buf := sm.cache.get(st)
	if buf == nil {
		return false
	}

	var s beep.Streamer = newBufferStreamer(buf)
	if pitch > 0 && pitch != 1.0 {
		s = beep.ResampleRatio(3, pitch, s)
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.statPlayed.Add(1)
	return true
}

// PlayTone plays a plain sine for d
func (sm *SoundManager) PlayTone(freq float64, d time.Duration) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted.Load() {
		return false
	}
	tone, err := generators.SineTone(sm.sr, freq)
	if err != nil {
		sm.log.WithError(err).Debug("tone rejected")
		return false
	}
	quiet := &effects.Volume{Streamer: beep.Take(sm.sr.N(d), tone), Base: 2, Volume: -2}

	speaker.Lock()
	sm.mixer.Add(quiet)
	speaker.Unlock()
	sm.statPlayed.Add(1)
	return true
}

// StartBreath starts or resumes the breathing loop
func (sm *SoundManager) StartBreath() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if sm.breath != nil {
		sm.breath.Paused = false
		return
	}
	sm.breathVol = &effects.Volume{
		Streamer: NewBreathGenerator(sm.sr, sm.sr.N(parameter.BreathCycle)),
		Base:     2,
		Volume:   gain(sm.breathLevel),
		Silent:   sm.breathLevel <= 0,
	}
	sm.breath = &beep.Ctrl{Streamer: sm.breathVol}
	sm.mixer.Add(sm.breath)
}

// StopBreath pauses the breathing loop
func (sm *SoundManager) StopBreath() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.breath == nil {
		return
	}
	speaker.Lock()
	sm.breath.Paused = true
	speaker.Unlock()
}

// SetBreathLevel sets the linear breath gain, remembered across restarts of the loop
func (sm *SoundManager) SetBreathLevel(level float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.breathLevel = level
	if !sm.initialized || sm.breathVol == nil {
		return
	}
	speaker.Lock()
	sm.breathVol.Volume = gain(level)
	sm.breathVol.Silent = level <= 0
	speaker.Unlock()
}

// BreathLevel returns the last requested breath gain
func (sm *SoundManager) BreathLevel() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.breathLevel
}

// ToggleMute flips the master mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	sm.statMuted.Store(muted)
	if sm.initialized {
		speaker.Lock()
		sm.master.Silent = muted || sm.cfg.Volume <= 0
		speaker.Unlock()
	}
	return muted
}

// IsMuted reports the master mute
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// IsRunning reports whether the speaker is open
func (sm *SoundManager) IsRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
