package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume is the default linear gain (0.0-1.0)
	AudioMasterVolume = 0.8
)

// Breathing Loop
const (
	// BreathVolumeOpen is the breath gain while the door is not closed
	BreathVolumeOpen = 1.0

	// BreathVolumeClosed is the breath gain while the door is closed
	BreathVolumeClosed = 0.5

	// BreathCycle is one inhale/exhale period
	BreathCycle = 3200 * time.Millisecond
)

// One-Shot Effects
const (
	CreakSoundDuration   = 450 * time.Millisecond
	ThudSoundDuration    = 180 * time.Millisecond
	SlamSoundDuration    = 320 * time.Millisecond
	ClickSoundDuration   = 25 * time.Millisecond
	StingSoundDuration   = 700 * time.Millisecond
	ScreamSoundDuration  = 1400 * time.Millisecond
	ClickPitchMin        = 0.8
	ClickPitchMax        = 1.1
	SoundEnvelopeAttack  = 5 * time.Millisecond
	SoundEnvelopeRelease = 30 * time.Millisecond
)
