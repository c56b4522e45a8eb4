// Package audio synthesizes the door, light and monster cues and plays them through beep
package audio

// SoundType identifies a one-shot effect
type SoundType int

const (
	SoundCreak  SoundType = iota // Door swinging open
	SoundThud                    // Door closed gently
	SoundSlam                    // Door slammed shut
	SoundClick                   // Light switch, pitched per toggle
	SoundSting                   // Monster moved closer
	SoundScream                  // Jumpscare

	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundCreak:
		return "creak"
	case SoundThud:
		return "thud"
	case SoundSlam:
		return "slam"
	case SoundClick:
		return "click"
	case SoundSting:
		return "sting"
	case SoundScream:
		return "scream"
	}
	return "unknown"
}
