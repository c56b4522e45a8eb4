package threat

import (
	"time"

	"github.com/lixenwraith/night-door/parameter"
)

// JumpscareConfig times the terminal sequence
type JumpscareConfig struct {
	FlashCount          int
	OnTime              time.Duration
	OffTime             time.Duration
	DelayBeforeGameOver time.Duration
}

// Config holds threat tunables
type Config struct {
	HoldGrace        time.Duration
	HoldMistakeEvery time.Duration

	MistakesPerStage int
	KillThreshold    Stage

	DoorCloseRelief int
	FlashRelief     int
	FlashTimesTotal int

	// DoorOpenNearIsDanger enables accrual while the door is open with the monster Near or at the Door
	DoorOpenNearIsDanger     bool
	NearDoorOpenMistakeEvery time.Duration
	// PeekIsDanger extends the near-door danger to a cracked-open door
	PeekIsDanger bool

	// InactiveChance is the probability the monster sits out a non-safe room
	InactiveChance float64

	// RestoreLocation brings the monster back where it was when a room is revisited
	RestoreLocation bool

	Jumpscare JumpscareConfig
}

// DefaultConfig returns the tuned defaults
func DefaultConfig() Config {
	return Config{
		HoldGrace:                parameter.ThreatHoldGrace,
		HoldMistakeEvery:         parameter.ThreatHoldMistakeEvery,
		MistakesPerStage:         parameter.ThreatMistakesPerStage,
		KillThreshold:            Stage(parameter.ThreatKillThresholdStage),
		DoorCloseRelief:          parameter.ThreatDoorCloseRelief,
		FlashRelief:              parameter.ThreatFlashRelief,
		FlashTimesTotal:          parameter.ThreatFlashTimesTotal,
		DoorOpenNearIsDanger:     true,
		NearDoorOpenMistakeEvery: parameter.ThreatNearDoorOpenMistakeEvery,
		PeekIsDanger:             true,
		InactiveChance:           parameter.ThreatInactiveChance,
		RestoreLocation:          true,
		Jumpscare: JumpscareConfig{
			FlashCount:          parameter.JumpscareFlashCount,
			OnTime:              parameter.JumpscareFlashOnTime,
			OffTime:             parameter.JumpscareFlashOffTime,
			DelayBeforeGameOver: parameter.JumpscareDelayBeforeGameOver,
		},
	}
}
