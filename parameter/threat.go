package parameter

import "time"

// Light Hold Accrual
const (
	// ThreatHoldGrace is how long the light may stay on before it counts; flashes shorter than this are safe
	ThreatHoldGrace = 350 * time.Millisecond

	// ThreatHoldMistakeEvery is the accrual period while the light stays on past grace
	ThreatHoldMistakeEvery = 1200 * time.Millisecond
)

// Stage Progression
const (
	// ThreatMistakesPerStage is the mistake count per proximity step (Far->Near, Near->Door)
	ThreatMistakesPerStage = 2

	// ThreatKillThresholdStage is the stage index at or beyond which a mistake triggers the jumpscare (Door)
	ThreatKillThresholdStage = 2
)

// Relief
const (
	// ThreatDoorCloseRelief is subtracted from mistakes on every door close
	ThreatDoorCloseRelief = 2

	// ThreatFlashRelief is subtracted from mistakes on every light flash
	ThreatFlashRelief = 1

	// ThreatFlashTimesTotal caps flash relief uses per room
	ThreatFlashTimesTotal = 3
)

// Near-Door Pressure
const (
	// ThreatNearDoorOpenMistakeEvery is the accrual period while the door is open with the monster Near or at the Door
	ThreatNearDoorOpenMistakeEvery = 800 * time.Millisecond
)

// Room Presence
const (
	// ThreatInactiveChance is the probability the monster sits out a room entirely
	ThreatInactiveChance = 1.0 / 3.0
)

// Jumpscare Sequence
const (
	JumpscareFlashCount          = 3
	JumpscareFlashOnTime         = 120 * time.Millisecond
	JumpscareFlashOffTime        = 80 * time.Millisecond
	JumpscareDelayBeforeGameOver = 250 * time.Millisecond
)
