package event

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// DoorPayload describes a door transition
type DoorPayload struct {
	RoomID    string
	Rotation  int
	Direction int // -1 closing, 0 still, 1 opening
	Distance  int // Signed move distance against the previous tick

	// Slam is set on Closed when coming down from Open fast enough
	Slam bool
	// Closing is set on Peeking when coming down from Open
	Closing bool
}

// RoomClearedPayload carries the clear timing of the finished room
type RoomClearedPayload struct {
	RoomID    string
	OpenTime  time.Duration
	Threshold time.Duration
}

// StagePayload carries a stage transition, stages are threat.Stage values
type StagePayload struct {
	RoomID   string
	From     int
	To       int
	Name     string
	Mistakes int
}

// MistakeSource identifies what accrued a mistake
type MistakeSource uint8

const (
	MistakeLightHeld MistakeSource = iota
	MistakeDoorOpenNear
	MistakeExternal
)

func (s MistakeSource) String() string {
	switch s {
	case MistakeLightHeld:
		return "light"
	case MistakeDoorOpenNear:
		return "door"
	case MistakeExternal:
		return "external"
	}
	return "unknown"
}

// MistakePayload carries the counter after a mistake
type MistakePayload struct {
	RoomID   string
	Source   MistakeSource
	Mistakes int
	Stage    int
}

// JumpscarePayload identifies the room the player lost in
type JumpscarePayload struct {
	RoomID   string
	Mistakes int
}

// JumpscareCue is one presentation step of the jumpscare sequence
type JumpscareCue uint8

const (
	CueFlashOn JumpscareCue = iota
	CueFlashOff
	CueScream
	CueFade
	CueGameOver
)

func (c JumpscareCue) String() string {
	switch c {
	case CueFlashOn:
		return "flash-on"
	case CueFlashOff:
		return "flash-off"
	case CueScream:
		return "scream"
	case CueFade:
		return "fade"
	case CueGameOver:
		return "game-over"
	}
	return "unknown"
}

// JumpscareCuePayload carries one sequence step
type JumpscareCuePayload struct {
	Cue   JumpscareCue
	Flash int // 1-based flash index for flash cues
}

// LightToggledPayload carries the new light state
type LightToggledPayload struct {
	Handle string
	On     bool
	Pitch  float64 // Click pitch ratio
}

// LightFlashedPayload carries the toggle count that formed the flash
type LightFlashedPayload struct {
	Handle  string
	Toggles int
}

// RoomActivatedPayload describes the room that became active
type RoomActivatedPayload struct {
	Index int
	ID    string
	Name  string
	Light string
	Safe  bool
	Far   mgl64.Vec3
	Near  mgl64.Vec3
	Door  mgl64.Vec3
}

// RoomDeactivatedPayload describes the room that was left
type RoomDeactivatedPayload struct {
	Index   int
	ID      string
	Cleared bool
}

// DoorInjectPayload carries a simulated rotation
// Relative adds Value to the current rotation instead of replacing it
type DoorInjectPayload struct {
	Value    int
	Relative bool
}
