// Package door turns rotation readings into semantic door states
package door

import (
	"time"

	"github.com/lixenwraith/night-door/parameter"
)

// Status is the discrete door position
type Status uint8

const (
	Closed Status = iota
	Peeking
	Open
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Peeking:
		return "Peeking"
	case Open:
		return "Open"
	}
	return "Unknown"
}

// Config holds door thresholds in rotation units after offset
type Config struct {
	PeekBuffer   int
	OpenBuffer   int
	SlamDistance int
	BaseOffset   int // Subtracted from every fed reading
	MinClearTime time.Duration
	MaxClearTime time.Duration
}

// DefaultConfig returns the rotary encoder defaults
func DefaultConfig() Config {
	return Config{
		PeekBuffer:   parameter.DoorPeekBuffer,
		OpenBuffer:   parameter.DoorOpenBuffer,
		SlamDistance: parameter.DoorSlamDistance,
		BaseOffset:   parameter.SensorBaseOffset,
		MinClearTime: parameter.DoorMinClearTime,
		MaxClearTime: parameter.DoorMaxClearTime,
	}
}

// Classify maps a rotation to a status, open checked before peek
func (c Config) Classify(rotation int) Status {
	switch {
	case rotation >= c.OpenBuffer:
		return Open
	case rotation >= c.PeekBuffer:
		return Peeking
	default:
		return Closed
	}
}

// State is the door's per-tick view
type State struct {
	Status                Status
	RotationValue         int
	RotationValueLastTick int
	MoveDirection         int // -1, 0, 1
	MoveDistance          int
	OpenTime              time.Duration
	ClearTimeThreshold    time.Duration
	Cleared               bool
	RoomID                string
	Slammed               bool // Last close was a slam
}
