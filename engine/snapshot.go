package engine

import (
	"time"

	"github.com/lixenwraith/night-door/door"
	"github.com/lixenwraith/night-door/threat"
)

// Snapshot is the immutable per-tick view read by the renderer and the spectator feed
type Snapshot struct {
	Tick         uint64
	Elapsed      time.Duration
	Door         door.State
	Threat       threat.Snapshot
	Light        LightState
	Room         RoomState
	GameOver     bool
	SensorActive bool
	QueueDropped uint64
}

// LightState is the active room's light
type LightState struct {
	Handle string
	On     bool
}

// RoomState is the coordinator's position in the room list
type RoomState struct {
	Index   int
	Count   int
	ID      string
	Name    string
	Safe    bool
	Visits  int
	Cleared []bool // Per-room clear marks, indexed like the room list
}
