// Package room sequences the rooms and rewires door, threat and light on every transition
package room

import (
	"github.com/lixenwraith/night-door/threat"
	"github.com/lixenwraith/night-door/vmath"
)

// Definition is one configured room
type Definition struct {
	ID    string
	Name  string
	Light string
	Safe  bool // Monster never appears
	Far   vmath.Pose
	Near  vmath.Pose
	Door  vmath.Pose
}

// Anchor returns the threat anchor for the room
func (d Definition) Anchor() threat.Anchor {
	return threat.Anchor{
		RoomID: d.ID,
		Light:  d.Light,
		Safe:   d.Safe,
		Far:    d.Far,
		Near:   d.Near,
		Door:   d.Door,
	}
}

// DoorAssigner is the door side of a room transition
type DoorAssigner interface {
	AssignRoom(roomID string)
	Cleared() bool
}

// ThreatAssigner is the threat side of a room transition
type ThreatAssigner interface {
	AssignRoom(a threat.Anchor)
	Stage() threat.Stage
}

// LightAssigner is the light side of a room transition
type LightAssigner interface {
	AssignLight(handle string)
}
