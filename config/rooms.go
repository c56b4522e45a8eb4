package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/night-door/room"
	"github.com/lixenwraith/night-door/vmath"
)

// RoomConfig is one [[rooms]] table
type RoomConfig struct {
	ID    string       `toml:"id"`
	Name  string       `toml:"name"`
	Light string       `toml:"light"`
	Safe  bool         `toml:"safe"`
	Far   AnchorConfig `toml:"far"`
	Near  AnchorConfig `toml:"near"`
	Door  AnchorConfig `toml:"door"`
}

// AnchorConfig is a monster anchor: position = [x, y, z], yaw in degrees
type AnchorConfig struct {
	Position []float64 `toml:"position"`
	Yaw      float64   `toml:"yaw"`
}

// Pose converts the anchor; a missing position is the origin
func (a AnchorConfig) Pose() vmath.Pose {
	var p mgl64.Vec3
	copy(p[:], a.Position)
	return vmath.NewPose(p, a.Yaw)
}

func anchor(x, y, z, yaw float64) AnchorConfig {
	return AnchorConfig{Position: []float64{x, y, z}, Yaw: yaw}
}

// DefaultRooms is the built-in four-room loop, the bathroom is safe
func DefaultRooms() []RoomConfig {
	return []RoomConfig{
		{
			ID: "bedroom", Name: "Bedroom", Light: "bedroom-lamp",
			Far: anchor(0, 0, 9, 180), Near: anchor(0.5, 0, 5, 180), Door: anchor(0, 0, 1.2, 180),
		},
		{
			ID: "hallway", Name: "Hallway", Light: "hallway-ceiling",
			Far: anchor(-1, 0, 12, 170), Near: anchor(-0.5, 0, 6, 175), Door: anchor(0, 0, 1, 180),
		},
		{
			ID: "bathroom", Name: "Bathroom", Light: "bathroom-mirror", Safe: true,
			Far: anchor(0, 0, 5, 180), Near: anchor(0, 0, 3, 180), Door: anchor(0, 0, 1, 180),
		},
		{
			ID: "cellar", Name: "Cellar", Light: "cellar-bulb",
			Far: anchor(2, -1, 14, 200), Near: anchor(1, -0.5, 7, 190), Door: anchor(0, 0, 1.1, 180),
		},
	}
}

func validateRooms(rooms []RoomConfig) []error {
	if len(rooms) == 0 {
		return []error{fmt.Errorf("rooms: at least one room is required")}
	}

	var errs []error
	seen := make(map[string]int, len(rooms))
	for i, r := range rooms {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("rooms[%d]: missing id", i))
			continue
		}
		if j, dup := seen[r.ID]; dup {
			errs = append(errs, fmt.Errorf("rooms[%d]: duplicate id %q (first at rooms[%d])", i, r.ID, j))
		}
		seen[r.ID] = i
		for name, a := range map[string]AnchorConfig{"far": r.Far, "near": r.Near, "door": r.Door} {
			if len(a.Position) != 0 && len(a.Position) != 3 {
				errs = append(errs, fmt.Errorf("rooms[%d].%s: position needs 3 components, got %d", i, name, len(a.Position)))
			}
		}
	}
	return errs
}

// RoomDefinitions converts the room list for the coordinator
func (c Config) RoomDefinitions() []room.Definition {
	defs := make([]room.Definition, len(c.Rooms))
	for i, r := range c.Rooms {
		name := r.Name
		if name == "" {
			name = r.ID
		}
		defs[i] = room.Definition{
			ID:    r.ID,
			Name:  name,
			Light: r.Light,
			Safe:  r.Safe,
			Far:   r.Far.Pose(),
			Near:  r.Near.Pose(),
			Door:  r.Door.Pose(),
		}
	}
	return defs
}
