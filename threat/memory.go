package threat

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/night-door/vmath"
)

// MemoryEntry is the monster's last placement in one room
type MemoryEntry struct {
	RoomID          string
	LastPosition    mgl64.Vec3
	LastOrientation mgl64.Quat
	HasLocation     bool
}

// Memory keeps per-room placements for the whole session, in first-visit order
type Memory struct {
	rooms *orderedmap.OrderedMap[string, MemoryEntry]
}

func NewMemory() *Memory {
	return &Memory{rooms: orderedmap.NewOrderedMap[string, MemoryEntry]()}
}

// Save upserts the placement for roomID
func (m *Memory) Save(roomID string, p vmath.Pose) {
	m.rooms.Set(roomID, MemoryEntry{
		RoomID:          roomID,
		LastPosition:    p.Position,
		LastOrientation: p.Orientation,
		HasLocation:     true,
	})
}

// Load returns the saved placement for roomID
func (m *Memory) Load(roomID string) (vmath.Pose, bool) {
	e, ok := m.rooms.Get(roomID)
	if !ok || !e.HasLocation {
		return vmath.Pose{}, false
	}
	return vmath.Pose{Position: e.LastPosition, Orientation: e.LastOrientation}, true
}

// Len returns the number of remembered rooms
func (m *Memory) Len() int {
	return m.rooms.Len()
}

// Entries returns remembered placements in first-visit order
func (m *Memory) Entries() []MemoryEntry {
	out := make([]MemoryEntry, 0, m.rooms.Len())
	for el := m.rooms.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Clear forgets every room, used on game restart
func (m *Memory) Clear() {
	m.rooms = orderedmap.NewOrderedMap[string, MemoryEntry]()
}
