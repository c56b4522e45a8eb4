package room

import (
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/status"
	"github.com/lixenwraith/night-door/threat"
)

// ErrNoRooms is returned when the room list is empty
var ErrNoRooms = errors.New("room list is empty")

// Coordinator keeps exactly one room active and cycles with wraparound
// Tick goroutine only
type Coordinator struct {
	rooms   []Definition
	index   int
	started bool
	cleared []bool // Per-room clear marks for display, kept across cycles
	visits  []int

	door   DoorAssigner
	threat ThreatAssigner
	light  LightAssigner
	emit   event.Emitter
	log    logrus.FieldLogger

	statIndex   *atomic.Int64
	statRoom    *status.AtomicString
	statCleared *atomic.Int64
}

// NewCoordinator wires the collaborators; rooms are copied
func NewCoordinator(rooms []Definition, d DoorAssigner, t ThreatAssigner, l LightAssigner, emit event.Emitter, reg *status.Registry, log logrus.FieldLogger) (*Coordinator, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Coordinator{
		rooms:       append([]Definition(nil), rooms...),
		cleared:     make([]bool, len(rooms)),
		visits:      make([]int, len(rooms)),
		door:        d,
		threat:      t,
		light:       l,
		emit:        emit,
		log:         core.ComponentLogger(log, "room"),
		statIndex:   reg.Ints.Get("room.index"),
		statRoom:    reg.Strings.Get("room.id"),
		statCleared: reg.Ints.Get("room.cleared"),
	}, nil
}

// Start activates the first room
func (c *Coordinator) Start() {
	c.Activate(0)
}

// Activate leaves the current room and makes room i (mod len) the active one
func (c *Coordinator) Activate(i int) {
	n := len(c.rooms)
	i = ((i % n) + n) % n

	if c.started {
		prev := c.rooms[c.index]
		event.Emit(c.emit, event.EventRoomDeactivated, &event.RoomDeactivatedPayload{
			Index:   c.index,
			ID:      prev.ID,
			Cleared: c.cleared[c.index],
		})
	}

	c.index = i
	c.started = true
	c.visits[i]++
	def := c.rooms[i]

	c.door.AssignRoom(def.ID)
	c.threat.AssignRoom(def.Anchor())
	c.light.AssignLight(def.Light)

	c.statIndex.Store(int64(i))
	c.statRoom.Store(def.ID)
	c.log.WithFields(logrus.Fields{
		"index":  i,
		"room":   def.ID,
		"safe":   def.Safe,
		"visits": c.visits[i],
	}).Info("room activated")

	event.Emit(c.emit, event.EventRoomActivated, &event.RoomActivatedPayload{
		Index: i,
		ID:    def.ID,
		Name:  def.Name,
		Light: def.Light,
		Safe:  def.Safe,
		Far:   def.Far.Position,
		Near:  def.Near.Position,
		Door:  def.Door.Position,
	})
}

// Advance activates the next room, wrapping at the end
func (c *Coordinator) Advance() {
	c.Activate((c.index + 1) % len(c.rooms))
}

// Restart clears the marks and goes back to the first room
func (c *Coordinator) Restart() {
	for i := range c.cleared {
		c.cleared[i] = false
		c.visits[i] = 0
	}
	c.statCleared.Store(0)
	c.log.Info("restarting from the first room")
	c.Activate(0)
}

func (c *Coordinator) onDoorClosed() {
	if !c.started || !c.door.Cleared() {
		return
	}
	if c.threat.Stage() == threat.Jumpscare {
		return
	}
	c.Advance()
}

func (c *Coordinator) onRoomCleared() {
	if !c.started || c.cleared[c.index] {
		return
	}
	c.cleared[c.index] = true
	c.statCleared.Add(1)
	c.log.WithField("room", c.rooms[c.index].ID).Info("room cleared, close the door to move on")
}

// Current returns the active room
func (c *Coordinator) Current() Definition {
	return c.rooms[c.index]
}

// Index returns the active room index
func (c *Coordinator) Index() int {
	return c.index
}

// Len returns the number of rooms
func (c *Coordinator) Len() int {
	return len(c.rooms)
}

// IsCleared reports the clear mark of room i
func (c *Coordinator) IsCleared(i int) bool {
	return i >= 0 && i < len(c.cleared) && c.cleared[i]
}

// Visits returns how many times room i was activated
func (c *Coordinator) Visits(i int) int {
	if i < 0 || i >= len(c.visits) {
		return 0
	}
	return c.visits[i]
}

// EventTypes implements event.Subscriber
func (c *Coordinator) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDoorClosed,
		event.EventRoomCleared,
		event.EventGameResetRequest,
	}
}

// HandleEvent implements event.Handler
func (c *Coordinator) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventDoorClosed:
		c.onDoorClosed()
	case event.EventRoomCleared:
		c.onRoomCleared()
	case event.EventGameResetRequest:
		c.Restart()
	}
}
