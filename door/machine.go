package door

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/status"
)

// Machine is the door state machine, owned by the tick goroutine
type Machine struct {
	cfg   Config
	state State
	rng   *rand.Rand
	emit  event.Emitter
	log   logrus.FieldLogger

	statStatus   *status.AtomicString
	statRotation *atomic.Int64
	statOpenMs   *atomic.Int64
	statCleared  *atomic.Bool
	statSlams    *atomic.Int64
}

// NewMachine creates a closed door with no room assigned
func NewMachine(cfg Config, rng *rand.Rand, emit event.Emitter, reg *status.Registry, log logrus.FieldLogger) *Machine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	m := &Machine{
		cfg:          cfg,
		rng:          rng,
		emit:         emit,
		log:          core.ComponentLogger(log, "door"),
		statStatus:   reg.Strings.Get("door.status"),
		statRotation: reg.Ints.Get("door.rotation"),
		statOpenMs:   reg.Ints.Get("door.open_ms"),
		statCleared:  reg.Bools.Get("door.cleared"),
		statSlams:    reg.Ints.Get("door.slams"),
	}
	m.statStatus.Store(Closed.String())
	return m
}

// Feed applies a raw sensor reading
func (m *Machine) Feed(raw int) {
	m.apply(raw - m.cfg.BaseOffset)
}

// Inject applies a simulated rotation, clamped to [0, OpenBuffer]
func (m *Machine) Inject(v int) {
	m.apply(clamp(v, 0, m.cfg.OpenBuffer))
}

func (m *Machine) apply(rotation int) {
	s := &m.state
	s.RotationValue = rotation
	s.MoveDistance = rotation - s.RotationValueLastTick
	s.MoveDirection = sign(s.MoveDistance)
	m.statRotation.Store(int64(rotation))

	next := m.cfg.Classify(rotation)
	if next == s.Status {
		return
	}
	prev := s.Status
	s.Status = next
	if prev == Open {
		s.OpenTime = 0
	}
	m.statStatus.Store(next.String())

	payload := &event.DoorPayload{
		RoomID:    s.RoomID,
		Rotation:  rotation,
		Direction: s.MoveDirection,
		Distance:  s.MoveDistance,
	}

	var et event.EventType
	switch next {
	case Open:
		et = event.EventDoorOpened
	case Peeking:
		et = event.EventDoorPeeked
		payload.Closing = prev == Open
	case Closed:
		et = event.EventDoorClosed
		payload.Slam = prev == Open && abs(s.MoveDistance) >= m.cfg.SlamDistance
		s.Slammed = payload.Slam
		if payload.Slam {
			m.statSlams.Add(1)
		}
	}

	m.log.WithFields(logrus.Fields{
		"from":     prev,
		"to":       next,
		"rotation": rotation,
		"distance": s.MoveDistance,
	}).Debug("door transition")
	event.Emit(m.emit, et, payload)
}

// Update runs clear timing and closes the tick
// dark is the room-is-dark signal from the light switch
func (m *Machine) Update(dt time.Duration, dark bool) {
	s := &m.state
	if s.Status == Open && !s.Cleared && dark {
		s.OpenTime += dt
		m.statOpenMs.Store(s.OpenTime.Milliseconds())
		if s.OpenTime >= s.ClearTimeThreshold {
			s.Cleared = true
			m.statCleared.Store(true)
			m.log.WithFields(logrus.Fields{
				"room":      s.RoomID,
				"open_time": s.OpenTime,
			}).Info("room cleared")
			event.Emit(m.emit, event.EventRoomCleared, &event.RoomClearedPayload{
				RoomID:    s.RoomID,
				OpenTime:  s.OpenTime,
				Threshold: s.ClearTimeThreshold,
			})
		}
	}
	s.RotationValueLastTick = s.RotationValue
}

// AssignRoom resets per-room fields and draws a fresh clear threshold
// The physical door position carries over
func (m *Machine) AssignRoom(roomID string) {
	s := &m.state
	s.RoomID = roomID
	s.OpenTime = 0
	s.Cleared = false
	s.Slammed = false
	s.ClearTimeThreshold = m.drawThreshold()

	m.statCleared.Store(false)
	m.statOpenMs.Store(0)
	m.log.WithFields(logrus.Fields{
		"room":      roomID,
		"threshold": s.ClearTimeThreshold,
	}).Debug("door assigned")
}

func (m *Machine) drawThreshold() time.Duration {
	lo, hi := m.cfg.MinClearTime, m.cfg.MaxClearTime
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(m.rng.Int64N(int64(hi-lo)+1))
}

// Status returns the current door status
func (m *Machine) Status() Status {
	return m.state.Status
}

// Cleared reports whether the current room was cleared
func (m *Machine) Cleared() bool {
	return m.state.Cleared
}

// Rotation returns the current rotation value
func (m *Machine) Rotation() int {
	return m.state.RotationValue
}

// State returns a copy of the door state
func (m *Machine) State() State {
	return m.state
}

// Config returns the thresholds in use
func (m *Machine) Config() Config {
	return m.cfg
}

// EventTypes implements event.Subscriber
func (m *Machine) EventTypes() []event.EventType {
	return []event.EventType{event.EventDoorInjectRequest}
}

// HandleEvent implements event.Handler
func (m *Machine) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventDoorInjectRequest:
		p, ok := ev.Payload.(*event.DoorInjectPayload)
		if !ok {
			return
		}
		v := p.Value
		if p.Relative {
			v += m.state.RotationValue
		}
		m.Inject(v)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
