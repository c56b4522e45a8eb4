package threat

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/door"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/status"
	"github.com/lixenwraith/night-door/vmath"
)

// Anchor is what the active room hands the engine
type Anchor struct {
	RoomID string
	Light  string
	Safe   bool
	Far    vmath.Pose
	Near   vmath.Pose
	Door   vmath.Pose
}

// PoseFor returns the anchor pose for a stage; Jumpscare uses the door
func (a Anchor) PoseFor(s Stage) vmath.Pose {
	switch s {
	case None, Far:
		return a.Far
	case Near:
		return a.Near
	case Door, Jumpscare:
		return a.Door
	}
	return a.Far
}

// Visual is the monster's presentation state
type Visual struct {
	Active      bool // Shown in the room
	Scare       bool // Jumpscare flash frame
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

func (v Visual) pose() vmath.Pose {
	return vmath.Pose{Position: v.Position, Orientation: v.Orientation}
}

// Snapshot is a read-only copy of the engine state
type Snapshot struct {
	RoomID       string
	Stage        Stage
	Mistakes     int
	FlashesUsed  int
	ActiveInRoom bool
	Summoned     bool
	Visual       Visual
	Phase        Phase
	Remembered   []MemoryEntry

	// Proximity of the shown monster; zero unless HasDistance
	HasDistance  bool
	DoorDistance float64
	Heading      float64
}

// Engine is the threat state machine, owned by the tick goroutine
type Engine struct {
	cfg  Config
	rng  *rand.Rand
	emit event.Emitter
	log  logrus.FieldLogger

	anchor      Anchor
	stage       Stage
	mistakes    int
	flashesUsed int
	active      bool
	summoned    bool
	visual      Visual
	restored    bool // Visual pose came from memory; kept when first shown
	memory      *Memory
	seq         sequence

	// Elapsed-time clock for the current room and the accrual deadlines on it
	clock       time.Duration
	lightOnTime time.Duration
	nextHold    time.Duration
	nextNear    time.Duration

	statStage    *status.AtomicString
	statMistakes *atomic.Int64
	statFlashes  *atomic.Int64
	statActive   *atomic.Bool
	statScares   *atomic.Int64
}

// NewEngine creates an engine with no room assigned
func NewEngine(cfg Config, rng *rand.Rand, emit event.Emitter, reg *status.Registry, log logrus.FieldLogger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	e := &Engine{
		cfg:          cfg,
		rng:          rng,
		emit:         emit,
		log:          core.ComponentLogger(log, "threat"),
		stage:        None,
		memory:       NewMemory(),
		seq:          sequence{cfg: cfg.Jumpscare, emit: emit},
		statStage:    reg.Strings.Get("threat.stage"),
		statMistakes: reg.Ints.Get("threat.mistakes"),
		statFlashes:  reg.Ints.Get("threat.flashes_used"),
		statActive:   reg.Bools.Get("threat.active"),
		statScares:   reg.Ints.Get("threat.jumpscares"),
	}
	e.publishStats()
	return e
}

// AssignRoom saves the outgoing placement, resets per-room state, rolls presence and restores a revisit placement
func (e *Engine) AssignRoom(a Anchor) {
	if e.cfg.RestoreLocation && e.visual.Active && e.anchor.RoomID != "" {
		e.memory.Save(e.anchor.RoomID, e.visual.pose())
		e.log.WithField("room", e.anchor.RoomID).Debug("monster placement saved")
	}

	e.anchor = a
	e.stage = None
	e.mistakes = 0
	e.flashesUsed = 0
	e.summoned = false
	e.clock = 0
	e.resetTimers()
	e.seq.reset()

	e.active = !a.Safe && e.rng.Float64() >= e.cfg.InactiveChance

	e.restored = false
	e.visual = Visual{}
	if p, ok := e.memory.Load(a.RoomID); ok && e.cfg.RestoreLocation {
		e.setPose(p)
		e.restored = true
	} else {
		e.setPose(a.Far)
	}

	e.log.WithFields(logrus.Fields{
		"room":     a.RoomID,
		"active":   e.active,
		"safe":     a.Safe,
		"restored": e.restored,
	}).Info("threat assigned to room")
	e.publishStats()
}

// ResetSession forgets every room placement, used on game restart before the first room is assigned again
func (e *Engine) ResetSession() {
	e.memory.Clear()
	e.visual = Visual{}
	e.anchor = Anchor{}
	e.stage = None
	e.seq.reset()
	e.publishStats()
}

// Update runs one tick of accrual, or the jumpscare sequence once terminal
func (e *Engine) Update(dt time.Duration, ds door.Status, lightOn bool) {
	e.clock += dt

	if e.stage == Jumpscare {
		e.seq.advance(dt)
		e.visual.Scare = e.seq.phase == PhaseFlashOn
		return
	}
	if !e.active {
		return
	}

	if ds == door.Closed {
		e.resetTimers()
		return
	}

	if lightOn {
		e.lightOnTime += dt
		if e.lightOnTime >= e.cfg.HoldGrace {
			if e.stage == None {
				e.summon()
			}
			if e.clock >= e.nextHold {
				e.nextHold = e.clock + e.cfg.HoldMistakeEvery
				e.RegisterMistake(event.MistakeLightHeld)
			}
		}
	} else {
		e.lightOnTime = 0
		e.nextHold = 0
	}

	if e.stage == Jumpscare {
		return
	}

	if e.nearDoorDanger(ds) {
		if e.clock >= e.nextNear {
			e.nextNear = e.clock + e.cfg.NearDoorOpenMistakeEvery
			e.RegisterMistake(event.MistakeDoorOpenNear)
		}
	} else {
		e.nextNear = 0
	}
}

func (e *Engine) nearDoorDanger(ds door.Status) bool {
	if !e.cfg.DoorOpenNearIsDanger {
		return false
	}
	if e.stage != Near && e.stage != Door {
		return false
	}
	switch ds {
	case door.Open:
		return true
	case door.Peeking:
		return e.cfg.PeekIsDanger
	case door.Closed:
		return false
	}
	return false
}

func (e *Engine) resetTimers() {
	e.lightOnTime = 0
	e.nextHold = 0
	e.nextNear = 0
}

// RegisterMistake accrues one mistake; at or past the kill stage it triggers the jumpscare instead
func (e *Engine) RegisterMistake(src event.MistakeSource) {
	if e.stage == Jumpscare || !e.active {
		return
	}
	if e.stage == None {
		e.summon()
	}
	if e.stage >= e.cfg.KillThreshold {
		e.triggerJumpscare()
		return
	}

	e.mistakes++
	e.statMistakes.Store(int64(e.mistakes))
	event.Emit(e.emit, event.EventMistakeRegistered, &event.MistakePayload{
		RoomID:   e.anchor.RoomID,
		Source:   src,
		Mistakes: e.mistakes,
		Stage:    int(e.stage),
	})
	e.recompute()
}

func (e *Engine) summon() {
	e.summoned = true
	e.visual.Active = true
	if !e.restored {
		e.setPose(e.anchor.Far)
	}
	e.changeStage(Far)
	e.log.WithField("room", e.anchor.RoomID).Info("monster summoned")
}

func (e *Engine) recompute() {
	if e.stage == None || e.stage == Jumpscare {
		return
	}
	next := StageFor(e.mistakes, e.cfg.MistakesPerStage)
	if next == e.stage {
		return
	}
	e.restored = false
	e.setPose(e.anchor.PoseFor(next))
	e.changeStage(next)
}

func (e *Engine) changeStage(next Stage) {
	from := e.stage
	e.stage = next
	e.statStage.Store(next.String())
	event.Emit(e.emit, event.EventStageChanged, &event.StagePayload{
		RoomID:   e.anchor.RoomID,
		From:     int(from),
		To:       int(next),
		Name:     next.String(),
		Mistakes: e.mistakes,
	})
}

func (e *Engine) triggerJumpscare() {
	e.visual.Active = true
	e.setPose(e.anchor.Door)
	e.changeStage(Jumpscare)
	e.statScares.Add(1)

	e.log.WithFields(logrus.Fields{
		"room":     e.anchor.RoomID,
		"mistakes": e.mistakes,
	}).Warn("jumpscare")
	event.Emit(e.emit, event.EventJumpscareTriggered, &event.JumpscarePayload{
		RoomID:   e.anchor.RoomID,
		Mistakes: e.mistakes,
	})

	e.seq.start()
	e.visual.Scare = e.seq.phase == PhaseFlashOn
}

// OnDoorClosed applies door-close relief
func (e *Engine) OnDoorClosed() {
	if e.stage == None || e.stage == Jumpscare {
		return
	}
	e.relieve(e.cfg.DoorCloseRelief)
}

// OnLightFlashed applies flash relief, capped per room
func (e *Engine) OnLightFlashed() {
	if e.stage == None || e.stage == Jumpscare {
		return
	}
	if e.flashesUsed >= e.cfg.FlashTimesTotal {
		return
	}
	e.flashesUsed++
	e.statFlashes.Store(int64(e.flashesUsed))
	e.relieve(e.cfg.FlashRelief)
}

func (e *Engine) relieve(n int) {
	e.mistakes = max(0, e.mistakes-n)
	e.statMistakes.Store(int64(e.mistakes))
	e.recompute()
}

func (e *Engine) setPose(p vmath.Pose) {
	e.visual.Position = p.Position
	e.visual.Orientation = p.Orientation
}

func (e *Engine) publishStats() {
	e.statStage.Store(e.stage.String())
	e.statMistakes.Store(int64(e.mistakes))
	e.statFlashes.Store(int64(e.flashesUsed))
	e.statActive.Store(e.active)
}

// Stage returns the current stage
func (e *Engine) Stage() Stage { return e.stage }

// Mistakes returns the current mistake count
func (e *Engine) Mistakes() int { return e.mistakes }

// ActiveInRoom reports whether the monster plays in the current room
func (e *Engine) ActiveInRoom() bool { return e.active }

// Phase returns the jumpscare sequence phase
func (e *Engine) Phase() Phase { return e.seq.phase }

// GameOver reports a finished jumpscare sequence
func (e *Engine) GameOver() bool { return e.seq.phase == PhaseDone }

// Memory exposes the session placement memory
func (e *Engine) Memory() *Memory { return e.memory }

// Visual returns the monster presentation state
func (e *Engine) Visual() Visual { return e.visual }

// Snapshot copies the engine state
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		RoomID:       e.anchor.RoomID,
		Stage:        e.stage,
		Mistakes:     e.mistakes,
		FlashesUsed:  e.flashesUsed,
		ActiveInRoom: e.active,
		Summoned:     e.summoned,
		Visual:       e.visual,
		Phase:        e.seq.phase,
		Remembered:   e.memory.Entries(),
	}
	if e.visual.Active && !e.anchor.Door.IsZero() {
		s.HasDistance = true
		s.DoorDistance = vmath.Distance(e.visual.pose(), e.anchor.Door)
		s.Heading = vmath.Yaw(e.visual.Orientation)
	}
	return s
}

// EventTypes implements event.Subscriber
func (e *Engine) EventTypes() []event.EventType {
	return []event.EventType{event.EventDoorClosed, event.EventLightFlashed}
}

// HandleEvent implements event.Handler
func (e *Engine) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventDoorClosed:
		e.OnDoorClosed()
	case event.EventLightFlashed:
		e.OnLightFlashed()
	}
}
