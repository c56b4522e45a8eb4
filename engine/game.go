package engine

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tiendc/go-deepcopy"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/door"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/light"
	"github.com/lixenwraith/night-door/parameter"
	"github.com/lixenwraith/night-door/room"
	"github.com/lixenwraith/night-door/sensor"
	"github.com/lixenwraith/night-door/status"
	"github.com/lixenwraith/night-door/threat"
)

var (
	// ErrAlreadyAttached is returned when a single-instance component is attached twice
	ErrAlreadyAttached = errors.New("component already attached")
	// ErrNotAttached is returned by Start when a required component is missing
	ErrNotAttached = errors.New("required component not attached")
)

// SensorPoller is the tick-side view of the sensor bridge
type SensorPoller interface {
	Poll() (sensor.Reading, bool)
	Active() bool
}

// Game owns the door, threat, light and room state and advances them once per tick
// All methods except Snapshot, Queue and GameOver belong to the tick goroutine
type Game struct {
	queue  *event.EventQueue
	router *event.Router
	log    logrus.FieldLogger

	door   *door.Machine
	threat *threat.Engine
	light  *light.Switch
	rooms  *room.Coordinator
	sensor SensorPoller

	started  bool
	lastTick time.Time
	elapsed  time.Duration
	ticks    uint64

	gameOver atomic.Bool
	snapshot atomic.Pointer[Snapshot]

	statTicks    *atomic.Int64
	statDropped  *atomic.Int64
	statGameOver *atomic.Bool
}

// NewGame creates a game with an empty queue; components are attached before Start
func NewGame(reg *status.Registry, log logrus.FieldLogger) *Game {
	if reg == nil {
		reg = status.NewRegistry()
	}
	q := event.NewEventQueue()
	g := &Game{
		queue:        q,
		router:       event.NewRouter(q),
		log:          core.ComponentLogger(log, "engine"),
		statTicks:    reg.Ints.Get("engine.ticks"),
		statDropped:  reg.Ints.Get("engine.queue_dropped"),
		statGameOver: reg.Bools.Get("engine.game_over"),
	}
	// Session reset runs before the coordinator re-activates the first room
	g.router.Subscribe(event.HandlerFunc(g.onReset), event.EventGameResetRequest)
	return g
}

// Queue returns the event queue; safe from any goroutine
func (g *Game) Queue() *event.EventQueue {
	return g.queue
}

// Router returns the event router for subscribing sinks before Start
func (g *Game) Router() *event.Router {
	return g.router
}

func (g *Game) rejectDuplicate(what string) error {
	g.log.WithField("attach", what).Warn("duplicate attach rejected")
	return ErrAlreadyAttached
}

// AttachDoor sets the door machine and subscribes it
func (g *Game) AttachDoor(m *door.Machine) error {
	if g.door != nil {
		return g.rejectDuplicate("door")
	}
	g.door = m
	g.router.Register(m)
	return nil
}

// AttachThreat sets the threat engine and subscribes it
func (g *Game) AttachThreat(e *threat.Engine) error {
	if g.threat != nil {
		return g.rejectDuplicate("threat")
	}
	g.threat = e
	g.router.Register(e)
	return nil
}

// AttachLight sets the light switch and subscribes it
func (g *Game) AttachLight(s *light.Switch) error {
	if g.light != nil {
		return g.rejectDuplicate("light")
	}
	g.light = s
	g.router.Register(s)
	return nil
}

// AttachCoordinator sets the room coordinator and subscribes it
// Attach after threat so door-closed relief lands before the room changes
func (g *Game) AttachCoordinator(c *room.Coordinator) error {
	if g.rooms != nil {
		return g.rejectDuplicate("coordinator")
	}
	g.rooms = c
	g.router.Register(c)
	return nil
}

// AttachSensor sets the reading source, optional
func (g *Game) AttachSensor(p SensorPoller) error {
	if g.sensor != nil {
		return g.rejectDuplicate("sensor")
	}
	g.sensor = p
	return nil
}

// Start activates the first room and publishes the initial snapshot
func (g *Game) Start() error {
	if g.door == nil || g.threat == nil || g.light == nil || g.rooms == nil {
		return ErrNotAttached
	}
	if g.started {
		return nil
	}
	g.started = true
	g.rooms.Start()
	g.router.DispatchAll()
	g.publish()
	g.log.WithField("rooms", g.rooms.Len()).Info("game started")
	return nil
}

// Step runs one tick at now: requests, sensor, door, threat, light, cascades, snapshot
func (g *Game) Step(now time.Time) {
	var dt time.Duration
	if !g.lastTick.IsZero() {
		dt = min(max(now.Sub(g.lastTick), 0), parameter.MaxTickDelta)
	}
	g.lastTick = now
	g.elapsed += dt

	g.router.DispatchAll()

	if g.sensor != nil {
		if r, ok := g.sensor.Poll(); ok {
			g.door.Feed(r.Value)
		}
	}

	g.door.Update(dt, g.light.Dark())
	g.threat.Update(dt, g.door.Status(), g.light.On())
	g.light.Update(dt)

	g.router.DispatchAll()

	if g.threat.GameOver() {
		if !g.gameOver.Swap(true) {
			g.statGameOver.Store(true)
			g.log.WithFields(logrus.Fields{
				"room":     g.rooms.Current().ID,
				"elapsed":  g.elapsed,
				"mistakes": g.threat.Mistakes(),
			}).Warn("game over")
		}
	}

	g.ticks++
	g.statTicks.Store(int64(g.ticks))
	g.statDropped.Store(int64(g.queue.Dropped()))
	g.publish()
}

func (g *Game) onReset(event.GameEvent) {
	g.threat.ResetSession()
	g.gameOver.Store(false)
	g.statGameOver.Store(false)
	g.elapsed = 0
	g.log.Info("session reset")
}

func (g *Game) publish() {
	cur := g.rooms.Current()
	cleared := make([]bool, g.rooms.Len())
	for i := range cleared {
		cleared[i] = g.rooms.IsCleared(i)
	}

	src := Snapshot{
		Tick:    g.ticks,
		Elapsed: g.elapsed,
		Door:    g.door.State(),
		Threat:  g.threat.Snapshot(),
		Light:   LightState{Handle: g.light.Handle(), On: g.light.On()},
		Room: RoomState{
			Index:   g.rooms.Index(),
			Count:   g.rooms.Len(),
			ID:      cur.ID,
			Name:    cur.Name,
			Safe:    cur.Safe,
			Visits:  g.rooms.Visits(g.rooms.Index()),
			Cleared: cleared,
		},
		GameOver:     g.gameOver.Load(),
		QueueDropped: g.queue.Dropped(),
	}
	if g.sensor != nil {
		src.SensorActive = g.sensor.Active()
	}

	snap := new(Snapshot)
	if err := deepcopy.Copy(snap, &src); err != nil {
		g.log.WithError(err).Debug("snapshot copy failed")
		snap = &src
	}
	g.snapshot.Store(snap)
}

// Snapshot returns the last published snapshot, nil before Start; safe from any goroutine
func (g *Game) Snapshot() *Snapshot {
	return g.snapshot.Load()
}

// GameOver reports whether the jumpscare sequence has finished; safe from any goroutine
func (g *Game) GameOver() bool {
	return g.gameOver.Load()
}

// Ticks returns the number of completed steps
func (g *Game) Ticks() uint64 {
	return g.ticks
}
