// Package light is the room light collaborator: toggles, click cues and flash detection
package light

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/parameter"
	"github.com/lixenwraith/night-door/status"
)

// Config holds flash detection and click tunables
type Config struct {
	FlashToggles  int
	FlashWindow   time.Duration
	ClickPitchMin float64
	ClickPitchMax float64
}

// DefaultConfig returns the tuned defaults
func DefaultConfig() Config {
	return Config{
		FlashToggles:  parameter.LightFlashToggles,
		FlashWindow:   parameter.LightFlashWindow,
		ClickPitchMin: parameter.ClickPitchMin,
		ClickPitchMax: parameter.ClickPitchMax,
	}
}

// Switch owns the active room's light, tick goroutine only
type Switch struct {
	cfg  Config
	rng  *rand.Rand
	emit event.Emitter
	log  logrus.FieldLogger

	handle  string
	on      bool
	clock   time.Duration
	toggles []time.Duration // Toggle times inside the flash window, oldest first

	statOn      *atomic.Bool
	statToggles *atomic.Int64
	statFlashes *atomic.Int64
}

// NewSwitch creates a switch with the light off and no room assigned
func NewSwitch(cfg Config, rng *rand.Rand, emit event.Emitter, reg *status.Registry, log logrus.FieldLogger) *Switch {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Switch{
		cfg:         cfg,
		rng:         rng,
		emit:        emit,
		log:         core.ComponentLogger(log, "light"),
		toggles:     make([]time.Duration, 0, max(cfg.FlashToggles, parameter.LightToggleHistory)),
		statOn:      reg.Bools.Get("light.on"),
		statToggles: reg.Ints.Get("light.toggles"),
		statFlashes: reg.Ints.Get("light.flashes"),
	}
}

// AssignLight hands the switch a new room's light, which starts off
func (s *Switch) AssignLight(handle string) {
	s.handle = handle
	s.on = false
	s.toggles = s.toggles[:0]
	s.statOn.Store(false)
}

// Toggle flips the light, plays the click and checks for a flash
func (s *Switch) Toggle() {
	s.on = !s.on
	s.statOn.Store(s.on)
	s.statToggles.Add(1)

	pitch := s.cfg.ClickPitchMin
	if span := s.cfg.ClickPitchMax - s.cfg.ClickPitchMin; span > 0 {
		pitch += s.rng.Float64() * span
	}
	event.Emit(s.emit, event.EventLightToggled, &event.LightToggledPayload{
		Handle: s.handle,
		On:     s.on,
		Pitch:  pitch,
	})

	s.prune()
	if len(s.toggles) == cap(s.toggles) {
		s.toggles = append(s.toggles[:0], s.toggles[1:]...)
	}
	s.toggles = append(s.toggles, s.clock)

	if s.cfg.FlashToggles > 0 && len(s.toggles) >= s.cfg.FlashToggles {
		n := len(s.toggles)
		s.toggles = s.toggles[:0]
		s.statFlashes.Add(1)
		s.log.WithFields(logrus.Fields{"light": s.handle, "toggles": n}).Debug("light flashed")
		event.Emit(s.emit, event.EventLightFlashed, &event.LightFlashedPayload{
			Handle:  s.handle,
			Toggles: n,
		})
	}
}

// Update advances the switch clock
func (s *Switch) Update(dt time.Duration) {
	s.clock += dt
	s.prune()
}

// prune drops toggles older than the flash window
func (s *Switch) prune() {
	cut := 0
	for cut < len(s.toggles) && s.clock-s.toggles[cut] > s.cfg.FlashWindow {
		cut++
	}
	if cut > 0 {
		s.toggles = append(s.toggles[:0], s.toggles[cut:]...)
	}
}

// On reports the light-on signal
func (s *Switch) On() bool { return s.on }

// Dark reports the room-is-dark signal
func (s *Switch) Dark() bool { return !s.on }

// Handle returns the assigned light handle
func (s *Switch) Handle() string { return s.handle }

// EventTypes implements event.Subscriber
func (s *Switch) EventTypes() []event.EventType {
	return []event.EventType{event.EventLightToggleRequest}
}

// HandleEvent implements event.Handler
func (s *Switch) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventLightToggleRequest {
		s.Toggle()
	}
}
