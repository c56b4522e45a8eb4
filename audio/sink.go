package audio

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/parameter"
	"github.com/lixenwraith/night-door/threat"
)

// Player is the playback surface the sink drives
type Player interface {
	Play(st SoundType) bool
	PlayPitched(st SoundType, pitch float64) bool
	PlayTone(freq float64, d time.Duration) bool
	StartBreath()
	StopBreath()
	SetBreathLevel(level float64)
}

// Sink maps game events to sounds; it runs on the tick goroutine and never feeds back
type Sink struct {
	player Player
	log    logrus.FieldLogger
}

// NewSink creates a sink for p
func NewSink(p Player, log logrus.FieldLogger) *Sink {
	return &Sink{player: p, log: core.ComponentLogger(log, "audio")}
}

// EventTypes implements event.Subscriber
func (s *Sink) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventRoomActivated,
		event.EventDoorOpened,
		event.EventDoorPeeked,
		event.EventDoorClosed,
		event.EventLightToggled,
		event.EventStageChanged,
		event.EventJumpscareTriggered,
		event.EventJumpscareCue,
	}
}

// HandleEvent implements event.Handler
func (s *Sink) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventRoomActivated:
		s.player.SetBreathLevel(parameter.BreathVolumeClosed)
		s.player.StartBreath()

	case event.EventDoorOpened:
		s.player.Play(SoundCreak)
		s.player.SetBreathLevel(parameter.BreathVolumeOpen)

	case event.EventDoorPeeked:
		if p, ok := ev.Payload.(*event.DoorPayload); ok && !p.Closing {
			s.player.Play(SoundCreak)
		}
		s.player.SetBreathLevel(parameter.BreathVolumeOpen)

	case event.EventDoorClosed:
		if p, ok := ev.Payload.(*event.DoorPayload); ok && p.Slam {
			s.player.Play(SoundSlam)
		} else {
			s.player.Play(SoundThud)
		}
		s.player.SetBreathLevel(parameter.BreathVolumeClosed)

	case event.EventLightToggled:
		pitch := 1.0
		if p, ok := ev.Payload.(*event.LightToggledPayload); ok {
			pitch = p.Pitch
		}
		s.player.PlayPitched(SoundClick, pitch)

	case event.EventStageChanged:
		p, ok := ev.Payload.(*event.StagePayload)
		if ok && p.To > p.From && threat.Stage(p.To) >= threat.Near {
			s.player.Play(SoundSting)
		}

	case event.EventJumpscareTriggered:
		s.player.StopBreath()

	case event.EventJumpscareCue:
		p, ok := ev.Payload.(*event.JumpscareCuePayload)
		if !ok {
			return
		}
		switch p.Cue {
		case event.CueScream:
			s.player.Play(SoundScream)
		case event.CueGameOver:
			s.player.PlayTone(55, 1500*time.Millisecond)
			s.log.Debug("game over tone")
		}
	}
}
