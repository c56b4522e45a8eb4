package threat

import (
	"time"

	"github.com/lixenwraith/night-door/event"
)

// Phase is the jumpscare sequence step
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseFlashOn
	PhaseFlashOff
	PhaseDelay // Fading to black before game over
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseFlashOn:
		return "FlashOn"
	case PhaseFlashOff:
		return "FlashOff"
	case PhaseDelay:
		return "Delay"
	case PhaseDone:
		return "Done"
	}
	return "Unknown"
}

// sequence drives flash on/off cycles, the scream after the first flash, fade and game over
// Advanced by tick dt; stopping is simply not advancing
type sequence struct {
	cfg     JumpscareConfig
	emit    event.Emitter
	phase   Phase
	elapsed time.Duration
	flash   int // 1-based index of the current flash
}

func (s *sequence) reset() {
	s.phase = PhaseIdle
	s.elapsed = 0
	s.flash = 0
}

func (s *sequence) start() {
	s.elapsed = 0
	if s.cfg.FlashCount <= 0 {
		s.cue(event.CueScream)
		s.enterDelay()
		return
	}
	s.flash = 1
	s.phase = PhaseFlashOn
	s.cue(event.CueFlashOn)
}

func (s *sequence) enterDelay() {
	s.phase = PhaseDelay
	s.cue(event.CueFade)
}

// advance consumes dt, crossing as many phases as it covers
func (s *sequence) advance(dt time.Duration) {
	if s.phase == PhaseIdle || s.phase == PhaseDone {
		return
	}
	s.elapsed += dt
	for {
		switch s.phase {
		case PhaseFlashOn:
			if s.elapsed < s.cfg.OnTime {
				return
			}
			s.elapsed -= s.cfg.OnTime
			s.phase = PhaseFlashOff
			s.cue(event.CueFlashOff)

		case PhaseFlashOff:
			if s.elapsed < s.cfg.OffTime {
				return
			}
			s.elapsed -= s.cfg.OffTime
			if s.flash == 1 {
				s.cue(event.CueScream)
			}
			if s.flash < s.cfg.FlashCount {
				s.flash++
				s.phase = PhaseFlashOn
				s.cue(event.CueFlashOn)
			} else {
				s.enterDelay()
			}

		case PhaseDelay:
			if s.elapsed < s.cfg.DelayBeforeGameOver {
				return
			}
			s.elapsed = 0
			s.phase = PhaseDone
			s.cue(event.CueGameOver)
			return

		default:
			return
		}
	}
}

func (s *sequence) cue(c event.JumpscareCue) {
	p := &event.JumpscareCuePayload{Cue: c}
	if c == event.CueFlashOn || c == event.CueFlashOff {
		p.Flash = s.flash
	}
	event.Emit(s.emit, event.EventJumpscareCue, p)
}
