package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/parameter"
)

// Muter toggles audio output, returning the new muted state
type Muter interface {
	ToggleMute() bool
}

// InputHandler turns keys into request events on the game queue
// It never touches game state directly; the tick goroutine applies the requests
type InputHandler struct {
	emit       event.Emitter
	muter      Muter
	log        logrus.FieldLogger
	openBuffer int
}

// NewInputHandler creates a handler; muter may be nil when audio is disabled
func NewInputHandler(emit event.Emitter, muter Muter, openBuffer int, log logrus.FieldLogger) *InputHandler {
	return &InputHandler{
		emit:       emit,
		muter:      muter,
		log:        core.ComponentLogger(log, "input"),
		openBuffer: openBuffer,
	}
}

// HandleEvent processes one terminal event, returns false to exit
func (h *InputHandler) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		h.injectDoor(parameter.InputDoorStep, true)
	case tcell.KeyDown:
		h.injectDoor(-parameter.InputDoorStep, true)
	case tcell.KeyPgUp:
		h.injectDoor(h.openBuffer, false)
	case tcell.KeyPgDn:
		h.injectDoor(0, false)
	case tcell.KeyRune:
		return h.handleRune(key.Rune())
	}
	return true
}

func (h *InputHandler) handleRune(ch rune) bool {
	switch ch {
	case 'q', 'Q':
		return false
	case ' ':
		event.Emit(h.emit, event.EventLightToggleRequest, nil)
	case 'r', 'R':
		h.log.Info("restart requested")
		event.Emit(h.emit, event.EventGameResetRequest, nil)
	case 'm', 'M':
		if h.muter != nil {
			muted := h.muter.ToggleMute()
			h.log.WithField("muted", muted).Debug("mute toggled")
		}
	}
	return true
}

func (h *InputHandler) injectDoor(value int, relative bool) {
	event.Emit(h.emit, event.EventDoorInjectRequest, &event.DoorInjectPayload{Value: value, Relative: relative})
}
