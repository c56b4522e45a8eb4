package network

import (
	"encoding/json"
	"time"

	"github.com/lixenwraith/night-door/event"
)

// Wire message types
const (
	MsgHello   = "hello"
	MsgEvent   = "event"
	MsgCommand = "command"
)

// Spectator commands
const (
	CmdLight = "light"
	CmdDoor  = "door"
	CmdReset = "reset"
)

// Message is one JSON frame sent to spectators
type Message struct {
	Type    string         `json:"type"`
	Seq     uint64         `json:"seq"`
	Session string         `json:"session,omitempty"`
	Time    time.Time      `json:"time"`
	Event   string         `json:"event,omitempty"`
	Payload any            `json:"payload,omitempty"`
	Status  map[string]any `json:"status,omitempty"`
}

// Command is one JSON frame received from a spectator
type Command struct {
	Type     string `json:"type"`
	Command  string `json:"command"`
	Value    int    `json:"value,omitempty"`
	Relative bool   `json:"relative,omitempty"`
}

// ToEvent maps a command onto a request event
func (c Command) ToEvent() (event.GameEvent, bool) {
	if c.Type != MsgCommand {
		return event.GameEvent{}, false
	}
	switch c.Command {
	case CmdLight:
		return event.GameEvent{Type: event.EventLightToggleRequest}, true
	case CmdReset:
		return event.GameEvent{Type: event.EventGameResetRequest}, true
	case CmdDoor:
		return event.GameEvent{
			Type:    event.EventDoorInjectRequest,
			Payload: &event.DoorInjectPayload{Value: c.Value, Relative: c.Relative},
		}, true
	}
	return event.GameEvent{}, false
}

func encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}
