package event

import "fmt"

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, never pushed
	EventNone EventType = iota

	// === Door Events ===

	// EventDoorOpened signals a transition into the fully open state
	// Trigger: door.Machine on rotation >= open buffer
	// Consumer: ThreatEngine, AudioSink, NetworkHub | Payload: *DoorPayload
	EventDoorOpened

	// EventDoorPeeked signals a transition into the cracked-open state
	// Trigger: door.Machine on peek buffer <= rotation < open buffer
	// Consumer: AudioSink, NetworkHub | Payload: *DoorPayload (Closing set when coming down from Open)
	EventDoorPeeked

	// EventDoorClosed signals a transition into the closed state
	// Trigger: door.Machine on rotation < peek buffer
	// Consumer: ThreatEngine (relief), RoomCoordinator (advance), AudioSink | Payload: *DoorPayload (Slam flag)
	EventDoorClosed

	// EventRoomCleared signals the door stayed open in the dark long enough, at most once per room
	// Trigger: door.Machine.Update
	// Consumer: RoomCoordinator, AudioSink | Payload: *RoomClearedPayload
	EventRoomCleared

	// === Threat Events ===

	// EventStageChanged signals a proximity stage change, including summon and jumpscare
	// Trigger: threat.Engine after a mistake mutation
	// Consumer: AudioSink, NetworkHub | Payload: *StagePayload
	EventStageChanged

	// EventMistakeRegistered signals one accrued mistake
	// Trigger: threat.Engine accrual
	// Consumer: NetworkHub | Payload: *MistakePayload
	EventMistakeRegistered

	// EventJumpscareTriggered signals entry into the terminal state, exactly once per room
	// Trigger: threat.Engine on mistake at or past kill stage
	// Consumer: AudioSink, Renderer | Payload: *JumpscarePayload
	EventJumpscareTriggered

	// EventJumpscareCue signals one phase step of the jumpscare sequence
	// Trigger: threat.Engine sequence tick
	// Consumer: AudioSink, Renderer | Payload: *JumpscareCuePayload
	EventJumpscareCue

	// === Light Events ===

	// EventLightToggled signals the room light switched
	// Trigger: light.Switch
	// Consumer: AudioSink (click) | Payload: *LightToggledPayload
	EventLightToggled

	// EventLightFlashed signals rapid toggling inside the flash window
	// Trigger: light.Switch
	// Consumer: ThreatEngine (relief) | Payload: *LightFlashedPayload
	EventLightFlashed

	// === Room Events ===

	// EventRoomActivated signals a room became the active room
	// Trigger: room.Coordinator.Activate
	// Consumer: AudioSink, NetworkHub | Payload: *RoomActivatedPayload
	EventRoomActivated

	// EventRoomDeactivated signals the previous room was left
	// Trigger: room.Coordinator.Activate
	// Consumer: NetworkHub | Payload: *RoomDeactivatedPayload
	EventRoomDeactivated

	// === Requests ===

	// EventLightToggleRequest asks the light switch to flip
	// Trigger: keyboard input
	// Consumer: light.Switch | Payload: nil
	EventLightToggleRequest

	// EventDoorInjectRequest feeds a simulated rotation into the door
	// Trigger: keyboard input when no sensor is attached
	// Consumer: door.Machine | Payload: *DoorInjectPayload
	EventDoorInjectRequest

	// EventGameResetRequest restarts the session after game over
	// Trigger: keyboard input
	// Consumer: engine.Game, RoomCoordinator | Payload: nil
	EventGameResetRequest
)

// String returns the registered name of the event type
func (t EventType) String() string {
	if name := GetEventName(t); name != "" {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// GameEvent is one queued notification
type GameEvent struct {
	Type    EventType
	Payload any
}
