package event

import (
	"reflect"
	"sync"
)

var (
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct, nil if the event has no payload
func RegisterType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType, empty when unknown
func GetEventName(et EventType) string {
	InitRegistry()
	return typeToName[et]
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// InitRegistry populates the registry with all game events, safe to call repeatedly
func InitRegistry() {
	registryOnce.Do(func() {
		// Door
		RegisterType("EventDoorOpened", EventDoorOpened, &DoorPayload{})
		RegisterType("EventDoorPeeked", EventDoorPeeked, &DoorPayload{})
		RegisterType("EventDoorClosed", EventDoorClosed, &DoorPayload{})
		RegisterType("EventRoomCleared", EventRoomCleared, &RoomClearedPayload{})

		// Threat
		RegisterType("EventStageChanged", EventStageChanged, &StagePayload{})
		RegisterType("EventMistakeRegistered", EventMistakeRegistered, &MistakePayload{})
		RegisterType("EventJumpscareTriggered", EventJumpscareTriggered, &JumpscarePayload{})
		RegisterType("EventJumpscareCue", EventJumpscareCue, &JumpscareCuePayload{})

		// Light
		RegisterType("EventLightToggled", EventLightToggled, &LightToggledPayload{})
		RegisterType("EventLightFlashed", EventLightFlashed, &LightFlashedPayload{})

		// Room
		RegisterType("EventRoomActivated", EventRoomActivated, &RoomActivatedPayload{})
		RegisterType("EventRoomDeactivated", EventRoomDeactivated, &RoomDeactivatedPayload{})

		// Requests
		RegisterType("EventLightToggleRequest", EventLightToggleRequest, nil)
		RegisterType("EventDoorInjectRequest", EventDoorInjectRequest, &DoorInjectPayload{})
		RegisterType("EventGameResetRequest", EventGameResetRequest, nil)
	})
}
