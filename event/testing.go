package event

// Recorder is an Emitter that keeps every pushed event, for tests and headless replays
type Recorder struct {
	Events []GameEvent
}

func (r *Recorder) Push(ev GameEvent) {
	r.Events = append(r.Events, ev)
}

// Types returns the recorded event types in push order
func (r *Recorder) Types() []EventType {
	types := make([]EventType, len(r.Events))
	for i, ev := range r.Events {
		types[i] = ev.Type
	}
	return types
}

// Last returns the most recent event of type t
func (r *Recorder) Last(t EventType) (GameEvent, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Type == t {
			return r.Events[i], true
		}
	}
	return GameEvent{}, false
}

// Count returns how many events of type t were recorded
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Reset drops recorded events
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
