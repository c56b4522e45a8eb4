package event

import "github.com/lixenwraith/night-door/parameter"

// Handler processes routed events
// Called synchronously on the tick goroutine during dispatch
type Handler interface {
	HandleEvent(ev GameEvent)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ev GameEvent)

func (f HandlerFunc) HandleEvent(ev GameEvent) { f(ev) }

// Subscriber is a Handler that declares its event types
// The router uses EventTypes for Register
type Subscriber interface {
	Handler
	EventTypes() []EventType
}

type binding struct {
	id      uint64
	handler Handler
}

// Router dispatches queued events to subscribed handlers
//
// Architecture:
//   - Single-threaded dispatch on the tick goroutine
//   - Per-type handler lists, invoked in subscription order
//   - Observers (SubscribeAll) run after the typed handlers of each event
//   - Events pushed by handlers are dispatched in the same DispatchAll, bounded by EventLoopIterations
type Router struct {
	queue     *EventQueue
	handlers  map[EventType][]binding
	observers []binding
	nextID    uint64
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *EventQueue) *Router {
	return &Router{
		queue:    queue,
		handlers: make(map[EventType][]binding),
	}
}

// Subscription is the lifetime of one subscribe call
type Subscription struct {
	router *Router
	id     uint64
	types  []EventType
	all    bool
}

// Unsubscribe removes the handler from every list it was added to; idempotent
func (s *Subscription) Unsubscribe() {
	if s == nil || s.router == nil {
		return
	}
	r := s.router
	s.router = nil

	for _, t := range s.types {
		r.handlers[t] = without(r.handlers[t], s.id)
		if len(r.handlers[t]) == 0 {
			delete(r.handlers, t)
		}
	}
	if s.all {
		r.observers = without(r.observers, s.id)
	}
}

// without returns a fresh slice so an in-flight dispatch keeps iterating its own copy
func without(list []binding, id uint64) []binding {
	out := make([]binding, 0, len(list))
	for _, b := range list {
		if b.id != id {
			out = append(out, b)
		}
	}
	return out
}

// Subscribe adds handler for the given event types
func (r *Router) Subscribe(handler Handler, types ...EventType) *Subscription {
	r.nextID++
	sub := &Subscription{router: r, id: r.nextID, types: types}
	for _, t := range types {
		r.handlers[t] = append(r.handlers[t], binding{id: sub.id, handler: handler})
	}
	return sub
}

// Register subscribes a handler for its declared event types
func (r *Router) Register(s Subscriber) *Subscription {
	return r.Subscribe(s, s.EventTypes()...)
}

// SubscribeAll adds an observer that sees every dispatched event
func (r *Router) SubscribeAll(handler Handler) *Subscription {
	r.nextID++
	sub := &Subscription{router: r, id: r.nextID, all: true}
	r.observers = append(r.observers, binding{id: sub.id, handler: handler})
	return sub
}

// DispatchAll consumes pending events and routes them in FIFO order
// Returns the number of events dispatched
func (r *Router) DispatchAll() int {
	total := 0
	for i := 0; i < parameter.EventLoopIterations; i++ {
		events := r.queue.Consume()
		if len(events) == 0 {
			break
		}
		for _, ev := range events {
			r.Dispatch(ev)
		}
		total += len(events)
	}
	return total
}

// Dispatch routes a single event immediately, bypassing the queue
func (r *Router) Dispatch(ev GameEvent) {
	for _, b := range r.handlers[ev.Type] {
		b.handler.HandleEvent(ev)
	}
	for _, b := range r.observers {
		b.handler.HandleEvent(ev)
	}
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
