// Package eventbus provides the in-process publish/subscribe bus that
// carries solve, validation and comparison events from the Manager to the
// metrics collector and other observers.
package eventbus

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus: a TypedBus carrying untyped events.
type Bus struct {
	*TypedBus[Event]
}

// New creates a Bus with the default subscriber buffer.
func New() *Bus { return &Bus{TypedBus: NewTyped[Event](DefaultBuffer)} }

var _ EventBus = (*Bus)(nil)
