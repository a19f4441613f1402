package registry

import (
	"fmt"

	"github.com/vchernov/physcat/internal/model"
)

// EventType identifies a catalog lifecycle event.
type EventType int

const (
	ObjectCreated EventType = iota
	ObjectRemoved
	ObjectMoved
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case ObjectCreated:
		return "created"
	case ObjectRemoved:
		return "removed"
	case ObjectMoved:
		return "moved"
	default:
		return "unknown"
	}
}

// Event carries the event type and the originating object.
type Event struct {
	Type   EventType
	Object *model.PhysicalObject
}

// Handler observes catalog events. Handlers run synchronously on the
// caller's stack, in registration order. A non-nil error aborts
// dispatch of the remaining handlers and propagates to the mutating
// caller; effects of handlers already invoked are not rolled back.
type Handler func(Event) error

// AddHandler appends a handler to the ordered list for the event type.
// Handlers are never deduplicated.
func (r *Registry) AddHandler(t EventType, h Handler) {
	r.handlers[t] = append(r.handlers[t], h)
}

// dispatch invokes every handler registered for the event type, in
// registration order, stopping at the first error.
func (r *Registry) dispatch(t EventType, obj *model.PhysicalObject) error {
	for i, h := range r.handlers[t] {
		if err := h(Event{Type: t, Object: obj}); err != nil {
			return fmt.Errorf("%s handler %d for object %q: %w", t, i, obj.ID(), err)
		}
	}
	return nil
}
