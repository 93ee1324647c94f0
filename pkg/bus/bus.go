package bus

import (
	"github.com/canonui/canon/pkg/reactive"
	"github.com/canonui/canon/pkg/vdom"
)

// Subscription removes a listener when disposed.
type Subscription = reactive.Subscription

// Handler receives dispatched events.
type Handler func(Event)

// Bus dispatches events on a shared target.
type Bus struct {
	target vdom.EventTarget
}

// New creates a bus over target.
func New(target vdom.EventTarget) *Bus {
	return &Bus{target: target}
}

// Target returns the node the bus dispatches on.
func (b *Bus) Target() vdom.EventTarget {
	return b.target
}

// Dispatch delivers e to every subscriber of e.Name. Listeners see a copy
// of the detail map. Dispatching on a nil bus is a no-op.
func (b *Bus) Dispatch(e Event) {
	if b == nil || b.target == nil {
		return
	}
	ev := vdom.NewEvent(e.Name, e.Detail.clone())
	ev.Bubbles = false
	b.target.DispatchEvent(ev)
}

// Emit is shorthand for Dispatch(NewEvent(name, kv...)).
func (b *Bus) Emit(name string, kv ...any) {
	b.Dispatch(NewEvent(name, kv...))
}

// Subscribe registers fn for events named name.
func (b *Bus) Subscribe(name string, fn Handler) *Subscription {
	if b == nil || b.target == nil || fn == nil {
		return reactive.NewSubscription(nil)
	}
	return b.target.AddEventListener(name, func(ev *vdom.Event) {
		fn(Event{Name: ev.Type, Detail: Detail(ev.Detail)})
	})
}
