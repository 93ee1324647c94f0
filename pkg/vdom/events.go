package vdom

import (
	"sync"
	"sync/atomic"

	"github.com/canonui/canon/pkg/reactive"
)

// Event is dispatched through the tree. Detail carries the payload of
// custom events and is nil for plain DOM-style events.
type Event struct {
	Type    string
	Detail  map[string]any
	Bubbles bool

	// Target is the node the event was dispatched on; nil when dispatched
	// directly on a Document.
	Target *VNode

	// CurrentTarget is the node whose listeners are running; nil while the
	// Document's listeners run.
	CurrentTarget *VNode

	stopped          bool
	defaultPrevented bool
}

// NewEvent creates a bubbling event.
func NewEvent(typ string, detail map[string]any) *Event {
	return &Event{Type: typ, Detail: detail, Bubbles: true}
}

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// EventListener handles a dispatched event.
type EventListener func(*Event)

// EventHandler pairs an event type with a listener for element factories.
type EventHandler struct {
	Event   string
	Handler EventListener
}

// EventTarget is implemented by VNode and Document.
type EventTarget interface {
	AddEventListener(typ string, fn EventListener) *reactive.Subscription
	DispatchEvent(e *Event) bool
}

var listenerIDs uint64

type listenerEntry struct {
	id uint64
	fn EventListener
}

// listenerSet is a lazily initialised map of listeners keyed by event type.
type listenerSet struct {
	mu sync.Mutex
	m  map[string][]listenerEntry
}

func (s *listenerSet) add(typ string, fn EventListener) *reactive.Subscription {
	id := atomic.AddUint64(&listenerIDs, 1)

	s.mu.Lock()
	if s.m == nil {
		s.m = make(map[string][]listenerEntry)
	}
	s.m[typ] = append(s.m[typ], listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	return reactive.NewSubscription(func() { s.remove(typ, id) })
}

func (s *listenerSet) remove(typ string, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.m[typ]
	for i, e := range entries {
		if e.id == id {
			s.m[typ] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// snapshot copies the listeners for typ so they can run without the lock.
func (s *listenerSet) snapshot(typ string) []listenerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.m[typ]
	if len(entries) == 0 {
		return nil
	}
	out := make([]listenerEntry, len(entries))
	copy(out, entries)
	return out
}

func (s *listenerSet) count(typ string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m[typ])
}

func (s *listenerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, entries := range s.m {
		n += len(entries)
	}
	return n
}

// AddEventListener registers fn for events of type typ on v.
func (v *VNode) AddEventListener(typ string, fn EventListener) *reactive.Subscription {
	return v.listeners.add(typ, fn)
}

// ListenerCount returns the number of listeners for typ on v.
func (v *VNode) ListenerCount(typ string) int {
	return v.listeners.count(typ)
}

// DispatchEvent runs listeners on v, then on each ancestor and finally on
// the owning Document while the event bubbles. It returns false if a
// listener called PreventDefault.
func (v *VNode) DispatchEvent(e *Event) bool {
	if e.Target == nil {
		e.Target = v
	}
	for n := v; n != nil; n = n.parent {
		e.CurrentTarget = n
		for _, l := range n.listeners.snapshot(e.Type) {
			l.fn(e)
		}
		if e.stopped || !e.Bubbles {
			return !e.defaultPrevented
		}
	}
	e.CurrentTarget = nil
	if v.doc != nil {
		for _, l := range v.doc.listeners.snapshot(e.Type) {
			l.fn(e)
		}
	}
	return !e.defaultPrevented
}

// event creates an EventHandler for the element factories.
func event(name string, handler EventListener) EventHandler {
	return EventHandler{Event: name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler EventListener) EventHandler { return event("click", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler EventListener) EventHandler { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler EventListener) EventHandler { return event("mouseleave", handler) }

// OnPointerDown handles pointerdown events.
func OnPointerDown(handler EventListener) EventHandler { return event("pointerdown", handler) }

// OnPointerMove handles pointermove events.
func OnPointerMove(handler EventListener) EventHandler { return event("pointermove", handler) }

// OnPointerUp handles pointerup events.
func OnPointerUp(handler EventListener) EventHandler { return event("pointerup", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler EventListener) EventHandler { return event("keydown", handler) }

// OnInput handles input events.
func OnInput(handler EventListener) EventHandler { return event("input", handler) }

// OnScroll handles scroll events.
func OnScroll(handler EventListener) EventHandler { return event("scroll", handler) }
