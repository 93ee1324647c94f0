package standard

import (
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/reactive"
	"github.com/canonui/canon/pkg/vdom"
)

// binding scopes the listeners a behaviour installs outside its element
// (document listeners, state and bus subscriptions) to the element's time
// in the document. State outlives the element, so a re-rendered element
// with the same id attaches again and the old listeners must stop.
type binding struct {
	el   *vdom.VNode
	doc  *vdom.Document
	subs reactive.Group
}

func bind(ctx behavior.AttachContext) *binding {
	return &binding{el: ctx.Element, doc: ctx.Document}
}

// live reports whether the element is still in its document. The first
// time it is not, every subscription is disposed.
func (b *binding) live() bool {
	if b.doc == nil || b.el.Document() == b.doc {
		return true
	}
	b.subs.Dispose()
	return false
}

// onDocument listens for typ on the document. It is a no-op without one.
func (b *binding) onDocument(typ string, fn vdom.EventListener) {
	if b.doc == nil {
		return
	}
	b.subs.Add(b.doc.AddEventListener(typ, func(e *vdom.Event) {
		if b.live() {
			fn(e)
		}
	}))
}

// onBus subscribes to a bus event.
func (b *binding) onBus(eb *bus.Bus, name string, fn bus.Handler) {
	b.subs.Add(eb.Subscribe(name, func(ev bus.Event) {
		if b.live() {
			fn(ev)
		}
	}))
}

// follow subscribes fn to changes of s.
func follow[T any](b *binding, s *reactive.Signal[T], fn func(T)) {
	b.subs.Add(s.Subscribe(func(v T) {
		if b.live() {
			fn(v)
		}
	}))
}
