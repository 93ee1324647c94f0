// Package bus carries small events between otherwise independent widgets.
//
// A Bus is a thin layer over a shared vdom.EventTarget, normally the
// Document. It keeps no state of its own: every subscription is a listener
// registered on the target, so two buses over the same target see each
// other's events.
//
//	b := bus.New(doc)
//	sub := b.Subscribe(bus.ChartHover, func(e bus.Event) {
//	    highlight(e.Detail.Int("index"))
//	})
//	defer sub.Dispose()
//
//	b.Emit(bus.ChartHover, "index", 3)
//
// Payloads are restricted to primitive values (strings, numbers, booleans)
// so they can be logged and encoded without surprises.
package bus
