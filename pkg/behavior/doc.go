// Package behavior attaches interactive behaviour to server-rendered
// markup.
//
// Widgets are identified by marker attributes such as data-modal. A
// Registry maps each marker attribute to a Behavior; a Scanner walks the
// document, finds every element carrying a registered attribute and runs
// the behaviour exactly once per element, then keeps watching the document
// for inserted elements.
//
//	st := store.New()
//	reg := behavior.NewRegistry(st)
//	reg.RegisterFunc("data-counter", func(ctx behavior.AttachContext) error {
//	    ctx.State.Value.Set(0)
//	    return nil
//	})
//
//	sc := behavior.NewScanner(reg, doc)
//	if err := sc.Start(ctx); err != nil {
//	    return err // ElementNotFound, ObserverFailed or JsError
//	}
//
// # Attach-once
//
// Before a behaviour runs, the scanner stamps the element with a marker
// attribute derived from the behaviour's attribute (data-modal gets
// data-canon-attached-data-modal="1"). Elements carrying the marker are skipped
// on later scans. The marker is never removed, so re-rendered markup that
// keeps the marker is never attached again.
//
// # Failure isolation
//
// An error or panic from one behaviour on one element is logged, counted
// in the ScanReport and recorded in Telemetry; the scan continues with the
// next element. Only root-level failures are returned from Start.
//
// # Component state
//
// Every attached element with an id gets a store.ComponentState shared by
// every behaviour attached to that id. Elements without an id are skipped.
package behavior
