// Package reactive provides the small reactive cell the behaviour runtime
// hands to widgets.
//
// It is deliberately not a general reactive library: there is no dependency
// tracking, no memos and no effects. A Signal holds one value, notifies
// explicit subscribers when the value changes and can be batched.
//
//	open := reactive.NewBoolSignal(false)
//	sub := open.Subscribe(func(v bool) { fmt.Println("open:", v) })
//	open.Toggle()   // prints "open: true"
//	sub.Dispose()
//
// # Batching
//
// Updates made inside Batch are collected and subscribers run once, after the
// outermost batch returns:
//
//	reactive.Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})
//
// # Thread Safety
//
// Values are guarded by a RWMutex so a Signal can be read from any goroutine,
// but the runtime itself assumes a single UI goroutine and batching state is
// process-wide.
package reactive
