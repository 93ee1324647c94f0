package vdom

import (
	"sync"

	"github.com/canonui/canon/pkg/reactive"
)

// maxFlushRounds bounds Flush when observer callbacks keep producing
// mutations their own observers are interested in.
const maxFlushRounds = 64

// Document owns a tree rooted at an <html> element and the mutation
// observers watching it.
type Document struct {
	html *VNode

	mu        sync.Mutex
	observers []*MutationObserver
	listeners listenerSet
}

// NewDocument creates a document whose <body> contains the given children
// (any argument accepted by the element factories).
func NewDocument(body ...any) *Document {
	return NewDocumentFromRoot(Html(Head(), Body(body...)))
}

// NewDocumentFromRoot creates a document around an existing root element.
// The root is usually an <html> element; documents without a <body> are
// allowed so hosts can model a missing root container.
func NewDocumentFromRoot(root *VNode) *Document {
	d := &Document{html: root}
	if root != nil {
		root.parent = nil
		root.adopt(d)
	}
	return d
}

// DocumentElement returns the root element.
func (d *Document) DocumentElement() *VNode {
	if d == nil {
		return nil
	}
	return d.html
}

// Body returns the first <body> child of the root, or nil.
func (d *Document) Body() *VNode {
	if d == nil || d.html == nil {
		return nil
	}
	for _, c := range d.html.Children {
		if c.Kind == KindElement && c.Tag == "body" {
			return c
		}
	}
	return nil
}

// GetElementByID returns the first element in document order with the
// given id, or nil.
func (d *Document) GetElementByID(id string) *VNode {
	if d == nil || id == "" {
		return nil
	}
	var found *VNode
	d.html.Walk(func(n *VNode) bool {
		if found != nil {
			return false
		}
		if n.Kind == KindElement && n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// QuerySelector returns the first element matching selector, or nil.
func (d *Document) QuerySelector(selector string) (*VNode, error) {
	return d.html.QuerySelector(selector)
}

// QuerySelectorAll returns every element matching selector in document order.
func (d *Document) QuerySelectorAll(selector string) ([]*VNode, error) {
	return d.html.QuerySelectorAll(selector)
}

// AddEventListener registers a document-level listener.
func (d *Document) AddEventListener(typ string, fn EventListener) *reactive.Subscription {
	return d.listeners.add(typ, fn)
}

// ListenerCount returns the number of document-level listeners for typ.
func (d *Document) ListenerCount(typ string) int {
	return d.listeners.count(typ)
}

// DispatchEvent runs document-level listeners for e.
func (d *Document) DispatchEvent(e *Event) bool {
	e.CurrentTarget = nil
	for _, l := range d.listeners.snapshot(e.Type) {
		l.fn(e)
		if e.stopped {
			break
		}
	}
	return !e.defaultPrevented
}

// record queues m on every observer interested in it.
func (d *Document) record(m Mutation) {
	d.mu.Lock()
	observers := make([]*MutationObserver, len(d.observers))
	copy(observers, d.observers)
	d.mu.Unlock()

	for _, o := range observers {
		if o.wants(m) {
			o.enqueue(m)
		}
	}
}

func (d *Document) addObserver(o *MutationObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.observers {
		if existing == o {
			return
		}
	}
	d.observers = append(d.observers, o)
}

func (d *Document) removeObserver(o *MutationObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the number of connected observers.
func (d *Document) Observers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.observers)
}

// Pending returns the number of queued, undelivered mutation records.
func (d *Document) Pending() int {
	d.mu.Lock()
	observers := make([]*MutationObserver, len(d.observers))
	copy(observers, d.observers)
	d.mu.Unlock()

	n := 0
	for _, o := range observers {
		n += o.pending()
	}
	return n
}

// Flush delivers queued records, one batch per observer, until no observer
// has pending records. Each callback runs to completion before the next
// starts. It returns the number of batches delivered.
func (d *Document) Flush() int {
	delivered := 0
	for round := 0; round < maxFlushRounds; round++ {
		d.mu.Lock()
		observers := make([]*MutationObserver, len(d.observers))
		copy(observers, d.observers)
		d.mu.Unlock()

		progressed := false
		for _, o := range observers {
			records := o.TakeRecords()
			if len(records) == 0 {
				continue
			}
			progressed = true
			delivered++
			o.callback(records, o)
		}
		if !progressed {
			break
		}
	}
	return delivered
}
