package vdom

import (
	"errors"
	"sync"
)

var (
	// ErrObserveTarget is returned when observing a nil or detached node.
	ErrObserveTarget = errors.New("vdom: observe target must be a connected node")

	// ErrObserveOptions is returned when neither child-list nor attribute
	// changes were requested.
	ErrObserveOptions = errors.New("vdom: observe options must request childList or attributes")

	// ErrNilCallback is returned by NewMutationObserver for a nil callback.
	ErrNilCallback = errors.New("vdom: mutation observer callback is nil")
)

// MutationCallback receives one batch of records.
type MutationCallback func(records []Mutation, observer *MutationObserver)

// ObserveOptions selects which mutations an observer receives.
type ObserveOptions struct {
	ChildList       bool
	Attributes      bool
	Subtree         bool
	AttributeFilter []string
}

// MutationObserver queues mutations of an observed node (and optionally its
// subtree) and hands them to its callback on Document.Flush.
type MutationObserver struct {
	callback MutationCallback

	mu      sync.Mutex
	target  *VNode
	doc     *Document
	opts    ObserveOptions
	records []Mutation
}

// NewMutationObserver creates an observer. It fails only for a nil callback.
func NewMutationObserver(cb MutationCallback) (*MutationObserver, error) {
	if cb == nil {
		return nil, ErrNilCallback
	}
	return &MutationObserver{callback: cb}, nil
}

// Observe starts observing target. Observing again replaces the previous
// target and options.
func (o *MutationObserver) Observe(target *VNode, opts ObserveOptions) error {
	if target == nil || target.doc == nil {
		return ErrObserveTarget
	}
	if !opts.ChildList && !opts.Attributes {
		return ErrObserveOptions
	}

	o.mu.Lock()
	prev := o.doc
	o.target = target
	o.doc = target.doc
	o.opts = opts
	o.mu.Unlock()

	if prev != nil && prev != target.doc {
		prev.removeObserver(o)
	}
	target.doc.addObserver(o)
	return nil
}

// Disconnect stops observation and drops queued records.
func (o *MutationObserver) Disconnect() {
	o.mu.Lock()
	doc := o.doc
	o.doc = nil
	o.target = nil
	o.records = nil
	o.mu.Unlock()

	if doc != nil {
		doc.removeObserver(o)
	}
}

// TakeRecords returns and clears the queued records.
func (o *MutationObserver) TakeRecords() []Mutation {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.records
	o.records = nil
	return out
}

func (o *MutationObserver) pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.records)
}

func (o *MutationObserver) enqueue(m Mutation) {
	o.mu.Lock()
	o.records = append(o.records, m)
	o.mu.Unlock()
}

// wants reports whether m falls within the observed node and options.
func (o *MutationObserver) wants(m Mutation) bool {
	o.mu.Lock()
	target, opts := o.target, o.opts
	o.mu.Unlock()

	if target == nil {
		return false
	}
	switch {
	case m.Op.IsChildList():
		if !opts.ChildList {
			return false
		}
	case m.Op.IsAttribute():
		if !opts.Attributes {
			return false
		}
		if len(opts.AttributeFilter) > 0 && !containsString(opts.AttributeFilter, m.Key) {
			return false
		}
	default:
		return false
	}

	if m.Target == target {
		return true
	}
	return opts.Subtree && target.Contains(m.Target)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
