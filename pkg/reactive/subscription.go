package reactive

import "sync"

// Subscription is a handle returned by anything that installs a listener.
// Dispose detaches the listener; it is safe to call more than once and safe
// to never call, in which case the listener lives as long as its source.
type Subscription struct {
	once    sync.Once
	dispose func()
}

// NewSubscription wraps a teardown function in a Subscription.
func NewSubscription(dispose func()) *Subscription {
	return &Subscription{dispose: dispose}
}

// Dispose runs the teardown function once.
func (s *Subscription) Dispose() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.dispose != nil {
			s.dispose()
		}
	})
}

// Group collects subscriptions so they can be disposed together.
type Group struct {
	mu   sync.Mutex
	subs []*Subscription
}

// Add appends subscriptions to the group. Nil entries are ignored.
func (g *Group) Add(subs ...*Subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range subs {
		if s != nil {
			g.subs = append(g.subs, s)
		}
	}
}

// Len returns the number of subscriptions held.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

// Dispose disposes every subscription in reverse order and empties the group.
func (g *Group) Dispose() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Dispose()
	}
}
