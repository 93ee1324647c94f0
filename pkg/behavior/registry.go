package behavior

import (
	"log/slog"
	"sync"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/reactive"
	"github.com/canonui/canon/pkg/store"
	"github.com/canonui/canon/pkg/vdom"
)

// DefaultMarkerPrefix prefixes the attach-once marker attribute.
const DefaultMarkerPrefix = "data-canon-attached-"

// Subscription undoes a registration when disposed.
type Subscription = reactive.Subscription

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for attach failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMarkerPrefix changes the attach-once marker prefix.
func WithMarkerPrefix(prefix string) Option {
	return func(r *Registry) {
		if prefix != "" {
			r.markerPrefix = prefix
		}
	}
}

type entry struct {
	id       uint64
	behavior Behavior
	selector vdom.Selector
	marker   string
}

// Registry holds registered behaviours in registration order together with
// the component state store.
type Registry struct {
	mu      sync.RWMutex
	entries []*entry
	nextID  uint64

	store        *store.Store
	logger       *slog.Logger
	markerPrefix string
}

// NewRegistry creates a registry backed by st. A nil store gets a fresh one.
func NewRegistry(st *store.Store, opts ...Option) *Registry {
	if st == nil {
		st = store.New()
	}
	r := &Registry{
		store:        st,
		logger:       slog.Default(),
		markerPrefix: DefaultMarkerPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends b. Registering several behaviours for one attribute
// keeps all of them; each newly discovered element runs them in
// registration order. A behaviour registered after an element was marked
// does not attach to that element. Disposing the returned Subscription
// removes b; elements it already attached keep their marker.
//
// Register panics if b is nil or its attribute is not a single bare
// attribute name such as data-modal.
func (r *Registry) Register(b Behavior) *Subscription {
	if b == nil {
		panic("behavior: Register called with nil Behavior")
	}
	attr := b.Attribute()
	if !vdom.ValidAttrName(attr) {
		panic(canonerrors.InvalidSelector(attr, vdom.ErrInvalidSelector))
	}
	sel, err := vdom.ParseSelector(vdom.AttrSelector(attr))
	if err != nil {
		panic(canonerrors.InvalidSelector(attr, err))
	}

	r.mu.Lock()
	r.nextID++
	e := &entry{
		id:       r.nextID,
		behavior: b,
		selector: sel,
		marker:   r.markerFor(attr),
	}
	r.entries = append(r.entries, e)
	r.mu.Unlock()

	return reactive.NewSubscription(func() { r.unregister(e.id) })
}

// RegisterFunc registers fn as a KindCustom behaviour on attr.
func (r *Registry) RegisterFunc(attr string, fn AttachFunc) *Subscription {
	return r.Register(Func(attr, fn))
}

func (r *Registry) unregister(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// markerFor derives the attach-once marker for attr. The full attribute
// name is kept so distinct attributes never share a marker.
func (r *Registry) markerFor(attr string) string {
	return r.markerPrefix + attr
}

// Marker returns the attach-once marker attribute for attr.
func (r *Registry) Marker(attr string) string {
	return r.markerFor(attr)
}

// GetOrCreate returns the component state for id, creating it on first use.
func (r *Registry) GetOrCreate(id string) *store.ComponentState {
	return r.store.GetOrCreate(id)
}

// Get returns the component state for id without creating it.
func (r *Registry) Get(id string) (*store.ComponentState, bool) {
	return r.store.Get(id)
}

// Store returns the backing component state store.
func (r *Registry) Store() *store.Store {
	return r.store
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// Behaviors returns the registered behaviours in registration order.
func (r *Registry) Behaviors() []Behavior {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Behavior, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.behavior
	}
	return out
}

// Attributes returns each registered attribute once, in order of first
// registration.
func (r *Registry) Attributes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.entries))
	var out []string
	for _, e := range r.entries {
		attr := e.behavior.Attribute()
		if !seen[attr] {
			seen[attr] = true
			out = append(out, attr)
		}
	}
	return out
}

// Len returns the number of registered behaviours.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) snapshot() []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entry, len(r.entries))
	copy(out, r.entries)
	return out
}
