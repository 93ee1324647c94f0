package store

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/canonui/canon/pkg/reactive"
)

// ComponentState is the reactive record shared between the store and every
// behaviour attached to one element.
type ComponentState struct {
	// ElementID is the id of the element this state belongs to.
	ElementID string

	// Open is the primary boolean cell (open/closed, selected, expanded).
	Open *reactive.BoolSignal

	// Value is a free-form cell for behaviours that track more than a flag
	// (slider position, column width, hovered index).
	Value *reactive.Signal[any]
}

// NewComponentState creates a default state: closed, nil value.
func NewComponentState(elementID string) *ComponentState {
	return &ComponentState{
		ElementID: elementID,
		Open:      reactive.NewBoolSignal(false),
		Value:     reactive.NewSignal[any](nil),
	}
}

// Store maps element ids to component states.
type Store struct {
	states sync.Map // map[string]*ComponentState
	count  atomic.Int64
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// GetOrCreate returns the state for elementID, creating and storing a
// default state the first time the id is seen.
func (s *Store) GetOrCreate(elementID string) *ComponentState {
	if val, ok := s.states.Load(elementID); ok {
		return val.(*ComponentState)
	}

	fresh := NewComponentState(elementID)
	actual, loaded := s.states.LoadOrStore(elementID, fresh)
	if loaded {
		return actual.(*ComponentState)
	}
	s.count.Add(1)
	return fresh
}

// Get returns the state for elementID without creating one.
func (s *Store) Get(elementID string) (*ComponentState, bool) {
	val, ok := s.states.Load(elementID)
	if !ok {
		return nil, false
	}
	return val.(*ComponentState), true
}

// Has reports whether a state exists for elementID.
func (s *Store) Has(elementID string) bool {
	_, ok := s.states.Load(elementID)
	return ok
}

// Len returns the number of states held.
func (s *Store) Len() int {
	return int(s.count.Load())
}

// IDs returns all known element ids, sorted.
func (s *Store) IDs() []string {
	ids := make([]string, 0, s.Len())
	s.states.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})
	sort.Strings(ids)
	return ids
}
