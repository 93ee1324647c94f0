package vdom

import (
	"fmt"
	"sync"
)

// IDGenerator generates element ids for markup that omits them.
type IDGenerator struct {
	prefix  string
	counter uint32
	mu      sync.Mutex
}

// NewIDGenerator creates a generator producing "<prefix>1", "<prefix>2", ...
// An empty prefix defaults to "canon-".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "canon-"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next id.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s%d", g.prefix, g.counter)
}

// Reset resets the counter to 0.
func (g *IDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Current returns the current counter value without incrementing.
func (g *IDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// EnsureIDs assigns generated ids to elements under node that carry any of
// the given attributes but have no id. Elements without an id are otherwise
// invisible to the behaviour scanner. It returns the number of ids assigned.
func EnsureIDs(node *VNode, gen *IDGenerator, attrs ...string) int {
	assigned := 0
	node.Walk(func(n *VNode) bool {
		if n.Kind != KindElement || n.ID() != "" {
			return true
		}
		for _, a := range attrs {
			if n.HasAttr(a) {
				n.SetAttr("id", gen.Next())
				assigned++
				break
			}
		}
		return true
	})
	return assigned
}
