package tree

import (
	"github.com/canonui/canon/pkg/reactive"
	"github.com/canonui/canon/pkg/window"
)

// VirtualTree renders a hierarchy through a window.Viewport. Every change
// to the roots or to an expand flag made through VirtualTree re-flattens
// the whole hierarchy.
type VirtualTree struct {
	roots    []*Node
	flat     *reactive.Signal[[]FlatNode]
	selected *reactive.Signal[string]
	viewport *window.Viewport
}

// NewVirtualTree creates a virtual tree over roots with cfg's geometry.
func NewVirtualTree(roots []*Node, cfg window.Config) *VirtualTree {
	flat := Flatten(roots)
	return &VirtualTree{
		roots: roots,
		flat: reactive.NewSignal(flat).WithEquals(func(a, b []FlatNode) bool {
			return false
		}),
		selected: reactive.NewSignal(""),
		viewport: window.NewViewport(cfg, len(flat)),
	}
}

// Roots returns the current hierarchy.
func (t *VirtualTree) Roots() []*Node {
	return t.roots
}

// SetRoots replaces the hierarchy.
func (t *VirtualTree) SetRoots(roots []*Node) {
	t.roots = roots
	t.refresh()
}

// Refresh re-flattens after the hierarchy was changed in place.
func (t *VirtualTree) Refresh() {
	t.refresh()
}

func (t *VirtualTree) refresh() {
	flat := Flatten(t.roots)
	t.flat.Set(flat)
	t.viewport.SetTotal(len(flat))
}

// Toggle flips the node with id and re-flattens. It reports whether the
// node was found.
func (t *VirtualTree) Toggle(id string) bool {
	if !Toggle(t.roots, id) {
		return false
	}
	t.refresh()
	return true
}

// ExpandAll expands every node and re-flattens.
func (t *VirtualTree) ExpandAll() {
	ExpandAll(t.roots)
	t.refresh()
}

// CollapseAll collapses every node and re-flattens.
func (t *VirtualTree) CollapseAll() {
	CollapseAll(t.roots)
	t.refresh()
}

// Select marks id as selected, expanding its ancestors so it is visible.
// It reports whether the node was found.
func (t *VirtualTree) Select(id string) bool {
	if !Reveal(t.roots, id) {
		return false
	}
	t.selected.Set(id)
	t.refresh()
	return true
}

// Selected returns the selected id, or "".
func (t *VirtualTree) Selected() string {
	return t.selected.Get()
}

// Index returns the row index of id in the flattened sequence, or -1.
func (t *VirtualTree) Index(id string) int {
	for i, f := range t.flat.Get() {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Flat returns the full flattened sequence.
func (t *VirtualTree) Flat() []FlatNode {
	return t.flat.Get()
}

// Len returns the number of rows.
func (t *VirtualTree) Len() int {
	return len(t.flat.Get())
}

// OnScroll forwards a scroll event to the viewport.
func (t *VirtualTree) OnScroll(scrollTop float64) window.Range {
	return t.viewport.OnScroll(scrollTop)
}

// Visible returns the rows in the current visible range.
func (t *VirtualTree) Visible() []FlatNode {
	return window.Slice(t.flat.Get(), t.viewport.Range())
}

// Viewport returns the underlying viewport.
func (t *VirtualTree) Viewport() *window.Viewport {
	return t.viewport
}

// Subscribe runs fn with the new sequence after every re-flatten.
func (t *VirtualTree) Subscribe(fn func([]FlatNode)) *reactive.Subscription {
	return t.flat.Subscribe(fn)
}
