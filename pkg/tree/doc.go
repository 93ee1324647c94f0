// Package tree flattens collapsible hierarchies into the linear sequence
// the window package virtualizes.
//
// Flatten emits nodes in pre-order and descends only into expanded nodes;
// collapsed subtrees contribute nothing to the sequence. It is a pure
// function: callers re-flatten after every change to the hierarchy or to an
// expand flag. VirtualTree does that bookkeeping for a tree rendered
// through a window.Viewport.
package tree
