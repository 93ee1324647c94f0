// Package window computes which slice of a long, uniformly sized item
// sequence has to be rendered for a given scroll position.
//
// The pure functions VisibleRange, TotalExtent and Offset carry the whole
// algorithm. Viewport wraps them in reactive state for widgets that react
// to scroll events.
//
// Callers are expected to validate geometry (see Config.Validate) before
// calling the pure functions; non-positive item heights are not handled.
package window
