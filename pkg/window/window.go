package window

import (
	"fmt"
	"math"

	canonerrors "github.com/canonui/canon/internal/errors"
)

// Default geometry used by the standard virtual list.
const (
	DefaultItemHeight     = 36
	DefaultViewportHeight = 600
	DefaultOverscan       = 5
)

// Range is a half-open index range [Start, End) into the item sequence.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of items in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether index i lies in r.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// VisibleRange returns the items to render when the viewport is scrolled to
// scrollTop, including overscan items on both sides. NaN or negative
// scrollTop is treated as 0.
func VisibleRange(scrollTop float64, total int, itemHeight, viewportHeight float64, overscan int) Range {
	if total <= 0 {
		return Range{}
	}
	if math.IsNaN(scrollTop) || scrollTop < 0 {
		scrollTop = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	rawStart := clampInt(math.Floor(scrollTop / itemHeight))
	start := rawStart - overscan
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}

	visible := clampInt(math.Ceil(viewportHeight / itemHeight))
	end := start + visible + 2*overscan
	if end > total || end < start {
		end = total
	}
	return Range{Start: start, End: end}
}

// clampInt converts f to int, saturating instead of overflowing.
func clampInt(f float64) int {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= float64(math.MaxInt32):
		return math.MaxInt32
	}
	return int(f)
}

// TotalExtent is the height of the full sequence.
func TotalExtent(total int, itemHeight float64) float64 {
	return float64(total) * itemHeight
}

// Offset is the translation that places the rendered slice at its true
// position.
func Offset(r Range, itemHeight float64) float64 {
	return float64(r.Start) * itemHeight
}

// Slice returns the part of items covered by r, clamped to len(items).
func Slice[T any](items []T, r Range) []T {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return nil
	}
	return items[start:end]
}

// Config is the geometry of a virtualized container.
type Config struct {
	ItemHeight     float64 `json:"item_height" yaml:"item_height"`
	ViewportHeight float64 `json:"viewport_height" yaml:"viewport_height"`
	Overscan       int     `json:"overscan" yaml:"overscan"`
}

// DefaultConfig returns the standard virtual list geometry.
func DefaultConfig() Config {
	return Config{
		ItemHeight:     DefaultItemHeight,
		ViewportHeight: DefaultViewportHeight,
		Overscan:       DefaultOverscan,
	}
}

// Validate reports geometry the pure functions cannot handle.
func (c Config) Validate() error {
	switch {
	case !(c.ItemHeight > 0) || math.IsInf(c.ItemHeight, 0):
		return invalidGeometry("item height must be positive and finite, got %v", c.ItemHeight)
	case !(c.ViewportHeight > 0) || math.IsInf(c.ViewportHeight, 0):
		return invalidGeometry("viewport height must be positive and finite, got %v", c.ViewportHeight)
	case c.Overscan < 0:
		return invalidGeometry("overscan must not be negative, got %d", c.Overscan)
	}
	return nil
}

// Range is VisibleRange with c's geometry.
func (c Config) Range(scrollTop float64, total int) Range {
	return VisibleRange(scrollTop, total, c.ItemHeight, c.ViewportHeight, c.Overscan)
}

func invalidGeometry(format string, args ...any) error {
	return canonerrors.New(canonerrors.CodeInvalidGeometry).Wrap(fmt.Errorf(format, args...))
}
