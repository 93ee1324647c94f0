package window

import (
	"strconv"

	"github.com/canonui/canon/pkg/reactive"
)

// ScrollState is the scroll position of a container.
type ScrollState struct {
	ScrollTop float64
}

// Viewport tracks the scroll position and item count of one virtualized
// container and keeps its visible range current. It recomputes on every
// scroll call; subscribers run only when the range actually changes.
type Viewport struct {
	cfg    Config
	scroll *reactive.Signal[ScrollState]
	total  *reactive.Signal[int]
	rng    *reactive.Signal[Range]
}

// NewViewport creates a viewport over total items scrolled to the top.
// cfg is used as given; validate it first.
func NewViewport(cfg Config, total int) *Viewport {
	if total < 0 {
		total = 0
	}
	v := &Viewport{
		cfg:    cfg,
		scroll: reactive.NewSignal(ScrollState{}),
		total:  reactive.NewSignal(total),
	}
	v.rng = reactive.NewSignal(cfg.Range(0, total))
	return v
}

// OnScroll records a scroll event and recomputes the range.
func (v *Viewport) OnScroll(scrollTop float64) Range {
	v.scroll.Set(ScrollState{ScrollTop: scrollTop})
	return v.recompute()
}

// SetTotal changes the item count and recomputes the range.
func (v *Viewport) SetTotal(total int) Range {
	if total < 0 {
		total = 0
	}
	v.total.Set(total)
	return v.recompute()
}

func (v *Viewport) recompute() Range {
	r := v.cfg.Range(v.scroll.Get().ScrollTop, v.total.Get())
	v.rng.Set(r)
	return r
}

// Config returns the viewport geometry.
func (v *Viewport) Config() Config { return v.cfg }

// ScrollTop returns the last recorded scroll position.
func (v *Viewport) ScrollTop() float64 { return v.scroll.Get().ScrollTop }

// Total returns the item count.
func (v *Viewport) Total() int { return v.total.Get() }

// Range returns the current visible range.
func (v *Viewport) Range() Range { return v.rng.Get() }

// TotalExtent returns the height of the full sequence.
func (v *Viewport) TotalExtent() float64 {
	return TotalExtent(v.total.Get(), v.cfg.ItemHeight)
}

// Offset returns the translation of the rendered slice.
func (v *Viewport) Offset() float64 {
	return Offset(v.rng.Get(), v.cfg.ItemHeight)
}

// Style returns the inline style that positions the rendered slice.
func (v *Viewport) Style() string {
	return "transform: translateY(" + px(v.Offset()) + ");"
}

// ContainerStyle returns the inline style that sizes the scroll container.
func (v *Viewport) ContainerStyle() string {
	return "height: " + px(v.TotalExtent()) + ";"
}

// Subscribe runs fn whenever the visible range changes.
func (v *Viewport) Subscribe(fn func(Range)) *reactive.Subscription {
	return v.rng.Subscribe(fn)
}

// Visible returns the items of the current range.
func Visible[T any](v *Viewport, items []T) []T {
	return Slice(items, v.Range())
}

func px(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "px"
}
