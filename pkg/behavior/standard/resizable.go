package standard

import (
	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/vdom"
)

// Resizable attributes.
const (
	AttrResizable        = "data-resizable"
	AttrResizableHandle  = "data-resizable-handle"
	AttrResizablePanel   = "data-resizable-panel-content"
	DirectionHorizontal  = "horizontal"
	DirectionVertical    = "vertical"
	defaultResizableMin  = 20
	defaultResizableMax  = 80
	defaultResizableSize = 50
)

// Resizable splits a [data-resizable] container between its first two
// data-resizable-panel-content children. Dragging the data-resizable-handle
// moves the split; the first panel's size is a percentage clamped to
// [data-min-size, data-max-size] (default 20 and 80).
//
// data-direction is "horizontal" (default) or "vertical". Pointer events
// carry "x" and "width", or "y" and "height", measured against the
// container. The size is published as canon:resize:start, canon:resize:move
// and canon:resize:end with {column: id, width: percent}.
func Resizable() behavior.Behavior {
	return behavior.New(behavior.KindResizable, AttrResizable, attachResizable)
}

type resizable struct {
	axis, extent string
	min, max     float64
}

func (r resizable) fromPointer(d bus.Detail) (float64, bool) {
	total := d.Float(r.extent)
	if total <= 0 {
		return 0, false
	}
	return clamp(d.Float(r.axis)/total*100, r.min, r.max), true
}

func attachResizable(ctx behavior.AttachContext) error {
	el, id := ctx.Element, ctx.ElementID
	dir := attrString(el, "data-direction", DirectionHorizontal)
	r := resizable{
		min: attrFloat(el, "data-min-size", defaultResizableMin),
		max: attrFloat(el, "data-max-size", defaultResizableMax),
	}
	switch dir {
	case DirectionHorizontal:
		r.axis, r.extent = "x", "width"
	case DirectionVertical:
		r.axis, r.extent = "y", "height"
	default:
		return canonerrors.InvalidConfig("resizable #%s: unknown data-direction %q", id, dir)
	}
	if r.min < 0 || r.max > 100 || r.min > r.max {
		return canonerrors.InvalidConfig("resizable #%s: sizes must satisfy 0 <= data-min-size <= data-max-size <= 100", id)
	}

	handle := first(el, AttrResizableHandle)
	if handle == nil {
		return canonerrors.InvalidConfig("resizable #%s: missing %s", id, AttrResizableHandle)
	}
	orientation := DirectionVertical
	if dir == DirectionVertical {
		orientation = DirectionHorizontal
	}
	handle.SetAttr("role", "separator")
	handle.SetAttr("aria-orientation", orientation)
	handle.SetAttr("aria-valuemin", formatFloat(r.min))
	handle.SetAttr("aria-valuemax", formatFloat(r.max))

	panels := within(el, AttrResizablePanel)
	render := func(p float64) {
		handle.SetAttr("aria-valuenow", formatFloat(p))
		el.SetAttr("data-size", formatFloat(p))
		if len(panels) > 0 {
			panels[0].SetAttr("style", "flex-basis: "+percent(p)+";")
		}
		if len(panels) > 1 {
			panels[1].SetAttr("style", "flex-basis: "+percent(100-p)+";")
		}
	}

	lt := bind(ctx)
	value := ctx.State.Value
	follow(lt, value, func(v any) {
		if p, ok := v.(float64); ok {
			render(p)
		}
	})
	size := clamp(attrFloat(el, "data-size", defaultResizableSize), r.min, r.max)
	render(size)
	value.Set(size)

	current := func() float64 {
		if p, ok := value.Get().(float64); ok {
			return p
		}
		return size
	}
	emit := func(name string) {
		ctx.Bus.Emit(name, "column", id, "width", current())
	}

	dragging := false
	handle.AddEventListener("pointerdown", func(e *vdom.Event) {
		dragging = true
		el.SetAttr("data-resizing", "true")
		emit(bus.ResizeStart)
		e.PreventDefault()
	})
	lt.onDocument("pointermove", func(e *vdom.Event) {
		if !dragging {
			return
		}
		if p, ok := r.fromPointer(detail(e)); ok {
			value.Set(p)
			emit(bus.ResizeMove)
		}
	})
	lt.onDocument("pointerup", func(*vdom.Event) {
		if !dragging {
			return
		}
		dragging = false
		el.RemoveAttr("data-resizing")
		emit(bus.ResizeEnd)
	})
	return nil
}
