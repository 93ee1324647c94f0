package standard

import (
	"math"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/vdom"
)

// Slider attributes.
const (
	AttrSlider      = "data-slider"
	AttrSliderRange = "data-slider-range"
	AttrSliderThumb = "data-slider-thumb"
)

// SliderConfig is the markup of a slider.
type SliderConfig struct {
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// SliderAttrs renders cfg as the attributes Slider reads.
func SliderAttrs(cfg SliderConfig) []vdom.Attr {
	attrs := []vdom.Attr{
		vdom.Marker("slider"),
		vdom.Role("slider"),
		vdom.AriaValueMin(cfg.Min),
		vdom.AriaValueMax(cfg.Max),
		vdom.AriaValueNow(cfg.Value),
	}
	if cfg.Step > 0 {
		attrs = append(attrs, vdom.Data("step", formatFloat(cfg.Step)))
	}
	return attrs
}

// Slider drives [data-slider] elements. Bounds come from aria-valuemin
// (default 0) and aria-valuemax (default 100), the start value from
// aria-valuenow and the step from data-step (default 1).
//
// Pointer events carry "x" and "width" in their detail, measured against
// the track. Arrow keys move one step, Home and End jump to the bounds.
// The current value is kept in the component state's Value as a float64.
func Slider() behavior.Behavior {
	return behavior.New(behavior.KindSlider, AttrSlider, attachSlider)
}

type slider struct {
	min, max, step float64
}

func (s slider) snap(v float64) float64 {
	v = clamp(v, s.min, s.max)
	if s.step > 0 {
		v = s.min + math.Round((v-s.min)/s.step)*s.step
	}
	return clamp(v, s.min, s.max)
}

func (s slider) percent(v float64) float64 {
	return (v - s.min) / (s.max - s.min) * 100
}

func (s slider) fromPointer(d map[string]any) (float64, bool) {
	dt := bus.Detail(d)
	width := dt.Float("width")
	if width <= 0 {
		return 0, false
	}
	ratio := clamp(dt.Float("x")/width, 0, 1)
	return s.min + ratio*(s.max-s.min), true
}

func attachSlider(ctx behavior.AttachContext) error {
	el := ctx.Element
	s := slider{
		min:  attrFloat(el, "aria-valuemin", 0),
		max:  attrFloat(el, "aria-valuemax", 100),
		step: attrFloat(el, "data-step", 1),
	}
	if !(s.max > s.min) {
		return canonerrors.InvalidConfig("slider #%s: aria-valuemax %s must exceed aria-valuemin %s",
			ctx.ElementID, formatFloat(s.max), formatFloat(s.min))
	}
	if s.step < 0 {
		return canonerrors.InvalidConfig("slider #%s: data-step must not be negative", ctx.ElementID)
	}

	rng := first(el, AttrSliderRange)
	thumb := first(el, AttrSliderThumb)
	render := func(v float64) {
		now := formatFloat(v)
		p := percent(s.percent(v))
		el.SetAttr("aria-valuenow", now)
		el.SetAttr("data-value", now)
		if rng != nil {
			rng.SetAttr("style", "width: "+p+";")
		}
		if thumb != nil {
			thumb.SetAttr("style", "left: "+p+";")
			thumb.SetAttr("aria-valuenow", now)
		}
	}

	lt := bind(ctx)
	value := ctx.State.Value
	follow(lt, value, func(v any) {
		if f, ok := v.(float64); ok {
			render(f)
		}
	})
	set := func(v float64) { value.Set(s.snap(v)) }
	current := func() float64 {
		if f, ok := value.Get().(float64); ok {
			return f
		}
		return s.min
	}

	start := s.snap(attrFloat(el, "aria-valuenow", s.min))
	render(start)
	value.Set(start)

	dragging := false
	el.AddEventListener("pointerdown", func(e *vdom.Event) {
		if v, ok := s.fromPointer(e.Detail); ok {
			dragging = true
			set(v)
		}
	})
	lt.onDocument("pointermove", func(e *vdom.Event) {
		if !dragging {
			return
		}
		if v, ok := s.fromPointer(e.Detail); ok {
			set(v)
		}
	})
	lt.onDocument("pointerup", func(*vdom.Event) { dragging = false })

	el.AddEventListener("keydown", func(e *vdom.Event) {
		step := s.step
		if step == 0 {
			step = (s.max - s.min) / 100
		}
		switch detail(e).String("key") {
		case "ArrowRight", "ArrowUp":
			set(current() + step)
		case "ArrowLeft", "ArrowDown":
			set(current() - step)
		case "Home":
			set(s.min)
		case "End":
			set(s.max)
		default:
			return
		}
		e.PreventDefault()
	})
	return nil
}
