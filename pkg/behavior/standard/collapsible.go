package standard

import (
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/vdom"
)

// Collapsible attributes.
const (
	AttrCollapsible        = "data-collapsible"
	AttrCollapsibleTrigger = "data-collapsible-trigger"
	AttrCollapsibleContent = "data-collapsible-content"
)

// Collapsible toggles a [data-collapsible] section when one of its
// data-collapsible-trigger descendants is clicked. The section and its
// data-collapsible-content get data-state; closed content is hidden.
func Collapsible() behavior.Behavior {
	return behavior.New(behavior.KindCollapsible, AttrCollapsible, attachCollapsible)
}

func attachCollapsible(ctx behavior.AttachContext) error {
	el := ctx.Element
	open := ctx.State.Open
	if v, _ := el.Attr("data-state"); v == stateOpen {
		open.SetTrue()
	}

	render := func(isOpen bool) {
		state := stateName(isOpen)
		el.SetAttr("data-state", state)
		for _, c := range ownParts(el, AttrCollapsibleContent) {
			c.SetAttr("data-state", state)
			if isOpen {
				c.RemoveAttr("hidden")
			} else {
				c.SetAttr("hidden", "")
			}
		}
		for _, t := range ownParts(el, AttrCollapsibleTrigger) {
			setBool(t, "aria-expanded", isOpen)
		}
	}
	render(open.Get())
	follow(bind(ctx), open.Signal, render)

	el.AddEventListener("click", func(e *vdom.Event) {
		t := closestAttr(e.Target, AttrCollapsibleTrigger)
		if t == nil || !el.Contains(t) {
			return
		}
		// Nested collapsibles handle their own triggers.
		if closestAttr(t, AttrCollapsible) != el {
			return
		}
		open.Toggle()
	})
	return nil
}

// ownParts returns the descendants of el carrying key that do not belong to
// a nested collapsible.
func ownParts(el *vdom.VNode, key string) []*vdom.VNode {
	var out []*vdom.VNode
	for _, n := range within(el, key) {
		if closestAttr(n.Parent(), AttrCollapsible) == el {
			out = append(out, n)
		}
	}
	return out
}
