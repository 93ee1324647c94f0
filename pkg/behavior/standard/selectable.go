package standard

import (
	"slices"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/vdom"
)

// List attributes.
const (
	AttrList     = "data-list"
	AttrListItem = "data-list-item"

	SelectionSingle   = "single"
	SelectionMultiple = "multiple"
)

// Selectable makes the data-list-item descendants of a [data-list] element
// selectable by click, Enter or Space. Items marked data-disabled are
// skipped. data-selection-mode is "single" (default) or "multiple".
//
// An item is identified by its data-value, falling back to its id. The
// selected keys are kept in the component state's Value as a []string and
// every change is published as canon:selection:changed with
// {list, item, selected, count}.
func Selectable() behavior.Behavior {
	return behavior.New(behavior.KindSelectable, AttrList, attachSelectable)
}

// Selection returns the selected item keys recorded in a list's state value.
func Selection(v any) []string {
	keys, _ := v.([]string)
	return keys
}

func itemKey(n *vdom.VNode) string {
	if v, ok := n.Attr("data-value"); ok && v != "" {
		return v
	}
	return n.ID()
}

func attachSelectable(ctx behavior.AttachContext) error {
	el, id := ctx.Element, ctx.ElementID
	mode := attrString(el, "data-selection-mode", SelectionSingle)
	if mode != SelectionSingle && mode != SelectionMultiple {
		return canonerrors.InvalidConfig("list #%s: unknown data-selection-mode %q", id, mode)
	}
	el.SetAttr("role", "listbox")
	if mode == SelectionMultiple {
		el.SetAttr("aria-multiselectable", "true")
	}

	items := func() []*vdom.VNode { return within(el, AttrListItem) }
	render := func(selected []string) {
		for _, item := range items() {
			on := slices.Contains(selected, itemKey(item))
			setBool(item, "aria-selected", on)
			if on {
				item.SetAttr("data-selected", "true")
			} else {
				item.RemoveAttr("data-selected")
			}
		}
	}

	var initial []string
	for _, item := range items() {
		item.SetAttr("role", "option")
		if item.HasAttr("data-selected") {
			initial = append(initial, itemKey(item))
		}
	}
	if mode == SelectionSingle && len(initial) > 1 {
		initial = initial[:1]
	}

	value := ctx.State.Value
	follow(bind(ctx), value, func(v any) { render(Selection(v)) })
	render(initial)
	value.Set(initial)

	toggle := func(item *vdom.VNode) {
		if item.HasAttr("data-disabled") {
			return
		}
		key := itemKey(item)
		if key == "" {
			return
		}
		cur := Selection(value.Get())
		on := !slices.Contains(cur, key)
		var next []string
		switch {
		case mode == SelectionSingle && on:
			next = []string{key}
		case on:
			next = append(slices.Clone(cur), key)
		default:
			next = slices.DeleteFunc(slices.Clone(cur), func(k string) bool { return k == key })
		}
		value.Set(next)
		ctx.Bus.Emit(bus.SelectionChanged, "list", id, "item", key, "selected", on, "count", len(next))
	}

	itemOf := func(e *vdom.Event) *vdom.VNode {
		item := closestAttr(e.Target, AttrListItem)
		if item == nil || !el.Contains(item) {
			return nil
		}
		return item
	}
	el.AddEventListener("click", func(e *vdom.Event) {
		if item := itemOf(e); item != nil {
			toggle(item)
		}
	})
	el.AddEventListener("keydown", func(e *vdom.Event) {
		switch detail(e).String("key") {
		case "Enter", " ":
			if item := itemOf(e); item != nil {
				toggle(item)
				e.PreventDefault()
			}
		}
	})
	return nil
}
