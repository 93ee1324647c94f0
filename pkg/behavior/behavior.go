package behavior

import (
	"context"
	"log/slog"

	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/store"
	"github.com/canonui/canon/pkg/vdom"
)

// Kind identifies the family a behaviour belongs to.
type Kind uint8

const (
	KindCustom Kind = iota
	KindModal
	KindDropdown
	KindPopover
	KindCollapsible
	KindSlider
	KindResizable
	KindSelectable
	KindChartSync
	KindTableSync
	KindVirtualList
)

var kindNames = [...]string{
	KindCustom:      "custom",
	KindModal:       "modal",
	KindDropdown:    "dropdown",
	KindPopover:     "popover",
	KindCollapsible: "collapsible",
	KindSlider:      "slider",
	KindResizable:   "resizable",
	KindSelectable:  "selectable",
	KindChartSync:   "chart-sync",
	KindTableSync:   "table-sync",
	KindVirtualList: "virtual-list",
}

// String returns the kind's name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Behavior is attached once to every element carrying its attribute.
type Behavior interface {
	// Kind returns the behaviour family, used for logging and metrics.
	Kind() Kind

	// Attribute returns the marker attribute, e.g. "data-modal".
	Attribute() string

	// Attach wires the behaviour to one element.
	Attach(ctx AttachContext) error
}

// AttachContext is passed to Behavior.Attach.
type AttachContext struct {
	// Context is the context of the scan that discovered the element.
	Context context.Context

	ElementID string
	Attribute string
	Kind      Kind

	// State is the component state for ElementID.
	State *store.ComponentState

	Element  *vdom.VNode
	Document *vdom.Document

	// Bus dispatches cross-widget events on the document.
	Bus *bus.Bus

	// Logger is pre-populated with element_id and attribute.
	Logger *slog.Logger
}

// AttachFunc is the function form of Behavior.Attach.
type AttachFunc func(ctx AttachContext) error

type funcBehavior struct {
	kind Kind
	attr string
	fn   AttachFunc
}

func (b *funcBehavior) Kind() Kind                     { return b.kind }
func (b *funcBehavior) Attribute() string              { return b.attr }
func (b *funcBehavior) Attach(ctx AttachContext) error { return b.fn(ctx) }

// Func adapts fn to a KindCustom behaviour on attr.
func Func(attr string, fn AttachFunc) Behavior {
	return New(KindCustom, attr, fn)
}

// New creates a behaviour of kind on attr.
func New(kind Kind, attr string, fn AttachFunc) Behavior {
	return &funcBehavior{kind: kind, attr: attr, fn: fn}
}
