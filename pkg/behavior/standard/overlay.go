package standard

import (
	"fmt"

	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/vdom"
)

// Overlay attributes.
const (
	AttrModal           = "data-modal"
	AttrModalTrigger    = "data-modal-trigger"
	AttrModalOverlay    = "data-modal-overlay"
	AttrDropdown        = "data-dropdown"
	AttrDropdownTrigger = "data-dropdown-trigger"
	AttrDropdownContent = "data-dropdown-content"
	AttrPopover         = "data-popover"
	AttrPopoverTrigger  = "data-popover-trigger"
	AttrPopoverContent  = "data-popover-content"
)

// overlay is the shared shape of modal, dropdown and popover: an element
// opened and closed by triggers elsewhere in the document that name it by id.
type overlay struct {
	kind    behavior.Kind
	attr    string
	trigger string
	content string

	// backdrop elements inside the overlay close it when clicked.
	backdrop string

	closeOutside  bool
	closeOnEscape bool
}

var (
	modalSpec = overlay{
		kind:          behavior.KindModal,
		attr:          AttrModal,
		trigger:       AttrModalTrigger,
		backdrop:      AttrModalOverlay,
		closeOnEscape: true,
	}
	dropdownSpec = overlay{
		kind:          behavior.KindDropdown,
		attr:          AttrDropdown,
		trigger:       AttrDropdownTrigger,
		content:       AttrDropdownContent,
		closeOutside:  true,
		closeOnEscape: true,
	}
	popoverSpec = overlay{
		kind:         behavior.KindPopover,
		attr:         AttrPopover,
		trigger:      AttrPopoverTrigger,
		content:      AttrPopoverContent,
		closeOutside: true,
	}
)

// Modal opens [data-modal] dialogs from any element whose
// data-modal-trigger names the dialog's id. Clicking a data-modal-overlay
// inside the dialog or pressing Escape closes it.
func Modal() behavior.Behavior {
	return behavior.New(modalSpec.kind, modalSpec.attr, modalSpec.attach)
}

// Dropdown toggles [data-dropdown] menus from their triggers and closes
// them on a click outside the menu or on Escape.
func Dropdown() behavior.Behavior {
	return behavior.New(dropdownSpec.kind, dropdownSpec.attr, dropdownSpec.attach)
}

// Popover toggles [data-popover] panels from their triggers and closes them
// on a click outside the panel.
func Popover() behavior.Behavior {
	return behavior.New(popoverSpec.kind, popoverSpec.attr, popoverSpec.attach)
}

// ModalTrigger marks an element as the trigger of modal id.
func ModalTrigger(id string) vdom.Attr { return vdom.AttrKV(AttrModalTrigger, id) }

// DropdownTrigger marks an element as the trigger of dropdown id.
func DropdownTrigger(id string) vdom.Attr { return vdom.AttrKV(AttrDropdownTrigger, id) }

// PopoverTrigger marks an element as the trigger of popover id.
func PopoverTrigger(id string) vdom.Attr { return vdom.AttrKV(AttrPopoverTrigger, id) }

func (o overlay) attach(ctx behavior.AttachContext) error {
	el, doc, id := ctx.Element, ctx.Document, ctx.ElementID
	if doc == nil {
		return fmt.Errorf("%s #%s is not connected to a document", o.attr, id)
	}
	open := ctx.State.Open
	lt := bind(ctx)
	if v, _ := el.Attr("data-state"); v == stateOpen {
		open.SetTrue()
	}

	render := func(isOpen bool) {
		state := stateName(isOpen)
		el.SetAttr("data-state", state)
		setBool(el, "aria-hidden", !isOpen)
		if o.content != "" {
			for _, c := range within(el, o.content) {
				c.SetAttr("data-state", state)
				if isOpen {
					c.RemoveAttr("hidden")
				} else {
					c.SetAttr("hidden", "")
				}
			}
		}
		for _, t := range withAttr(doc.DocumentElement(), o.trigger, id) {
			t.SetAttr("data-state", state)
			setBool(t, "aria-expanded", isOpen)
		}
	}
	render(open.Get())

	follow(lt, open.Signal, func(isOpen bool) {
		render(isOpen)
		name := bus.OverlayClose
		if isOpen {
			name = bus.OverlayOpen
		}
		ctx.Bus.Emit(name, "id", id, "kind", o.kind.String())
	})

	lt.onDocument("click", func(e *vdom.Event) {
		if e.Target == nil {
			return
		}
		if t := closestAttr(e.Target, o.trigger); t != nil {
			if v, _ := t.Attr(o.trigger); v == id {
				open.Toggle()
				return
			}
		}
		if !open.Get() {
			return
		}
		if o.backdrop != "" {
			if b := closestAttr(e.Target, o.backdrop); b != nil && el.Contains(b) {
				open.SetFalse()
				return
			}
		}
		if o.closeOutside && !el.Contains(e.Target) {
			open.SetFalse()
		}
	})

	if o.closeOnEscape {
		lt.onDocument("keydown", func(e *vdom.Event) {
			if detail(e).String("key") == "Escape" {
				open.SetFalse()
			}
		})
	}
	return nil
}
