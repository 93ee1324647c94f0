// Package standard provides the stock widget behaviours: overlays (modal,
// dropdown, popover), collapsible sections, sliders, resizable columns,
// selectable lists, chart/table hover sync and virtual lists.
//
// Register installs all of them on a registry:
//
//	reg := behavior.NewRegistry(nil)
//	group := standard.Register(reg)
//	defer group.Dispose()
//
// Each behaviour reads its configuration from data-* attributes on the
// element it is attached to and writes its visible state back as data-state,
// aria-* and style attributes. Markup helpers such as ModalTrigger build
// those attributes for server-side rendering.
package standard
