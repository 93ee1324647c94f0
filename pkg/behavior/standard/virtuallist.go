package standard

import (
	"strconv"

	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/vdom"
	"github.com/canonui/canon/pkg/window"
)

// Virtual list attributes.
const (
	AttrVirtualList        = "data-virtual-list"
	AttrVirtualListContent = "data-virtual-list-content"
)

// VirtualList windows a [data-virtual-list] scroll container. Geometry is
// read from data-item-height, data-viewport-height and data-overscan
// (defaults 36, 600 and 5) and the item count from data-total-items.
//
// Scroll events carry "scrollTop" in their detail. The container gets
// data-total-height and data-range-start/data-range-end; the
// data-virtual-list-content child gets data-offset and a translateY style.
// The current window.Range is kept in the state value.
func VirtualList() behavior.Behavior {
	return behavior.New(behavior.KindVirtualList, AttrVirtualList, attachVirtualList)
}

// VirtualListAttrs renders cfg and total as the attributes VirtualList reads.
func VirtualListAttrs(cfg window.Config, total int) []vdom.Attr {
	return []vdom.Attr{
		vdom.Marker("virtual-list"),
		vdom.Data("item-height", formatFloat(cfg.ItemHeight)),
		vdom.Data("viewport-height", formatFloat(cfg.ViewportHeight)),
		vdom.Data("overscan", strconv.Itoa(cfg.Overscan)),
		vdom.Data("total-items", strconv.Itoa(total)),
	}
}

// VirtualListConfig reads the geometry attributes of el.
func VirtualListConfig(el *vdom.VNode) window.Config {
	def := window.DefaultConfig()
	return window.Config{
		ItemHeight:     attrFloat(el, "data-item-height", def.ItemHeight),
		ViewportHeight: attrFloat(el, "data-viewport-height", def.ViewportHeight),
		Overscan:       attrInt(el, "data-overscan", def.Overscan),
	}
}

func attachVirtualList(ctx behavior.AttachContext) error {
	el := ctx.Element
	cfg := VirtualListConfig(el)
	if err := cfg.Validate(); err != nil {
		return err
	}
	vp := window.NewViewport(cfg, attrInt(el, "data-total-items", 0))
	content := first(el, AttrVirtualListContent)

	render := func(r window.Range) {
		el.SetAttr("data-total-height", formatFloat(vp.TotalExtent()))
		el.SetAttr("data-range-start", strconv.Itoa(r.Start))
		el.SetAttr("data-range-end", strconv.Itoa(r.End))
		if content != nil {
			content.SetAttr("data-offset", formatFloat(vp.Offset()))
			content.SetAttr("style", vp.Style())
		}
		ctx.State.Value.Set(r)
	}
	render(vp.Range())
	vp.Subscribe(render)

	el.AddEventListener("scroll", func(e *vdom.Event) {
		vp.OnScroll(detail(e).Float("scrollTop"))
	})
	return nil
}
