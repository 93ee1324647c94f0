package standard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/behavior/standard"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/store"
	"github.com/canonui/canon/pkg/vdom"
	"github.com/canonui/canon/pkg/window"
)

type harness struct {
	t      *testing.T
	doc    *vdom.Document
	reg    *behavior.Registry
	sc     *behavior.Scanner
	report behavior.ScanReport
}

func start(t *testing.T, body ...any) *harness {
	t.Helper()
	h := &harness{t: t, doc: vdom.NewDocument(body...)}
	h.reg = behavior.NewRegistry(store.New(),
		behavior.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	standard.Register(h.reg)
	h.sc = behavior.NewScanner(h.reg, h.doc,
		behavior.WithScanHook(func(r behavior.ScanReport) { h.report = r }))
	require.NoError(t, h.sc.Start(context.Background()))
	return h
}

func (h *harness) el(id string) *vdom.VNode {
	h.t.Helper()
	n := h.doc.GetElementByID(id)
	require.NotNil(h.t, n, "element #%s", id)
	return n
}

func (h *harness) attr(id, key string) string {
	v, _ := h.el(id).Attr(key)
	return v
}

func (h *harness) has(id, key string) bool {
	return h.el(id).HasAttr(key)
}

func (h *harness) fire(id, typ string, d map[string]any) {
	h.el(id).DispatchEvent(vdom.NewEvent(typ, d))
}

func (h *harness) fireDoc(typ string, d map[string]any) {
	h.doc.DispatchEvent(vdom.NewEvent(typ, d))
}

func (h *harness) state(id string) *store.ComponentState {
	h.t.Helper()
	st, ok := h.reg.Get(id)
	require.True(h.t, ok, "state for #%s", id)
	return st
}

func (h *harness) collect(names ...string) *[]bus.Event {
	var events []bus.Event
	for _, name := range names {
		h.sc.Bus().Subscribe(name, func(e bus.Event) { events = append(events, e) })
	}
	return &events
}

func flag(key string) vdom.Attr { return vdom.AttrKV(key, true) }

func TestAllAndRegister(t *testing.T) {
	all := standard.All()
	require.Len(t, all, 10)

	seen := map[string]bool{}
	for _, b := range all {
		assert.False(t, seen[b.Attribute()], "duplicate attribute %s", b.Attribute())
		seen[b.Attribute()] = true
		assert.NotEqual(t, behavior.KindCustom, b.Kind())
	}

	reg := behavior.NewRegistry(nil)
	g := standard.Register(reg)
	assert.Equal(t, 10, reg.Len())
	assert.Equal(t, 10, g.Len())
	g.Dispose()
	assert.Zero(t, reg.Len())
}

func TestModal(t *testing.T) {
	h := start(t,
		vdom.Button(vdom.ID("open"), standard.ModalTrigger("dlg")),
		vdom.Div(vdom.ID("dlg"), vdom.Marker("modal"),
			vdom.Div(vdom.ID("backdrop"), flag(standard.AttrModalOverlay)),
			vdom.Div(vdom.ID("panel"), vdom.Button(vdom.ID("inner"))),
		),
		vdom.Div(vdom.ID("elsewhere")),
	)
	events := h.collect(bus.OverlayOpen, bus.OverlayClose)

	assert.Equal(t, "closed", h.attr("dlg", "data-state"))
	assert.Equal(t, "true", h.attr("dlg", "aria-hidden"))
	assert.Equal(t, "false", h.attr("open", "aria-expanded"))

	h.fire("open", "click", nil)
	assert.Equal(t, "open", h.attr("dlg", "data-state"))
	assert.Equal(t, "true", h.attr("open", "aria-expanded"))
	assert.True(t, h.state("dlg").Open.Get())

	h.fire("inner", "click", nil)
	h.fire("elsewhere", "click", nil)
	assert.Equal(t, "open", h.attr("dlg", "data-state"), "modal ignores clicks outside its overlay")

	h.fire("backdrop", "click", nil)
	assert.Equal(t, "closed", h.attr("dlg", "data-state"))

	h.fire("open", "click", nil)
	h.fireDoc("keydown", map[string]any{"key": "Escape"})
	assert.False(t, h.state("dlg").Open.Get())

	require.Len(t, *events, 4)
	assert.Equal(t, bus.OverlayOpen, (*events)[0].Name)
	assert.Equal(t, "dlg", (*events)[0].Detail.String("id"))
	assert.Equal(t, "modal", (*events)[0].Detail.String("kind"))
	assert.Equal(t, bus.OverlayClose, (*events)[3].Name)
}

func TestModalStartsOpen(t *testing.T) {
	h := start(t, vdom.Div(vdom.ID("dlg"), vdom.Marker("modal"), vdom.DataState("open")))
	assert.True(t, h.state("dlg").Open.Get())
	assert.Equal(t, "false", h.attr("dlg", "aria-hidden"))
}

func TestDropdownClosesOnOutsideClick(t *testing.T) {
	h := start(t,
		vdom.Button(vdom.ID("ta"), standard.DropdownTrigger("a")),
		vdom.Div(vdom.ID("a"), vdom.Marker("dropdown"),
			vdom.Ul(vdom.ID("menu-a"), flag(standard.AttrDropdownContent), vdom.Li(vdom.ID("item"))),
		),
		vdom.Button(vdom.ID("tb"), standard.DropdownTrigger("b")),
		vdom.Div(vdom.ID("b"), vdom.Marker("dropdown")),
		vdom.Div(vdom.ID("outside")),
	)

	assert.True(t, h.has("menu-a", "hidden"))

	h.fire("ta", "click", nil)
	assert.Equal(t, "open", h.attr("a", "data-state"))
	assert.Equal(t, "open", h.attr("menu-a", "data-state"))
	assert.False(t, h.has("menu-a", "hidden"))

	h.fire("item", "click", nil)
	assert.Equal(t, "open", h.attr("a", "data-state"), "clicks inside keep it open")

	h.fire("tb", "click", nil)
	assert.Equal(t, "closed", h.attr("a", "data-state"), "opening another dropdown closes this one")
	assert.Equal(t, "open", h.attr("b", "data-state"))

	h.fire("outside", "click", nil)
	assert.Equal(t, "closed", h.attr("b", "data-state"))

	h.fire("ta", "click", nil)
	h.fire("ta", "click", nil)
	assert.Equal(t, "closed", h.attr("a", "data-state"), "trigger toggles")

	h.fire("ta", "click", nil)
	h.fireDoc("keydown", map[string]any{"key": "Escape"})
	assert.Equal(t, "closed", h.attr("a", "data-state"))
}

func TestRerenderedOverlaysToggleOnce(t *testing.T) {
	page := func() []*vdom.VNode {
		return []*vdom.VNode{
			vdom.Button(vdom.ID("open"), standard.ModalTrigger("dlg")),
			vdom.Div(vdom.ID("dlg"), vdom.Marker("modal")),
			vdom.Button(vdom.ID("ta"), standard.DropdownTrigger("dd")),
			vdom.Div(vdom.ID("dd"), vdom.Marker("dropdown")),
		}
	}
	h := start(t, page())
	events := h.collect(bus.OverlayOpen, bus.OverlayClose)

	h.doc.Body().ReplaceChildren(page()...)
	require.Equal(t, 1, h.doc.Flush())
	assert.Equal(t, 2, h.report.Attached)

	h.fire("open", "click", nil)
	assert.True(t, h.state("dlg").Open.Get())
	assert.Equal(t, "open", h.attr("dlg", "data-state"))
	assert.Equal(t, "true", h.attr("open", "aria-expanded"))

	h.fire("ta", "click", nil)
	assert.Equal(t, "open", h.attr("dd", "data-state"))

	h.fireDoc("keydown", map[string]any{"key": "Escape"})
	assert.False(t, h.state("dlg").Open.Get())
	assert.Equal(t, "closed", h.attr("dd", "data-state"))

	require.Len(t, *events, 4, "one event per transition after re-render")
}

func TestPopoverIgnoresEscape(t *testing.T) {
	h := start(t,
		vdom.Button(vdom.ID("t"), standard.PopoverTrigger("p")),
		vdom.Div(vdom.ID("p"), vdom.Marker("popover")),
		vdom.Div(vdom.ID("outside")),
	)
	h.fire("t", "click", nil)
	h.fireDoc("keydown", map[string]any{"key": "Escape"})
	assert.Equal(t, "open", h.attr("p", "data-state"))

	h.fire("outside", "click", nil)
	assert.Equal(t, "closed", h.attr("p", "data-state"))
}

func TestCollapsibleNested(t *testing.T) {
	h := start(t,
		vdom.Div(vdom.ID("outer"), vdom.Marker("collapsible"),
			vdom.Button(vdom.ID("ot"), vdom.Marker("collapsible-trigger")),
			vdom.Div(vdom.ID("ob"), vdom.Marker("collapsible-content"),
				vdom.Div(vdom.ID("inner"), vdom.Marker("collapsible"),
					vdom.Button(vdom.ID("it"), vdom.Marker("collapsible-trigger")),
					vdom.Div(vdom.ID("ib"), vdom.Marker("collapsible-content")),
				),
			),
		),
	)

	assert.Equal(t, "closed", h.attr("outer", "data-state"))
	assert.True(t, h.has("ob", "hidden"))
	assert.True(t, h.has("ib", "hidden"))

	h.fire("ot", "click", nil)
	assert.Equal(t, "open", h.attr("outer", "data-state"))
	assert.False(t, h.has("ob", "hidden"))
	assert.Equal(t, "true", h.attr("ot", "aria-expanded"))
	assert.Equal(t, "closed", h.attr("inner", "data-state"))
	assert.True(t, h.has("ib", "hidden"))

	h.fire("it", "click", nil)
	assert.Equal(t, "open", h.attr("inner", "data-state"))
	assert.Equal(t, "open", h.attr("outer", "data-state"), "inner trigger does not toggle the outer section")

	h.fire("ob", "click", nil)
	assert.Equal(t, "open", h.attr("outer", "data-state"), "content clicks do not toggle")
}

func TestSlider(t *testing.T) {
	h := start(t,
		vdom.Div(vdom.ID("s"),
			standard.SliderAttrs(standard.SliderConfig{Min: 0, Max: 200, Step: 10, Value: 50}),
			vdom.Div(vdom.ID("range"), vdom.Marker("slider-range")),
			vdom.Div(vdom.ID("thumb"), vdom.Marker("slider-thumb")),
		),
	)
	value := func() any { return h.state("s").Value.Get() }

	assert.Equal(t, 50.0, value())
	assert.Equal(t, "width: 25%;", h.attr("range", "style"))
	assert.Equal(t, "left: 25%;", h.attr("thumb", "style"))

	h.fire("s", "pointerdown", map[string]any{"x": 30.0, "width": 100.0})
	assert.Equal(t, 60.0, value())
	assert.Equal(t, "60", h.attr("s", "aria-valuenow"))
	assert.Equal(t, "width: 30%;", h.attr("range", "style"))

	h.fireDoc("pointermove", map[string]any{"x": 140.0, "width": 100.0})
	assert.Equal(t, 200.0, value(), "pointer positions clamp to the track")

	h.fireDoc("pointerup", nil)
	h.fireDoc("pointermove", map[string]any{"x": 0.0, "width": 100.0})
	assert.Equal(t, 200.0, value(), "moves after release are ignored")

	keys := []struct {
		key  string
		want float64
	}{
		{"ArrowRight", 200},
		{"ArrowLeft", 190},
		{"ArrowDown", 180},
		{"Home", 0},
		{"ArrowLeft", 0},
		{"ArrowUp", 10},
		{"End", 200},
	}
	for _, k := range keys {
		h.fire("s", "keydown", map[string]any{"key": k.key})
		assert.Equal(t, k.want, value(), "after %s", k.key)
	}
	assert.Equal(t, "200", h.attr("thumb", "aria-valuenow"))
}

func TestSliderInvalidBounds(t *testing.T) {
	h := start(t,
		vdom.Div(vdom.ID("s"), standard.SliderAttrs(standard.SliderConfig{Min: 10, Max: 10})),
	)
	assert.Equal(t, 1, h.report.Failed)
	require.Len(t, h.report.Errors, 1)
	assert.True(t, errors.Is(h.report.Errors[0], canonerrors.ErrInvalidConfig))
	assert.False(t, h.has("s", "data-value"))
}

func resizableMarkup(extra ...any) *vdom.VNode {
	args := []any{
		vdom.ID("split"), vdom.Marker("resizable"),
		vdom.Div(vdom.ID("left"), vdom.Marker("resizable-panel-content")),
		vdom.Div(vdom.ID("handle"), vdom.Marker("resizable-handle")),
		vdom.Div(vdom.ID("right"), vdom.Marker("resizable-panel-content")),
	}
	return vdom.Div(append(args, extra...)...)
}

func TestResizable(t *testing.T) {
	h := start(t, resizableMarkup())
	events := h.collect(bus.ResizeStart, bus.ResizeMove, bus.ResizeEnd)

	assert.Equal(t, "flex-basis: 50%;", h.attr("left", "style"))
	assert.Equal(t, "flex-basis: 50%;", h.attr("right", "style"))
	assert.Equal(t, "vertical", h.attr("handle", "aria-orientation"))
	assert.Equal(t, "20", h.attr("handle", "aria-valuemin"))
	assert.Equal(t, "80", h.attr("handle", "aria-valuemax"))

	h.fireDoc("pointermove", map[string]any{"x": 100.0, "width": 1000.0})
	assert.Empty(t, *events, "no drag in progress")

	h.fire("handle", "pointerdown", nil)
	assert.Equal(t, "true", h.attr("split", "data-resizing"))
	h.fireDoc("pointermove", map[string]any{"x": 300.0, "width": 1000.0})
	assert.Equal(t, "flex-basis: 30%;", h.attr("left", "style"))
	assert.Equal(t, "flex-basis: 70%;", h.attr("right", "style"))
	h.fireDoc("pointermove", map[string]any{"x": 950.0, "width": 1000.0})
	assert.Equal(t, "flex-basis: 80%;", h.attr("left", "style"), "clamped to max size")
	h.fireDoc("pointerup", nil)
	assert.False(t, h.has("split", "data-resizing"))

	var names []string
	var widths []float64
	for _, e := range *events {
		names = append(names, e.Name)
		widths = append(widths, e.Detail.Float("width"))
		assert.Equal(t, "split", e.Detail.String("column"))
	}
	assert.Equal(t, []string{bus.ResizeStart, bus.ResizeMove, bus.ResizeMove, bus.ResizeEnd}, names)
	assert.Equal(t, []float64{50, 30, 80, 80}, widths)
	assert.Equal(t, 80.0, h.state("split").Value.Get())
}

func TestResizableVertical(t *testing.T) {
	h := start(t, resizableMarkup(vdom.Data("direction", "vertical"), vdom.Data("min-size", "10")))
	assert.Equal(t, "horizontal", h.attr("handle", "aria-orientation"))

	h.fire("handle", "pointerdown", nil)
	h.fireDoc("pointermove", map[string]any{"y": 50.0, "height": 1000.0})
	assert.Equal(t, "flex-basis: 10%;", h.attr("left", "style"))
}

func TestResizableInvalid(t *testing.T) {
	cases := map[string]*vdom.VNode{
		"direction": resizableMarkup(vdom.Data("direction", "diagonal")),
		"sizes":     resizableMarkup(vdom.Data("min-size", "90")),
		"handle":    vdom.Div(vdom.ID("split"), vdom.Marker("resizable")),
	}
	for name, markup := range cases {
		t.Run(name, func(t *testing.T) {
			h := start(t, markup)
			assert.Equal(t, 1, h.report.Failed)
			require.Len(t, h.report.Errors, 1)
			assert.True(t, errors.Is(h.report.Errors[0], canonerrors.ErrInvalidConfig))
		})
	}
}

func listMarkup(mode string) *vdom.VNode {
	return vdom.Ul(vdom.ID("list"), vdom.Marker("list"), vdom.Data("selection-mode", mode),
		vdom.Li(vdom.ID("a"), vdom.Marker("list-item"), vdom.Data("value", "alpha")),
		vdom.Li(vdom.ID("b"), vdom.Marker("list-item"), vdom.Span(vdom.ID("b-label"))),
		vdom.Li(vdom.ID("c"), vdom.Marker("list-item"), vdom.Marker("disabled")),
	)
}

func TestSelectableSingle(t *testing.T) {
	h := start(t, listMarkup(standard.SelectionSingle))
	events := h.collect(bus.SelectionChanged)
	selection := func() []string { return standard.Selection(h.state("list").Value.Get()) }

	assert.Equal(t, "listbox", h.attr("list", "role"))
	assert.Equal(t, "option", h.attr("a", "role"))
	assert.Empty(t, selection())

	h.fire("a", "click", nil)
	assert.Equal(t, []string{"alpha"}, selection())
	assert.Equal(t, "true", h.attr("a", "aria-selected"))
	assert.True(t, h.has("a", "data-selected"))

	h.fire("b-label", "click", nil)
	assert.Equal(t, []string{"b"}, selection())
	assert.Equal(t, "false", h.attr("a", "aria-selected"))
	assert.False(t, h.has("a", "data-selected"))

	h.fire("b", "keydown", map[string]any{"key": "Enter"})
	assert.Empty(t, selection())

	h.fire("c", "click", nil)
	assert.Empty(t, selection(), "disabled items are skipped")

	h.fire("a", "keydown", map[string]any{"key": " "})
	assert.Equal(t, []string{"alpha"}, selection())

	require.Len(t, *events, 4)
	last := (*events)[3]
	assert.Equal(t, "list", last.Detail.String("list"))
	assert.Equal(t, "alpha", last.Detail.String("item"))
	assert.True(t, last.Detail.Bool("selected"))
	assert.Equal(t, 1, last.Detail.Int("count"))
}

func TestSelectableMultiple(t *testing.T) {
	h := start(t, listMarkup(standard.SelectionMultiple))
	selection := func() []string { return standard.Selection(h.state("list").Value.Get()) }

	assert.Equal(t, "true", h.attr("list", "aria-multiselectable"))
	h.fire("a", "click", nil)
	h.fire("b", "click", nil)
	assert.Equal(t, []string{"alpha", "b"}, selection())

	h.fire("a", "click", nil)
	assert.Equal(t, []string{"b"}, selection())
	assert.True(t, h.has("b", "data-selected"))
}

func TestSelectableInvalidMode(t *testing.T) {
	h := start(t, listMarkup("some"))
	assert.Equal(t, 1, h.report.Failed)
}

func syncMarkup() []any {
	return []any{
		vdom.Div(vdom.ID("chart"), vdom.Marker("chart"), standard.ChartSyncTable("table")),
		vdom.Table(vdom.ID("table"), vdom.Marker("datatable"), standard.TableSyncChart("chart"),
			vdom.Tbody(
				vdom.Tr(vdom.ID("r0"), standard.TableRow(0)),
				vdom.Tr(vdom.ID("r1"), standard.TableRow(1), vdom.Td(vdom.ID("cell1"))),
			),
		),
	}
}

func TestChartHoverHighlightsRows(t *testing.T) {
	h := start(t, syncMarkup()...)

	h.fire("chart", "pointermove", map[string]any{"index": 1})
	assert.True(t, h.has("r1", standard.AttrChartHighlight))
	assert.False(t, h.has("r0", standard.AttrChartHighlight))
	assert.Equal(t, 1, h.state("chart").Value.Get())

	h.sc.Bus().Emit(bus.ChartHover, "index", 0)
	assert.True(t, h.has("r0", standard.AttrChartHighlight))
	assert.False(t, h.has("r1", standard.AttrChartHighlight))

	h.sc.Bus().Emit(bus.ChartHover, "index", 1, "chart", "other")
	assert.True(t, h.has("r0", standard.AttrChartHighlight), "hovers of other charts are ignored")

	h.fire("chart", "mouseleave", nil)
	assert.False(t, h.has("r0", standard.AttrChartHighlight))
	assert.False(t, h.has("r1", standard.AttrChartHighlight))
	assert.Equal(t, -1, h.state("chart").Value.Get())
}

func TestTableHoverActivatesChart(t *testing.T) {
	h := start(t, syncMarkup()...)
	events := h.collect(bus.DataTableHover, bus.DataTableLeave)

	h.fire("cell1", "mouseenter", nil)
	assert.Equal(t, "1", h.attr("chart", standard.AttrChartActive))
	assert.Equal(t, 1, h.state("table").Value.Get())

	h.fire("r1", "mouseleave", nil)
	assert.False(t, h.has("chart", standard.AttrChartActive))

	require.Len(t, *events, 2)
	assert.Equal(t, bus.DataTableHover, (*events)[0].Name)
	assert.Equal(t, 1, (*events)[0].Detail.Int("index"))
	assert.Equal(t, "chart", (*events)[0].Detail.String("chartId"))
	assert.Equal(t, bus.DataTableLeave, (*events)[1].Name)
}

func TestLeavingTableClearsChart(t *testing.T) {
	h := start(t, syncMarkup()...)
	events := h.collect(bus.DataTableLeave)

	h.fire("cell1", "mouseenter", nil)
	require.Equal(t, "1", h.attr("chart", standard.AttrChartActive))

	h.fire("table", "mouseleave", nil)
	assert.False(t, h.has("chart", standard.AttrChartActive))
	assert.Equal(t, -1, h.state("table").Value.Get())
	require.Len(t, *events, 1)
	assert.Equal(t, "chart", (*events)[0].Detail.String("chartId"))
}

func TestVirtualList(t *testing.T) {
	cfg := window.Config{ItemHeight: 50, ViewportHeight: 500, Overscan: 2}
	h := start(t,
		vdom.Div(vdom.ID("vl"), standard.VirtualListAttrs(cfg, 100),
			vdom.Div(vdom.ID("content"), vdom.Marker("virtual-list-content")),
		),
	)

	assert.Equal(t, "5000", h.attr("vl", "data-total-height"))
	assert.Equal(t, "0", h.attr("vl", "data-range-start"))
	assert.Equal(t, "14", h.attr("vl", "data-range-end"))
	assert.Equal(t, "transform: translateY(0px);", h.attr("content", "style"))

	h.fire("vl", "scroll", map[string]any{"scrollTop": 1000.0})
	assert.Equal(t, window.Range{Start: 18, End: 32}, h.state("vl").Value.Get())
	assert.Equal(t, "900", h.attr("content", "data-offset"))
	assert.Equal(t, "transform: translateY(900px);", h.attr("content", "style"))
}

func TestVirtualListInvalidGeometry(t *testing.T) {
	h := start(t,
		vdom.Div(vdom.ID("vl"), vdom.Marker("virtual-list"), vdom.Data("item-height", "0")),
	)
	assert.Equal(t, 1, h.report.Failed)
	require.Len(t, h.report.Errors, 1)
	assert.True(t, errors.Is(h.report.Errors[0], canonerrors.ErrInvalidConfig))
}

func TestVirtualListConfigDefaults(t *testing.T) {
	cfg := standard.VirtualListConfig(vdom.Div(vdom.Data("overscan", "x")))
	assert.Equal(t, window.DefaultConfig(), cfg)
}
