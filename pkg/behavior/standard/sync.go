package standard

import (
	"strconv"

	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/vdom"
)

// Chart and data table attributes.
const (
	AttrChart          = "data-chart"
	AttrChartSyncTable = "data-chart-sync-table"
	AttrChartHighlight = "data-chart-highlight"
	AttrChartActive    = "data-active-index"
	AttrDataTable      = "data-datatable"
	AttrTableSyncChart = "data-table-sync-chart"
	AttrTableRow       = "data-datatable-row"
	AttrRowIndex       = "data-row-index"
)

// noIndex is stored in the state value while nothing is hovered.
const noIndex = -1

// ChartSync links a [data-chart] to the data table named by its
// data-chart-sync-table. Pointer moves over the chart carrying an "index"
// in their detail are published as canon:chart:hover; leaving publishes
// canon:chart:leave. While a chart point is hovered the table row whose
// data-row-index matches gets data-chart-highlight.
//
// Hovering a row of a table synced to this chart sets data-active-index on
// the chart. The hovered index is kept in the state value, -1 for none.
func ChartSync() behavior.Behavior {
	return behavior.New(behavior.KindChartSync, AttrChart, attachChartSync)
}

// TableSync publishes row hovers of a [data-datatable] as
// canon:datatable:hover {index, chartId} and canon:datatable:leave
// {chartId}, where chartId comes from data-table-sync-chart.
func TableSync() behavior.Behavior {
	return behavior.New(behavior.KindTableSync, AttrDataTable, attachTableSync)
}

// ChartSyncTable links a chart to the table with id tableID.
func ChartSyncTable(tableID string) vdom.Attr { return vdom.AttrKV(AttrChartSyncTable, tableID) }

// TableSyncChart links a table to the chart with id chartID.
func TableSyncChart(chartID string) vdom.Attr { return vdom.AttrKV(AttrTableSyncChart, chartID) }

// TableRow marks a table row with its data index.
func TableRow(index int) []vdom.Attr {
	return []vdom.Attr{vdom.Marker("datatable-row"), vdom.AttrKV(AttrRowIndex, index)}
}

func attachChartSync(ctx behavior.AttachContext) error {
	el, id, b := ctx.Element, ctx.ElementID, ctx.Bus
	tableID, _ := el.Attr(AttrChartSyncTable)
	value := ctx.State.Value
	value.Set(noIndex)

	rows := func() []*vdom.VNode {
		if tableID == "" || ctx.Document == nil {
			return nil
		}
		table := ctx.Document.GetElementByID(tableID)
		if table == nil {
			return nil
		}
		return within(table, AttrTableRow)
	}
	highlight := func(index string) {
		for _, row := range rows() {
			if v, _ := row.Attr(AttrRowIndex); index != "" && v == index {
				row.SetAttr(AttrChartHighlight, "true")
			} else {
				row.RemoveAttr(AttrChartHighlight)
			}
		}
	}

	el.AddEventListener("pointermove", func(e *vdom.Event) {
		d := detail(e)
		if !d.Has("index") {
			return
		}
		b.Emit(bus.ChartHover, "index", d.Int("index"), "chart", id)
	})
	el.AddEventListener("mouseleave", func(*vdom.Event) {
		b.Emit(bus.ChartLeave, "chart", id)
	})

	lt := bind(ctx)
	lt.onBus(b, bus.ChartHover, func(ev bus.Event) {
		if c := ev.Detail.String("chart"); c != "" && c != id {
			return
		}
		i := ev.Detail.Int("index")
		value.Set(i)
		highlight(strconv.Itoa(i))
	})
	lt.onBus(b, bus.ChartLeave, func(ev bus.Event) {
		if c := ev.Detail.String("chart"); c != "" && c != id {
			return
		}
		value.Set(noIndex)
		highlight("")
	})
	lt.onBus(b, bus.DataTableHover, func(ev bus.Event) {
		if ev.Detail.String("chartId") != id {
			return
		}
		i := ev.Detail.Int("index")
		value.Set(i)
		el.SetAttr(AttrChartActive, strconv.Itoa(i))
	})
	lt.onBus(b, bus.DataTableLeave, func(ev bus.Event) {
		if ev.Detail.String("chartId") != id {
			return
		}
		value.Set(noIndex)
		el.RemoveAttr(AttrChartActive)
	})
	return nil
}

func attachTableSync(ctx behavior.AttachContext) error {
	el, b := ctx.Element, ctx.Bus
	chartID, _ := el.Attr(AttrTableSyncChart)
	value := ctx.State.Value
	value.Set(noIndex)

	rowOf := func(e *vdom.Event) (*vdom.VNode, int, bool) {
		row := closestAttr(e.Target, AttrTableRow)
		if row == nil || !el.Contains(row) {
			return nil, 0, false
		}
		i := attrInt(row, AttrRowIndex, noIndex)
		return row, i, i != noIndex
	}
	el.AddEventListener("mouseenter", func(e *vdom.Event) {
		if _, i, ok := rowOf(e); ok {
			value.Set(i)
			b.Emit(bus.DataTableHover, "index", i, "chartId", chartID)
		}
	})
	el.AddEventListener("mouseleave", func(e *vdom.Event) {
		if _, _, ok := rowOf(e); ok || e.Target == el {
			value.Set(noIndex)
			b.Emit(bus.DataTableLeave, "chartId", chartID)
		}
	})
	return nil
}
