package main

import (
	"github.com/spf13/cobra"

	"github.com/canonui/canon/pkg/window"
)

// windowReport is the result of one range computation.
type windowReport struct {
	Config      window.Config `json:"config"`
	Total       int           `json:"total"`
	ScrollTop   float64       `json:"scroll_top"`
	Range       window.Range  `json:"range"`
	TotalExtent float64       `json:"total_extent"`
	Offset      float64       `json:"offset"`
	Style       string        `json:"style"`
}

func computeWindow(cfg window.Config, total int, scrollTop float64) windowReport {
	vp := window.NewViewport(cfg, total)
	r := vp.OnScroll(scrollTop)
	return windowReport{
		Config:      cfg,
		Total:       total,
		ScrollTop:   scrollTop,
		Range:       r,
		TotalExtent: vp.TotalExtent(),
		Offset:      vp.Offset(),
		Style:       vp.Style(),
	}
}

func windowCmd(flags *globalFlags) *cobra.Command {
	var (
		total     int
		scrollTop float64
		asJSON    bool
		geometry  window.Config
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Compute the visible range of a virtualized list",
		Long: `Compute which items a virtualized list renders at a scroll position.
Geometry defaults come from canon.yaml.

Examples:
  canon window --total=100 --item-height=50 --viewport-height=500 --overscan=2 --scroll-top=1000
  canon window --total=10000 --scroll-top=3600 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			g := cfg.Window
			if cmd.Flags().Changed("item-height") {
				g.ItemHeight = geometry.ItemHeight
			}
			if cmd.Flags().Changed("viewport-height") {
				g.ViewportHeight = geometry.ViewportHeight
			}
			if cmd.Flags().Changed("overscan") {
				g.Overscan = geometry.Overscan
			}
			if err := g.Validate(); err != nil {
				return err
			}

			rep := computeWindow(g, total, scrollTop)
			if asJSON {
				return printJSON(rep)
			}
			success("Items %d to %d of %d (%d rendered)", rep.Range.Start, rep.Range.End, total, rep.Range.Len())
			info("total extent: %gpx", rep.TotalExtent)
			info("offset:       %gpx", rep.Offset)
			info("style:        %s", rep.Style)
			return nil
		},
	}

	def := window.DefaultConfig()
	cmd.Flags().IntVarP(&total, "total", "n", 0, "Number of items")
	cmd.Flags().Float64VarP(&scrollTop, "scroll-top", "s", 0, "Scroll position in pixels")
	cmd.Flags().Float64Var(&geometry.ItemHeight, "item-height", def.ItemHeight, "Item height in pixels")
	cmd.Flags().Float64Var(&geometry.ViewportHeight, "viewport-height", def.ViewportHeight, "Viewport height in pixels")
	cmd.Flags().IntVar(&geometry.Overscan, "overscan", def.Overscan, "Items rendered beyond each edge")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
