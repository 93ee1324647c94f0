package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/internal/fixture"
	"github.com/canonui/canon/pkg/tree"
	"github.com/canonui/canon/pkg/window"
)

// treeReport is the flattened view of a fixture hierarchy.
type treeReport struct {
	Rows     int             `json:"rows"`
	Nodes    int             `json:"nodes"`
	Range    window.Range    `json:"range"`
	Selected string          `json:"selected,omitempty"`
	Visible  []tree.FlatNode `json:"visible"`
}

// treeOptions selects how a hierarchy is expanded and scrolled.
type treeOptions struct {
	expandAll bool
	selectID  string
	scrollTop float64
}

func flattenTree(roots []*tree.Node, cfg window.Config, opts treeOptions) (treeReport, error) {
	vt := tree.NewVirtualTree(roots, cfg)
	if opts.expandAll {
		vt.ExpandAll()
	}
	if opts.selectID != "" && !vt.Select(opts.selectID) {
		return treeReport{}, canonerrors.ElementNotFound("#" + opts.selectID).
			WithDetail("The tree has no node with this id.")
	}
	r := vt.OnScroll(opts.scrollTop)
	return treeReport{
		Rows:     vt.Len(),
		Nodes:    tree.Count(roots),
		Range:    r,
		Selected: vt.Selected(),
		Visible:  vt.Visible(),
	}, nil
}

func treeCmd(flags *globalFlags) *cobra.Command {
	var (
		opts   treeOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "tree <fixture.yaml>",
		Short: "Flatten a hierarchy from a fixture",
		Long: `Flatten the tree declared in a fixture into rows, descending only into
expanded nodes, and print the rows a virtual tree would render.

Examples:
  canon tree files.yaml
  canon tree files.yaml --expand-all --scroll-top=400
  canon tree files.yaml --select=readme --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			fx, err := fixture.Load(args[0])
			if err != nil {
				return err
			}
			if len(fx.Tree) == 0 {
				warn("%s declares no tree", args[0])
				return nil
			}

			rep, err := flattenTree(fx.Tree, cfg.Window, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(rep)
			}

			success("%d of %d nodes visible as rows, rendering %d to %d",
				rep.Rows, rep.Nodes, rep.Range.Start, rep.Range.End)
			fmt.Println()
			for _, row := range rep.Visible {
				info("%s", formatRow(row, rep.Selected))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.expandAll, "expand-all", false, "Expand every node before flattening")
	cmd.Flags().StringVar(&opts.selectID, "select", "", "Select a node, expanding its ancestors")
	cmd.Flags().Float64VarP(&opts.scrollTop, "scroll-top", "s", 0, "Scroll position in pixels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the rows as JSON")

	return cmd
}

func formatRow(row tree.FlatNode, selected string) string {
	marker := " "
	switch {
	case row.HasChildren && row.Expanded:
		marker = "▾"
	case row.HasChildren:
		marker = "▸"
	}
	line := strings.Repeat("  ", row.Depth) + marker + " " + row.Label()
	if row.ID == selected {
		line += "  *"
	}
	return line
}
