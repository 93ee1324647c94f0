package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonui/canon/internal/fixture"
	"github.com/canonui/canon/pkg/vdom"
)

func scanCmd(flags *globalFlags) *cobra.Command {
	var (
		asJSON    bool
		render    bool
		telemetry bool
	)

	cmd := &cobra.Command{
		Use:   "scan <fixture.yaml>",
		Short: "Attach behaviours to a fixture and report the outcome",
		Long: `Build the document described by a fixture, attach every standard
behaviour to the elements carrying its marker attribute and report what
was matched, attached, skipped and failed.

Examples:
  canon scan page.yaml
  canon scan page.yaml --render
  canon scan page.yaml --json --telemetry`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), flags, args[0], asJSON, render, telemetry)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&render, "render", false, "Print the document after attaching")
	cmd.Flags().BoolVar(&telemetry, "telemetry", false, "Include the attach history")

	return cmd
}

func runScan(ctx context.Context, flags *globalFlags, path string, asJSON, render, telemetry bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	fx, err := fixture.Load(path)
	if err != nil {
		return err
	}

	rt := newRuntime(cfg, logger, fx.Document())
	defer rt.close()
	if err := rt.start(ctx); err != nil {
		return err
	}

	st := rt.status(telemetry)
	if asJSON {
		return printJSON(st)
	}

	report := st.Last
	success("Scanned %s", path)
	info("matched:  %d", report.Matched)
	info("attached: %d", report.Attached)
	info("skipped:  %d", report.Skipped)
	info("failed:   %d", report.Failed)
	for _, e := range st.Errors {
		warn("%s", e)
	}
	if telemetry {
		fmt.Println()
		for _, r := range st.Telemetry {
			line := fmt.Sprintf("%-8s %-14s %-28s #%s", r.Kind, r.Behavior, r.Attribute, r.ElementID)
			if r.Error != "" {
				line += "  " + r.Error
			}
			info("%s", line)
		}
	}

	if render {
		html, err := vdom.RenderToString(rt.doc.DocumentElement(), vdom.RenderConfig{Pretty: true})
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(html)
	}
	return nil
}
