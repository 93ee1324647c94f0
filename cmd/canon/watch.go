package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/canonui/canon/internal/fixture"
	"github.com/canonui/canon/internal/watch"
	"github.com/canonui/canon/pkg/behavior"
)

func watchCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <fixture.yaml>",
		Short: "Re-apply a fixture to a live document whenever it changes",
		Long: `Attach behaviours to a fixture, then watch the file. Every change
replaces the document body with the new elements; the mutation observer
picks up the inserted elements and attaches them.

Examples:
  canon watch page.yaml
  canon watch page.yaml --log-level=debug`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(flags, args[0])
		},
	}
	return cmd
}

func runWatch(flags *globalFlags, path string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	fx, err := fixture.Load(path)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rt := newRuntime(cfg, logger, fx.Document())
	defer rt.close()
	if err := rt.start(ctx); err != nil {
		return err
	}
	printReport("Attached", path, rt.status(false).Last)

	w := watch.NewWatcher(watch.Config{
		Paths:    []string{filepath.Dir(path)},
		Debounce: cfg.Watch.Debounce,
		Logger:   logger,
	})
	target := filepath.Clean(path)
	w.OnChange(func(c watch.Change) {
		if filepath.Clean(c.Path) != target {
			return
		}
		if c.Op == watch.OpRemove {
			warn("%s was removed", c.Path)
			return
		}
		next, err := fixture.Load(path)
		if err != nil {
			logger.Error("reload failed", "path", path, "error", err)
			return
		}
		report, err := rt.replace(next.Apply)
		if err != nil {
			logger.Error("apply failed", "path", path, "error", err)
			return
		}
		printReport("Reloaded", path, report)
	})

	info("Watching %s (Ctrl+C to stop)", path)
	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printReport(verb, path string, report behavior.ScanReport) {
	success("%s %s: %d matched, %d attached, %d skipped, %d failed",
		verb, path, report.Matched, report.Attached, report.Skipped, report.Failed)
	for _, err := range report.Errors {
		warn("%s", err)
	}
}

