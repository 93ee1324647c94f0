package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	canonerrors "github.com/canonui/canon/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "canon",
		Short: "Attach widget behaviours to documents and inspect their state",
		Long: `canon drives the behaviour runtime against YAML fixtures.

It attaches the standard widget behaviours (modal, dropdown, popover,
collapsible, slider, resizable, selectable list, chart/table sync and
virtual list) to every element carrying their marker attribute, and
exposes the windowing and tree flattening engines for inspection.

Commands:
  init     write a default canon.yaml
  scan     attach behaviours to a fixture and report the outcome
  watch    re-apply a fixture whenever it changes
  window   compute the visible range of a virtualized list
  tree     flatten a hierarchy from a fixture
  serve    serve metrics and debug endpoints`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to canon.yaml (default: nearest canon.yaml above the working directory)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		initCmd(),
		scanCmd(&flags),
		watchCmd(&flags),
		windowCmd(&flags),
		treeCmd(&flags),
		serveCmd(&flags),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, canonerrors.Format(err))
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
