package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canonui/canon/internal/config"
	canonerrors "github.com/canonui/canon/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default canon.yaml",
		Long: `Write canon.yaml with the default settings into a directory
(default: the working directory). An existing file is kept unless --force
is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}
			success("Created %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing canon.yaml")

	return cmd
}

func writeDefaultConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, config.ConfigFileName)
	if !force && config.Exists(dir) {
		return "", canonerrors.InvalidConfig("%s already exists", path).
			WithSuggestion("Run with --force to overwrite it.")
	}
	if err := config.Default().SaveTo(path); err != nil {
		return "", err
	}
	return path, nil
}
