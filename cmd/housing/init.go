package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/housing/config"
	"github.com/YuminosukeSato/housing/pkg/errors"
)

const defaultConfigPath = "housing.toml"

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration as TOML (\"-\" for stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeDefaultConfig,
	}
	cmd.Flags().Bool("force", false, "overwrite an existing file")
	return cmd
}

func writeDefaultConfig(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	cfg := config.Default()
	if path == "-" {
		return cfg.WriteTOML(cmd.OutOrStdout())
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force, _ := cmd.Flags().GetBool("force"); force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return errors.Wrapf(err, "init %s", path)
	}
	if err := cfg.WriteTOML(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n", path)
	return nil
}
