// Command housing fits median house value against median income on the
// California housing data, reports the fit and plots it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/housing/config"
	"github.com/YuminosukeSato/housing/pkg/log"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "housing",
		Short:         "Single-feature linear regression on housing data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	d := config.Default()
	root.PersistentFlags().StringP("config", "c", "", "configuration file path (TOML)")
	root.PersistentFlags().String("log-level", d.Log.Level, "log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", d.Log.Format, "log format: json or console")

	root.AddCommand(
		newRunCommand(),
		newDescribeCommand(),
		newInitCommand(),
		newVersionCommand(),
	)
	return root
}

// installed is the logger setup chose, nil until setup succeeds.
var installed log.Logger

// setup loads the configuration for cmd and installs the logger it selects.
func setup(cmd *cobra.Command) (*config.Config, log.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	installed = logger
	if path != "" {
		logger.Debug("config loaded", log.PathKey, path)
	}
	return cfg, logger, nil
}

func newLogger(c config.LogConfig, w io.Writer) (log.Logger, error) {
	var logger log.Logger
	switch c.Format {
	case "json":
		l, err := log.SetupLogger(c.Level, w)
		if err != nil {
			return nil, err
		}
		logger = l
	default:
		level, err := log.ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		logger = log.NewZerologLogger(w, level, true)
		log.SetLogger(logger)
	}
	log.RouteWarnings(logger)
	return logger, nil
}

// reportError logs err through logger, or prints it to w when the command
// failed before a logger was installed.
func reportError(w io.Writer, logger log.Logger, err error) {
	if logger == nil {
		fmt.Fprintln(w, "housing:", err)
		return
	}
	logger.Error("housing failed", log.ErrAttrKey, err)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		reportError(os.Stderr, installed, err)
		os.Exit(1)
	}
}
