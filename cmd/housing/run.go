package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/housing/config"
	"github.com/YuminosukeSato/housing/linear"
	"github.com/YuminosukeSato/housing/pipeline"
	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/pkg/log"
	"github.com/YuminosukeSato/housing/table"
	"github.com/YuminosukeSato/housing/visualize"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fit the model, print the diagnostics and write the plot",
		Args:  cobra.NoArgs,
		RunE:  runAnalysis,
	}
	d := config.Default()
	f := cmd.Flags()
	addDataFlags(f, d)
	f.String("feature", d.Data.Feature, "feature column")
	f.String("label", d.Data.Label, "label column")
	f.Float64("label-divisor", d.Data.LabelDivisor, "divide the label by this value before fitting")
	f.StringSlice("require", d.Data.Required, "further columns that must be present and numeric")
	f.String("fitter", d.Model.Fitter, "fitter: closed-form or normal-equations")
	f.Float64("tolerance", d.Model.Tolerance, "relative tolerance of the zero-variance check")
	f.String("plot", d.Plot.Path, "plot output path (.png, .svg, .pdf, ...)")
	f.String("plot-title", d.Plot.Title, "plot title")
	f.Bool("no-plot", false, "do not write the plot")
	f.Bool("open", d.Plot.Open, "open the plot with the system viewer")
	f.Bool("wait", d.Wait, "wait for enter before exiting")
	return cmd
}

func options(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		DataPath:     cfg.Data.Path,
		Feature:      cfg.Data.Feature,
		Label:        cfg.Data.Label,
		FilterColumn: cfg.Data.FilterColumn,
		FilterMax:    cfg.Data.FilterMax,
		LabelDivisor: cfg.Data.LabelDivisor,
		PlotTitle:    cfg.Plot.Title,
		Required:     cfg.Data.Required,
	}
}

func runAnalysis(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fitter, err := linear.New(cfg.Model.Fitter,
		linear.WithTol(cfg.Model.Tolerance),
		linear.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Reader: &table.CSVReader{Separator: cfg.Data.SeparatorRune(), Logger: logger},
		Fitter: fitter,
		Out:    out,
		Logger: logger,
	}
	if cfg.Plot.Enabled {
		p.Renderer = &visualize.PlotRenderer{
			Path:   cfg.Plot.Path,
			Width:  vg.Length(cfg.Plot.Width) * vg.Inch,
			Height: vg.Length(cfg.Plot.Height) * vg.Inch,
			Logger: logger,
		}
	}

	res, err := p.Run(options(cfg))
	if err != nil {
		return err
	}
	logger.Debug("run summary", "report", res.Report)

	if cfg.Plot.Enabled {
		fmt.Fprintf(out, "Plot: %s\n", cfg.Plot.Path)
		if cfg.Plot.Open {
			if err := open.Start(cfg.Plot.Path); err != nil {
				logger.Warn("cannot open plot", log.PathKey, cfg.Plot.Path, log.ErrAttrKey, err)
			}
		}
	}

	if cfg.Wait {
		fmt.Fprintln(out, "Press enter to exit")
		if _, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return errors.WithStack(err)
		}
	}
	return nil
}
