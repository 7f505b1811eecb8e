package main

import (
	"io"
	"math"
	"strconv"

	"github.com/go-gota/gota/series"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/YuminosukeSato/housing/config"
	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/pkg/log"
	"github.com/YuminosukeSato/housing/table"
)

func addDataFlags(f *pflag.FlagSet, d *config.Config) {
	f.String("data", d.Data.Path, "path of the CSV file")
	f.String("separator", d.Data.Separator, "field separator")
	f.String("filter-column", d.Data.FilterColumn, "column the row filter applies to")
	f.Float64("filter-max", d.Data.FilterMax, "keep rows whose filter column is below this value")
}

func newDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summarize every column of the data file",
		Args:  cobra.NoArgs,
		RunE:  describe,
	}
	addDataFlags(cmd.Flags(), config.Default())
	cmd.Flags().Bool("filtered", false, "summarize only the rows kept by the filter")
	return cmd
}

func describe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	tbl, err := (&table.CSVReader{Separator: cfg.Data.SeparatorRune(), Logger: logger}).Read(cfg.Data.Path)
	if err != nil {
		return err
	}
	if filtered, _ := cmd.Flags().GetBool("filtered"); filtered {
		loaded := tbl.Nrow()
		tbl, err = tbl.Where(cfg.Data.FilterColumn, series.Less, cfg.Data.FilterMax)
		if err != nil {
			return err
		}
		logger.Info("rows filtered",
			log.ColumnKey, cfg.Data.FilterColumn,
			log.SamplesKey, tbl.Nrow(),
			log.DroppedKey, loaded-tbl.Nrow(),
		)
	}
	return writeSummary(cmd.OutOrStdout(), tbl.Describe())
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func writeSummary(w io.Writer, summaries []table.ColumnSummary) error {
	rows := lo.Map(summaries, func(s table.ColumnSummary, _ int) []string {
		return []string{
			s.Name,
			string(s.Type),
			strconv.Itoa(s.Count),
			formatStat(s.Min),
			formatStat(s.Max),
			formatStat(s.Mean),
			formatStat(s.StdDev),
		}
	})

	tw := tablewriter.NewWriter(w)
	tw.Header("column", "type", "count", "min", "max", "mean", "std")
	if err := tw.Bulk(rows); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(tw.Render())
}
