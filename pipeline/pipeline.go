// Package pipeline runs the housing analysis end to end: load, filter,
// scale, fit, evaluate and plot.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/housing/core/model"
	"github.com/YuminosukeSato/housing/metrics"
	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/pkg/log"
	"github.com/YuminosukeSato/housing/table"
	"github.com/YuminosukeSato/housing/visualize"
)

// TableReader loads a table from a path.
type TableReader interface {
	Read(path string) (*table.Table, error)
}

var _ TableReader = (*table.CSVReader)(nil)

// Options selects the data and columns a run works on.
type Options struct {
	DataPath     string
	Feature      string
	Label        string
	FilterColumn string
	// FilterMax keeps rows whose FilterColumn value is strictly below it.
	FilterMax    float64
	LabelDivisor float64
	PlotTitle    string
	// Required lists further columns that must be present and numeric.
	Required []string
}

// DefaultOptions returns the options of the California housing analysis.
func DefaultOptions() Options {
	return Options{
		DataPath:     "Data/california_housing.csv",
		Feature:      "median_income",
		Label:        "median_house_value",
		FilterColumn: "median_house_value",
		FilterMax:    500000,
		LabelDivisor: 1000,
		PlotTitle:    "Training",
		Required:     []string{"total_rooms"},
	}
}

// Result holds everything a run produced.
type Result struct {
	Loaded      int
	Kept        int
	Model       model.LinearModel
	Feature     []float64
	Labels      []float64
	Predictions []float64
	Report      metrics.Report
	Scatter     visualize.Scatter
}

// Pipeline wires the stages together. Renderer may be nil to skip plotting.
type Pipeline struct {
	Reader   TableReader
	Fitter   model.LinearFitter
	Renderer visualize.ScatterRenderer
	Out      io.Writer
	Logger   log.Logger
}

func (p *Pipeline) logger() log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.GetLogger()
}

func (p *Pipeline) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return io.Discard
}

// Run executes one analysis. Errors are wrapped with the name of the stage
// that failed.
func (p *Pipeline) Run(opts Options) (*Result, error) {
	if p.Reader == nil || p.Fitter == nil {
		return nil, errors.NewValueError("Pipeline.Run", "reader and fitter are required")
	}
	logger := p.logger().With(log.ComponentKey, "pipeline")
	out := p.out()
	start := time.Now()

	if _, err := fmt.Fprintf(out, "Folder: %s\n", opts.DataPath); err != nil {
		return nil, errors.WithStack(err)
	}

	tbl, err := p.Reader.Read(opts.DataPath)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}
	res := &Result{Loaded: tbl.Nrow()}
	logger.Info("data loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, opts.DataPath,
		log.SamplesKey, tbl.Nrow(),
		log.FeaturesKey, tbl.Ncol(),
	)

	required := append([]string{opts.Feature, opts.Label, opts.FilterColumn}, opts.Required...)
	if err := tbl.Require(required...); err != nil {
		return nil, errors.Wrap(err, "require")
	}

	tbl, err = tbl.Where(opts.FilterColumn, series.Less, opts.FilterMax)
	if err != nil {
		return nil, errors.Wrap(err, "filter")
	}
	res.Kept = tbl.Nrow()
	logger.Info("rows filtered",
		log.OperationKey, log.OperationFilter,
		log.ColumnKey, opts.FilterColumn,
		log.SamplesKey, res.Kept,
		log.DroppedKey, res.Loaded-res.Kept,
	)
	if res.Kept == 0 {
		return nil, errors.Wrapf(errors.ErrNoRows, "filter %s < %v", opts.FilterColumn, opts.FilterMax)
	}

	if err := tbl.Scale(opts.Label, opts.LabelDivisor); err != nil {
		return nil, errors.Wrap(err, "scale")
	}
	logger.Debug("label scaled",
		log.OperationKey, log.OperationScale,
		log.ColumnKey, opts.Label,
		"divisor", opts.LabelDivisor,
	)

	feature, err := tbl.Column(opts.Feature)
	if err != nil {
		return nil, errors.Wrap(err, "columns")
	}
	labels, err := tbl.Column(opts.Label)
	if err != nil {
		return nil, errors.Wrap(err, "columns")
	}
	res.Feature, res.Labels = feature.Values(), labels.Values()

	res.Model, err = p.Fitter.Fit(res.Feature, res.Labels)
	if err != nil {
		return nil, errors.Wrap(err, "fit")
	}
	logger.Info("model fitted",
		log.OperationKey, log.OperationFit,
		log.SlopeKey, res.Model.Slope(),
		log.InterceptKey, res.Model.Intercept(),
	)

	res.Predictions = res.Model.Transform(res.Feature)
	res.Report, err = metrics.Evaluate(res.Model, res.Labels, res.Predictions)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}
	if err := res.Report.Write(out); err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}
	logger.Info("model evaluated",
		log.OperationKey, log.OperationEvaluate,
		log.RMSEKey, res.Report.RMSE,
		log.R2ScoreKey, res.Report.R2,
	)

	res.Scatter, err = visualize.BuildScatter(opts.PlotTitle, opts.Feature, opts.Label,
		res.Feature, res.Predictions, res.Labels)
	if err != nil {
		return nil, errors.Wrap(err, "render")
	}
	if p.Renderer != nil {
		if err := p.Renderer.Render(res.Scatter); err != nil {
			return nil, errors.Wrap(err, "render")
		}
	}

	logger.Debug("run finished", log.DurationMsKey, time.Since(start).Milliseconds())
	return res, nil
}
