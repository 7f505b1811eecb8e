// Package housing fits a single-feature ordinary least squares model of
// median house value against median income on the California housing data.
//
// The analysis loads a CSV file, keeps the rows whose median_house_value is
// below 500000, divides the label by 1000, fits
//
//	median_house_value = slope·median_income + intercept
//
// and reports slope, intercept, label range and RMSE before plotting the
// predictions and the labels against the feature.
//
// # Quick Start
//
//	housing init            # writes housing.toml with the defaults
//	housing run --data Data/california_housing.csv --plot training.png
//
// Output:
//
//	Folder: Data/california_housing.csv
//	Slope:          ...
//	Intercept:      ...
//	Label range:    ...
//	RMSE:           ... 23.71%
//
// The same run from Go:
//
//	p := &pipeline.Pipeline{
//	    Reader:   &table.CSVReader{},
//	    Fitter:   linear.NewClosedForm(),
//	    Renderer: &visualize.PlotRenderer{Path: "training.png"},
//	    Out:      os.Stdout,
//	}
//	res, err := p.Run(pipeline.DefaultOptions())
//
// # Packages
//
//   - table: gota-backed table, CSV loading, row filters, column scaling
//   - preprocessing: constant divisor scaling
//   - core/model: the fitted LinearModel and the LinearFitter interface
//   - linear: closed-form and normal-equations least squares fitters
//   - metrics: MSE, RMSE, MAE, R² and the evaluation Report
//   - visualize: scatter construction and gonum/plot rendering
//   - pipeline: the end-to-end run
//   - config: viper-based configuration with validation
//   - pkg/errors: structured errors and warnings
//   - pkg/log: structured logging over slog and zerolog
//
// # Error Handling
//
// Errors carry stack traces (cockroachdb/errors) and are matched with
// errors.As and errors.Is:
//
//	var colErr *errors.ColumnError
//	if errors.As(err, &colErr) {
//	    // missing or non-numeric column colErr.Column
//	}
//	if errors.Is(err, errors.ErrZeroVariance) {
//	    // the feature column is constant
//	}
package housing
