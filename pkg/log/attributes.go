// Package log defines standard attribute keys for the analysis pipeline.
//
// Using these keys keeps log records from the loader, the fitters, the
// evaluator and the renderer filterable by the same names. Keys follow a
// hierarchical naming convention (e.g. "ml.operation", "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the fitter or component type.
	// Examples: "ClosedForm", "NormalEquations", "PlotRenderer"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "load", "filter", "scale", "fit", "predict", "evaluate", "render"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "table", "linear", "metrics", "visualize", "pipeline"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of columns.
	FeaturesKey = "data.features"

	// ColumnKey names the column an operation applies to.
	ColumnKey = "data.column"

	// PathKey is the path of a file read or written.
	PathKey = "data.path"

	// DroppedKey is the number of rows removed by a filter.
	DroppedKey = "data.dropped"
)

// Performance and Result Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// SlopeKey and InterceptKey record fitted model parameters.
	SlopeKey     = "model.slope"
	InterceptKey = "model.intercept"

	// RMSEKey records the root mean squared error of an evaluation.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationLoad     = "load"
	OperationFilter   = "filter"
	OperationScale    = "scale"
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"
	OperationRender   = "render"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorZeroVariance      = "ZERO_VARIANCE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
