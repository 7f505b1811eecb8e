package linear

import "github.com/YuminosukeSato/housing/pkg/log"

// DefaultTolerance is the smallest standard deviation of the feature,
// relative to its mean, that still counts as variance. It sits a few ulps
// above the rounding error of the mean itself.
const DefaultTolerance = 4 * 0x1p-52

type options struct {
	tol    float64
	logger log.Logger
}

func defaultOptions() options {
	return options{tol: DefaultTolerance}
}

// Option is a function that configures a fitter
type Option func(*options)

// WithTol sets the relative tolerance for the zero-variance check: the fit
// fails when the standard deviation of x is at most tol·|mean(x)|. A negative
// value disables the relative check so only identical feature values are
// rejected.
func WithTol(tol float64) Option {
	return func(o *options) {
		o.tol = tol
	}
}

// WithLogger sets the logger that receives fit diagnostics
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func (o options) log() log.Logger {
	if o.logger != nil {
		return o.logger
	}
	return log.GetLogger()
}
