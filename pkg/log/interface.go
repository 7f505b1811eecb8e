// Package log provides a structured logging interface for the housing analysis.
//
// This package defines a minimal, slog-compatible logging interface so that the
// table, linear, metrics and visualize packages can log without depending on a
// concrete backend. Two backends are provided: the standard library log/slog
// with a JSON handler (SetupLogger) and zerolog (NewZerologLogger). Tests use
// TestLogger, which captures JSON lines in memory.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ComponentKey, "linear",
//	    log.ModelNameKey, "ClosedForm",
//	)
//	logger.Info("fit finished",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 19648,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. A value implementing error is
// rendered with its message; backends that understand cockroachdb/errors
// stacks attach them under StacktraceAttrKey.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	//
	// Example:
	//   logger.Info("table loaded",
	//       log.SamplesKey, 20640,
	//       log.FeaturesKey, 9,
	//   )
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	//
	// Example:
	//   logger.Error("fit failed",
	//       "error", err,
	//       log.OperationKey, log.OperationFit,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
