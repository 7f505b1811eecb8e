package log

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	herrors "github.com/YuminosukeSato/housing/pkg/errors"
)

// ZerologLogger adapts zerolog to Logger. Values implementing
// zerolog.LogObjectMarshaler (the error and warning types of pkg/errors)
// are logged as nested objects.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger creates a zerolog-backed Logger writing to w. With console
// set, records are formatted for humans by zerolog.ConsoleWriter.
func NewZerologLogger(w io.Writer, level Level, console bool) *ZerologLogger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{l: zl}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (z *ZerologLogger) Debug(msg string, fields ...any) { z.write(z.l.Debug(), msg, fields) }
func (z *ZerologLogger) Info(msg string, fields ...any)  { z.write(z.l.Info(), msg, fields) }
func (z *ZerologLogger) Warn(msg string, fields ...any)  { z.write(z.l.Warn(), msg, fields) }
func (z *ZerologLogger) Error(msg string, fields ...any) { z.write(z.l.Error(), msg, fields) }

// With implements Logger.With.
func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.l.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		if err, ok := fields[i+1].(error); ok {
			ctx = ctx.AnErr(key, err)
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &ZerologLogger{l: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return z.l.GetLevel() <= toZerologLevel(level)
}

// RouteWarnings sends warnings raised through pkg/errors.Warn to this logger.
func (z *ZerologLogger) RouteWarnings() {
	herrors.SetZerologWarnFunc(func(w error) {
		ev := z.l.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.Object("warning", m)
		}
		ev.Msg(w.Error())
	})
}

// write adds fields to ev and sends it. A trailing lone error is logged
// under ErrAttrKey.
func (z *ZerologLogger) write(ev *zerolog.Event, msg string, fields []any) {
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			if err, ok := fields[i].(error); ok {
				ev = addField(ev, ErrAttrKey, err)
			}
			break
		}
		ev = addField(ev, fmt.Sprintf("%v", fields[i]), fields[i+1])
	}
	ev.Msg(msg)
}

func addField(ev *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case error:
		ev = ev.AnErr(key, v)
		var detail zerolog.LogObjectMarshaler
		if errors.As(v, &detail) {
			ev = ev.Object(key+"_detail", detail)
		}
		if st := extractStacktrace(v); st != "" {
			ev = ev.Str(StacktraceAttrKey, st)
		}
		return ev
	case zerolog.LogObjectMarshaler:
		return ev.Object(key, v)
	case string:
		return ev.Str(key, v)
	case int:
		return ev.Int(key, v)
	case float64:
		return ev.Float64(key, v)
	case bool:
		return ev.Bool(key, v)
	default:
		return ev.Interface(key, v)
	}
}

// RouteWarnings sends warnings raised through pkg/errors.Warn to l at warn level.
func RouteWarnings(l Logger) {
	if zl, ok := l.(*ZerologLogger); ok {
		zl.RouteWarnings()
		return
	}
	herrors.SetZerologWarnFunc(nil)
	herrors.SetWarningHandler(func(w error) {
		l.Warn(w.Error(), "warning", w)
	})
}
