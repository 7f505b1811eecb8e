package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// TestLogger records each log call as one JSON line, the same shape the
// JSON backend writes, so tests can assert on stage logs such as
// "table loaded" or "fit finished".
//
//	logger, _ := log.NewTestLogger(log.LevelDebug)
//	fitter := linear.NewClosedForm(linear.WithLogger(logger))
//	...
//	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationFit))
type TestLogger struct {
	buf    *bytes.Buffer
	level  Level
	fields map[string]any
}

var _ Logger = (*TestLogger)(nil)

// NewTestLogger returns a logger that keeps records at level or above, and
// the buffer they are written to.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &TestLogger{buf: buf, level: level, fields: map[string]any{}}, buf
}

func (t *TestLogger) Debug(msg string, args ...any) { t.write(LevelDebug, "DEBUG", msg, args) }
func (t *TestLogger) Info(msg string, args ...any)  { t.write(LevelInfo, "INFO", msg, args) }
func (t *TestLogger) Warn(msg string, args ...any)  { t.write(LevelWarn, "WARN", msg, args) }
func (t *TestLogger) Error(msg string, args ...any) { t.write(LevelError, "ERROR", msg, args) }

// With returns a logger sharing the buffer whose records also carry args.
func (t *TestLogger) With(args ...any) Logger {
	fields := map[string]any{}
	maps.Copy(fields, t.fields)
	addPairs(fields, args)
	return &TestLogger{buf: t.buf, level: t.level, fields: fields}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return t.level <= level
}

func (t *TestLogger) write(level Level, name, msg string, args []any) {
	if level < t.level {
		return
	}
	entry := map[string]any{}
	maps.Copy(entry, t.fields)
	entry["level"] = name
	entry["message"] = msg
	addPairs(entry, args)

	line, err := json.Marshal(entry)
	if err != nil {
		line, _ = json.Marshal(map[string]any{"level": name, "message": msg, "marshal_error": err.Error()})
	}
	t.buf.Write(line)
	t.buf.WriteByte('\n')
}

// addPairs stores key/value pairs; errors are kept as their message.
func addPairs(dst map[string]any, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		v := args[i+1]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		dst[fmt.Sprint(args[i])] = v
	}
}

// Entries decodes the captured records in order. Numbers decode as float64.
func (t *TestLogger) Entries() ([]map[string]any, error) {
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(t.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any record's message contains msg.
func (t *TestLogger) ContainsMessage(msg string) bool {
	entries, err := t.Entries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if m, ok := e["message"].(string); ok && strings.Contains(m, msg) {
			return true
		}
	}
	return false
}

// ContainsField reports whether any record has key set to value, compared
// after the JSON round trip (so counts are float64: ContainsField(SamplesKey, 5.0)).
func (t *TestLogger) ContainsField(key string, value any) bool {
	entries, err := t.Entries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if v, ok := e[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear drops every captured record.
func (t *TestLogger) Clear() {
	t.buf.Reset()
}
