// Package eventlog persists what the engine did: an append-only JSONL event
// log, a CSV batch summary and the debug collector of unresolved fields.
package eventlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/easy-apply/internal/apply"
)

// Options configures a Logger
type Options struct {
	// Clock overrides the event timestamp source
	Clock zapcore.Clock
}

// Logger writes one JSON object per engine event
type Logger struct {
	zl     *zap.Logger
	closer io.Closer
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		MessageKey:     "event",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
}

// New creates a Logger writing to w
func New(w io.Writer, opts Options) *Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), zapcore.DebugLevel)
	var zapOpts []zap.Option
	if opts.Clock != nil {
		zapOpts = append(zapOpts, zap.WithClock(opts.Clock))
	}
	return &Logger{zl: zap.New(core, zapOpts...)}
}

// Open creates a Logger appending to the file at path
func Open(path string, opts Options) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &WriteError{Message: fmt.Sprintf("failed to open event log %s", path), Cause: err}
	}
	l := New(f, opts)
	l.closer = f
	return l, nil
}

// Record writes an event. It matches apply.EventCallback.
func (l *Logger) Record(e apply.Event) {
	fields := []zap.Field{
		zap.String("job_id", e.JobID),
		zap.String("state", string(e.State)),
	}
	fields = appendNonEmpty(fields, "reason", e.Reason)
	fields = appendNonEmpty(fields, "details", e.Details)
	fields = appendNonEmpty(fields, "field_type", e.FieldType)
	fields = appendNonEmpty(fields, "question", e.Question)
	if len(e.Options) > 0 {
		fields = append(fields, zap.Strings("options", e.Options))
	}
	fields = appendNonEmpty(fields, "classification", e.Classification)
	fields = appendNonEmpty(fields, "confidence", string(e.Confidence))
	fields = appendNonEmpty(fields, "matched_key", e.MatchedKey)
	fields = appendNonEmpty(fields, "resolved_value", e.Value)

	if r := e.Result; r != nil {
		fields = append(fields,
			zap.String("result", string(r.Outcome)),
			zap.String("skip_reason", string(r.SkipReason)),
			zap.Duration("elapsed_seconds", r.Elapsed),
			zap.Int("fields_resolved_count", r.FieldsResolved),
			zap.Int("fields_unresolved_count", r.FieldsUnresolved),
			zap.Bool("confidence_floor_hit", r.ConfidenceFloorHit),
		)
	}
	l.zl.Info(string(e.Kind), fields...)
}

// Close flushes the log and closes the file opened by Open
func (l *Logger) Close() error {
	// Sync fails on non-file writers such as stdout; that is not a write failure
	_ = l.zl.Sync()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func appendNonEmpty(fields []zap.Field, key, value string) []zap.Field {
	if strings.TrimSpace(value) == "" {
		return fields
	}
	return append(fields, zap.String(key, value))
}

// FixedClock is a zapcore.Clock that always reports the same time
type FixedClock time.Time

// Now implements zapcore.Clock
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// NewTicker implements zapcore.Clock
func (c FixedClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}
