// Package obslog provides structured operational logging for a migration
// run. It is strictly an ambient-visibility layer: spec.md §7 requires the
// core to perform no console output of its own and to report outcomes only
// through migrate.Report. obslog exists alongside that report for operators
// who want a live, leveled trace of a run (useful when a migration touches
// dozens of dealer themes in one batch) — it is never consulted to answer
// "did the migration succeed," only to watch one happen.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger scoped to one migration run, pre-populated
// with the fields every log line from that run should carry.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger. debug selects a development encoder (console,
// timestamps, debug level); otherwise it builds a production JSON encoder
// at info level, matching the two-mode split the rest of the corpus's
// logging setups make between local runs and captured output.
func New(debug bool) (*Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Nop returns a Logger that discards everything, for callers (tests,
// library consumers) that don't want the run to log at all.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// ForRun scopes the logger to one migration run and dealer slug — every
// subsequent line this Logger emits carries both fields.
func (l *Logger) ForRun(runID, slug string) *Logger {
	return &Logger{z: l.z.With(zap.String("run_id", runID), zap.String("slug", slug))}
}

// ForSheet further scopes the logger to one target sheet within the run.
func (l *Logger) ForSheet(sheet string) *Logger {
	return &Logger{z: l.z.With(zap.String("sheet", sheet))}
}

// Info logs an informational line, optionally tagged with a block category.
func (l *Logger) Info(msg string, category string) {
	if category == "" {
		l.z.Info(msg)
		return
	}
	l.z.Info(msg, zap.String("category", category))
}

// Warn logs a warning line — used for the non-fatal rewrite.Warning values
// a run accumulates (spec.md §7: warnings never block a write).
func (l *Logger) Warn(msg string, category string) {
	if category == "" {
		l.z.Warn(msg)
		return
	}
	l.z.Warn(msg, zap.String("category", category))
}

// Error logs a failure. err is attached as a structured field rather than
// interpolated into msg, so log aggregation can group by message shape.
func (l *Logger) Error(msg string, err error) {
	l.z.Error(msg, zap.Error(err))
}

// Sync flushes any buffered log entries. Call it once at process exit;
// the error it returns on a console-backed logger (stderr sync failing on
// some platforms) is safe to ignore, as zap's own documentation notes.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
