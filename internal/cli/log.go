// Package cli implements the hierarchy command-line interface.
//
// Every command reads a graph file (YAML or JSON), builds the canonical
// binary partition tree of the weighted graph and prints a result as JSON or
// YAML on stdout:
//   - build: the tree itself (parents, altitudes, MST edges)
//   - attributes: per-node attributes computed by hierarchy.ComputeAttributes
//   - levels: the altitude and region count of every horizontal cut
//   - cut: one horizontal cut, with its nodes and a label per graph vertex
//
// Diagnostics go to stderr through a charmbracelet logger carried in the
// command context; --verbose switches it to debug level.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing timestamped lines to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "hierarchy",
	})
}

// timer logs how long a stage took.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func startTimer(l *log.Logger) *timer {
	return &timer{logger: l, start: time.Now()}
}

// done logs msg at debug level with the elapsed time, rounded to the
// microsecond, followed by keyvals.
func (t *timer) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(t.start).Round(time.Microsecond))
	t.logger.Debug(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
