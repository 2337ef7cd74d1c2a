// Package logger builds the diagnostic logger for conacct. All records go to
// the writer the command designates for diagnostics (stderr in normal runs)
// so they never mix with the primary output stream.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// DiagHandler is a slog handler that renders records as single diagnostic
// lines: "level: message key=value ...".
type DiagHandler struct {
	out   io.Writer
	level slog.Level
	attrs []slog.Attr

	mu *sync.Mutex
}

// NewDiagHandler creates a handler writing to out, dropping records below
// level.
func NewDiagHandler(out io.Writer, level slog.Level) *DiagHandler {
	return &DiagHandler{out: out, level: level, mu: &sync.Mutex{}}
}

func (h *DiagHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *DiagHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.out, "%s: %s", levelLabel(r.Level), r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
		return true
	})
	fmt.Fprintln(h.out)
	return nil
}

func (h *DiagHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup is accepted but flattening is fine for one-shot CLI diagnostics.
func (h *DiagHandler) WithGroup(string) slog.Handler {
	return h
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

// New returns a logger writing to out. Verbose enables debug records; without
// it only warnings and errors surface.
func New(out io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewDiagHandler(out, level))
}
