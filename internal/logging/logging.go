// Package logging builds the structured logger shared by commands, the
// remote loaders and the interactive UI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a debug-level text logger writing to w, or a discarding
// logger when debug is false.
func New(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return Discard()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// OpenFile returns a debug logger appending to path, and a close func.
// The interactive UI logs here because it owns the terminal.
func OpenFile(path string, debug bool) (*slog.Logger, func() error, error) {
	if !debug {
		return Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	return New(f, true), f.Close, nil
}

type ctxKey struct{}

// With returns a copy of ctx carrying logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From returns the logger carried by ctx, or a discarding logger.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return Discard()
}
