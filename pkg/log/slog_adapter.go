package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes change events to an slog.Logger.
// Useful for development when you want to see parameter changes in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("origin", event.Origin.String()),
		slog.String("category", event.Category.String()),
		slog.String("command", event.Command),
	}

	if event.Kind != "" {
		attrs = append(attrs, slog.String("kind", event.Kind))
	}
	if event.Value != "" {
		attrs = append(attrs, slog.String("value", event.Value))
	}
	if event.Address != nil {
		attrs = append(attrs, slog.Int("address", *event.Address))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "parameter", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
