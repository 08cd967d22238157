// Package log captures parameter change events.
//
// Every value applied to a parameter (from the serial command stream, a
// bridge message or non-volatile storage) and every registration produces
// an Event. Capture is separate from operational logging (slog): events are
// a machine-readable trace of what changed, when, and from where.
//
// # Basic Usage
//
//	// For development: mirror events to the console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: append to a binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/lib/ardupar/device.plog")
//
//	// Both
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys. The
// ardupar-log CLI tool provides viewing, filtering and statistics.
package log
