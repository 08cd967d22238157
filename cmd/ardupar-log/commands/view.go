// Package commands implements the ardupar-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/ardupar/ardupar-go/pkg/log"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a one-line human-readable representation of the event.
//
//	2026-01-28T10:15:32.123456Z [sess:abc12345] SERIAL  UPDATE   LED = 3 @0
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [sess:%s] %-7s %-8s %s",
		ts, shortenSessionID(event.SessionID), event.Origin, event.Category, event.Command)

	if event.Kind != "" {
		fmt.Fprintf(w, " (%s)", event.Kind)
	}
	if event.Value != "" || event.Category == log.CategoryUpdate || event.Category == log.CategoryLoad {
		fmt.Fprintf(w, " = %q", event.Value)
	}
	if event.Address != nil {
		fmt.Fprintf(w, " @%d", *event.Address)
	}
	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// RunView executes the view command.
func RunView(path string, opts FilterOptions, output io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
