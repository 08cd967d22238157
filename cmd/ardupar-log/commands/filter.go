package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ardupar/ardupar-go/pkg/log"
)

// FilterOptions specifies filtering criteria shared by the commands.
type FilterOptions struct {
	Output    string
	Command   string
	SessionID string
	TimeStart string
	TimeEnd   string
	Origin    string
	Category  string
}

// Build converts the string options into a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{
		Command:   o.Command,
		SessionID: o.SessionID,
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if o.Origin != "" {
		v, err := ParseOriginFlag(o.Origin)
		if err != nil {
			return filter, err
		}
		filter.Origin = &v
	}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	return filter, nil
}

// ParseOriginFlag parses an origin string from a command-line flag (case-insensitive).
func ParseOriginFlag(s string) (log.Origin, error) {
	if o, ok := log.ParseOrigin(strings.ToUpper(s)); ok {
		return o, nil
	}
	return 0, fmt.Errorf("invalid origin: %s (must be serial, bridge, storage, or setup)", s)
}

// ParseCategoryFlag parses a category string from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	if c, ok := log.ParseCategory(strings.ToUpper(s)); ok {
		return c, nil
	}
	return 0, fmt.Errorf("invalid category: %s (must be update, trigger, load, register, or reject)", s)
}

// RunFilter filters the log file and writes matching events to a new file.
func RunFilter(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, opts.Output)
	return nil
}
