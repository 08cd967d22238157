package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ardupar/ardupar-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByOrigin   map[log.Origin]int
	EventsByCategory map[log.Category]int
	Sessions         map[string]*SessionStats
	Commands         map[string]*CommandStats
	Rejected         int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single registry session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

// CommandStats holds statistics for a single parameter command.
type CommandStats struct {
	Kind      string
	Updates   int
	Triggers  int
	LastValue string
}

// CollectStats reads every event in the log file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByOrigin:   make(map[log.Origin]int),
		EventsByCategory: make(map[log.Category]int),
		Sessions:         make(map[string]*SessionStats),
		Commands:         make(map[string]*CommandStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByOrigin[event.Origin]++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}

	if event.Category == log.CategoryReject {
		s.Rejected++
		return
	}

	cmd, ok := s.Commands[event.Command]
	if !ok {
		cmd = &CommandStats{}
		s.Commands[event.Command] = cmd
	}
	if event.Kind != "" {
		cmd.Kind = event.Kind
	}
	switch event.Category {
	case log.CategoryUpdate:
		cmd.Updates++
		cmd.LastValue = event.Value
	case log.CategoryLoad:
		cmd.LastValue = event.Value
	case log.CategoryTrigger:
		cmd.Triggers++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== ArduPar Change Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Origin:")
	for _, o := range []log.Origin{log.OriginSerial, log.OriginBridge, log.OriginStorage, log.OriginSetup} {
		if count := stats.EventsByOrigin[o]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", o.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, c := range []log.Category{log.CategoryUpdate, log.CategoryTrigger, log.CategoryLoad, log.CategoryRegister, log.CategoryReject} {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))

	if len(stats.Commands) > 0 {
		names := make([]string, 0, len(stats.Commands))
		for name := range stats.Commands {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Parameters:")
		for _, name := range names {
			c := stats.Commands[name]
			if c.Kind == "trigger" {
				fmt.Fprintf(w, "  %-16s %-7s %d triggers\n", name, c.Kind, c.Triggers)
				continue
			}
			fmt.Fprintf(w, "  %-16s %-7s %d updates, last %q\n", name, c.Kind, c.Updates, c.LastValue)
		}
	}

	if stats.Rejected > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Rejected registrations: %d\n", stats.Rejected)
	}
}
