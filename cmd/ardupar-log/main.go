// Command ardupar-log is a tool for viewing and analyzing parameter change logs.
//
// Change logs are written by ardupar-device when run with the -event-log
// flag (or events.path in its configuration).
//
// Usage:
//
//	ardupar-log <command> [flags] <file.alog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	ardupar-log view device.alog
//
//	# View only changes to one parameter
//	ardupar-log view --command LED device.alog
//
//	# View only values that arrived over the bridge
//	ardupar-log view --origin bridge device.alog
//
//	# Export to JSONL
//	ardupar-log export --format jsonl device.alog
//
//	# Filter by session and save to new file
//	ardupar-log filter --session 3f2a9c1e-... -o filtered.alog device.alog
//
//	# Show statistics
//	ardupar-log stats device.alog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ardupar/ardupar-go/cmd/ardupar-log/commands"
)

const usage = `ardupar-log - ArduPar Change Log Analyzer

Usage:
  ardupar-log <command> [flags] <file.alog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "ardupar-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the shared filter flags on fs.
func filterFlags(fs *flag.FlagSet, opts *commands.FilterOptions) {
	fs.StringVar(&opts.Command, "command", "", "Filter by parameter command")
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Origin, "origin", "", "Filter by origin (serial, bridge, storage, setup)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (update, trigger, load, register, reject)")
}

// parseArgs parses fs and returns the log file path, exiting on error.
func parseArgs(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `ardupar-log view - View log file in human-readable format

Usage:
  ardupar-log view [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	var opts commands.FilterOptions
	filterFlags(fs, &opts)
	path := parseArgs(fs, args)

	if err := commands.RunView(path, opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `ardupar-log export - Export log file to JSON or CSV format

Usage:
  ardupar-log export [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := parseArgs(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `ardupar-log filter - Filter log file and write to new file

Usage:
  ardupar-log filter [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	filterFlags(fs, &opts)
	path := parseArgs(fs, args)

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunFilter(path, opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `ardupar-log stats - Show statistics about the log file

Usage:
  ardupar-log stats <file.alog>

`)
	}

	path := parseArgs(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
