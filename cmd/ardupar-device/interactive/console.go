// Package interactive provides the interactive console for ardupar-device.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
	"github.com/ardupar/ardupar-go/pkg/framer"
	"github.com/ardupar/ardupar-go/pkg/param"
	"github.com/ardupar/ardupar-go/pkg/persistence"
	"github.com/ardupar/ardupar-go/pkg/status"
)

// metaPrefix marks console commands that are handled locally instead of
// being fed to the command framer.
const metaPrefix = ":"

// Input is where typed command lines are delivered.
type Input interface {
	WriteString(s string) (int, error)
}

// Console handles interactive mode for ardupar-device.
type Console struct {
	rl     *readline.Instance
	in     Input
	out    io.Writer
	device string
}

// Compile-time check that the queue source can back a console.
var _ Input = (*framer.QueueSource)(nil)

// New creates a console that feeds typed lines into in. device names the
// device in saved settings files.
func New(in Input, device string) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ardupar> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{rl: rl, in: in, out: rl.Stdout(), device: device}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc, reg *param.Registry) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if !c.Handle(line, reg) {
			cancel()
			return
		}
	}
}

// Handle processes one console line. It returns false when the console
// should exit.
func (c *Console) Handle(line string, reg *param.Registry) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	if !strings.HasPrefix(input, metaPrefix) {
		// Readline strips the newline, so each line becomes one frame.
		_, _ = c.in.WriteString(input)
		return true
	}

	parts := strings.Fields(strings.TrimPrefix(input, metaPrefix))
	if len(parts) == 0 {
		return true
	}
	switch strings.ToLower(parts[0]) {
	case "help", "?":
		c.printHelp()

	case "dump", "d":
		c.cmdDump(reg)

	case "list", "l":
		c.cmdList(reg)

	case "overlaps":
		c.cmdOverlaps(reg)

	case "save":
		c.cmdSave(parts[1:], reg)

	case "restore":
		c.cmdRestore(parts[1:], reg)

	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type ':help' for commands)\n", parts[0])
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
ArduPar Device Console:
  Parameter commands (sent to the device as typed):
    <COMMAND> <value>  - Set a parameter, e.g. LED 3 or NAME kitchen
    <COMMAND>          - Fire a trigger, e.g. DUMP

  Console commands:
    :dump              - Print the status dump
    :list              - List parameters with storage and bridge addresses
    :overlaps          - Show commands that are prefixes of other commands
    :save <file>       - Save all parameter values to a JSON settings file
    :restore <file>    - Apply values from a settings file
    :help              - Show this help
    :quit              - Exit device`)
}

func (c *Console) cmdDump(reg *param.Registry) {
	sink := status.NewTextSink(c.out)
	if err := reg.Dump(sink); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	_ = sink.Flush()
}

func (c *Console) cmdList(reg *param.Registry) {
	params := reg.Parameters()
	if len(params) == 0 {
		fmt.Fprintln(c.out, "No parameters registered")
		return
	}
	fmt.Fprintf(c.out, "%d/%d parameters, next free address %d\n",
		len(params), reg.Capacity(), nextFree(reg.Allocator()))
	for _, p := range params {
		addr := "-"
		if a := p.StorageAddress(); a.IsPersisted() {
			addr = fmt.Sprintf("%d", a)
		}
		fmt.Fprintf(c.out, "  %-16s %-8s eeprom=%-5s bridge=%s\n", p.Command(), p.Kind(), addr, reg.AddressOf(p))
	}
}

func (c *Console) cmdOverlaps(reg *param.Registry) {
	overlaps := reg.Overlaps()
	if len(overlaps) == 0 {
		fmt.Fprintln(c.out, "No overlapping commands")
		return
	}
	for _, o := range overlaps {
		fmt.Fprintf(c.out, "  %s is a prefix of %s\n", o.Prefix, o.Command)
	}
}

func nextFree(a *eeprom.Allocator) eeprom.Address {
	if a == nil {
		return eeprom.NotPersisted
	}
	return a.Next()
}

func (c *Console) cmdSave(args []string, reg *param.Registry) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: :save <file>")
		return
	}
	settings := persistence.Capture(c.device, reg)
	if err := persistence.NewSettingsStore(args[0]).Save(settings); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Saved %d values to %s\n", len(settings.Values), args[0])
}

func (c *Console) cmdRestore(args []string, reg *param.Registry) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: :restore <file>")
		return
	}
	settings, err := persistence.NewSettingsStore(args[0]).Load()
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if settings == nil {
		fmt.Fprintf(c.out, "No settings file at %s\n", args[0])
		return
	}
	res := persistence.Restore(reg, settings)
	fmt.Fprintf(c.out, "Restored %d values from %s\n", res.Applied, args[0])
	for _, cmd := range res.Missing {
		fmt.Fprintf(c.out, "  skipped %s: not registered\n", cmd)
	}
	for _, cmd := range res.Mismatched {
		fmt.Fprintf(c.out, "  skipped %s: kind differs\n", cmd)
	}
}
