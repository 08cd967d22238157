// Command ardupar-send sends one bridge message to a device.
//
// Usage:
//
//	ardupar-send [flags] <address> [<type> <value>]...
//
// Each argument is a type tag followed by its value: i (32-bit integer),
// f (32-bit float) or s (string). A message without arguments fires a
// trigger.
//
// Flags:
//
//	-addr string       Device bridge address (host:port); browses mDNS when empty
//	-device string     Device name to look for when browsing
//	-iface string      Network interface for mDNS browsing
//	-timeout duration  Browse and send timeout (default 3s)
//
// Examples:
//
//	# Set LED to 3 on a known device
//	ardupar-send -addr 192.168.1.20:9000 LED i 3
//
//	# Set a string on the device named kitchen, found via mDNS
//	ardupar-send -device kitchen NAME s "front door"
//
//	# Fire the status dump
//	ardupar-send -addr localhost:9000 DUMP
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ardupar/ardupar-go/pkg/bridge"
	"github.com/ardupar/ardupar-go/pkg/discovery"
)

var (
	addr    string
	device  string
	iface   string
	timeout time.Duration
)

func init() {
	flag.StringVar(&addr, "addr", "", "Device bridge address (host:port); browses mDNS when empty")
	flag.StringVar(&device, "device", "", "Device name to look for when browsing")
	flag.StringVar(&iface, "iface", "", "Network interface for mDNS browsing")
	flag.DurationVar(&timeout, "timeout", discovery.BrowseTimeout, "Browse and send timeout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `ardupar-send - Send a bridge message to an ArduPar device

Usage:
  ardupar-send [flags] <address> [<type> <value>]...

Types:
  i   32-bit integer
  f   32-bit float
  s   string

Flags:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if flag.NArg() < 1 {
		flag.Usage()
		return fmt.Errorf("message address required")
	}

	msg, err := ParseMessage(flag.Args())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	target := addr
	if target == "" {
		cfg := discovery.DefaultConfig()
		cfg.Interface = iface
		svc, err := discovery.NewBrowser(cfg).Find(ctx, device)
		if err != nil {
			return fmt.Errorf("find device: %w", err)
		}
		target = svc.HostPort()
		fmt.Fprintf(os.Stderr, "Found %s at %s (%d parameters)\n", svc.InstanceName, target, svc.Parameters)
	}

	client, err := bridge.Dial(ctx, target)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Send(msg); err != nil {
		return err
	}
	fmt.Printf("Sent %s to %s\n", msg, client.RemoteAddr())
	return nil
}
