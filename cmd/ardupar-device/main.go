// Command ardupar-device is a reference parameter device.
//
// It declares parameters from a YAML configuration, reads commands from an
// interactive console (or a raw byte stream on stdin) and optionally
// accepts bridge messages over UDP.
//
// Usage:
//
//	ardupar-device [flags]
//
// Flags:
//
//	-config string      Configuration file path
//	-store string       Store kind: memory, file, sqlite
//	-store-path string  Store file path (file and sqlite stores)
//	-timeout duration   Inter-byte silence that ends a command (default 50ms)
//	-bridge string      UDP bridge listen address, e.g. :9000
//	-advertise          Advertise the bridge over mDNS
//	-event-log string   Append change events to this CBOR file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-raw                Read a raw byte stream from stdin instead of the console
//
// Every line typed at the console is fed to the command framer as if it
// arrived on a serial line. The built-in trigger DUMP prints the status
// dump.
//
// Examples:
//
//	# Interactive device with a persistent file store
//	ardupar-device -config kitchen.yaml -store file -store-path kitchen.eeprom
//
//	# Accept bridge messages and advertise them
//	ardupar-device -config kitchen.yaml -bridge :9000 -advertise
//
//	# Feed commands from a serial port
//	ardupar-device -config kitchen.yaml -raw < /dev/ttyUSB0
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardupar/ardupar-go/cmd/ardupar-device/interactive"
	"github.com/ardupar/ardupar-go/pkg/bridge"
	"github.com/ardupar/ardupar-go/pkg/config"
	"github.com/ardupar/ardupar-go/pkg/discovery"
	"github.com/ardupar/ardupar-go/pkg/framer"
	plog "github.com/ardupar/ardupar-go/pkg/log"
	"github.com/ardupar/ardupar-go/pkg/param"
	"github.com/ardupar/ardupar-go/pkg/status"
)

// pollInterval is how long the update loop sleeps when no bytes are pending.
const pollInterval = time.Millisecond

var (
	configFile string
	storeKind  string
	storePath  string
	timeout    time.Duration
	bridgeAddr string
	advertise  bool
	eventLog   string
	logLevel   string
	raw        bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.StringVar(&storeKind, "store", "", "Store kind: memory, file, sqlite")
	flag.StringVar(&storePath, "store-path", "", "Store file path (file and sqlite stores)")
	flag.DurationVar(&timeout, "timeout", config.DefaultTimeout, "Inter-byte silence that ends a command")
	flag.StringVar(&bridgeAddr, "bridge", "", "UDP bridge listen address, e.g. :9000")
	flag.BoolVar(&advertise, "advertise", false, "Advertise the bridge over mDNS")
	flag.StringVar(&eventLog, "event-log", "", "Append change events to this CBOR file")
	flag.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	flag.BoolVar(&raw, "raw", false, "Read a raw byte stream from stdin instead of the console")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig starts from the config file (or defaults), then applies
// explicitly set flags and finally the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			cfg.Store.Kind = storeKind
		case "store-path":
			cfg.Store.Path = storePath
		case "timeout":
			cfg.Timeout = timeout
		case "bridge":
			cfg.Bridge.Listen = bridgeAddr
		case "advertise":
			cfg.Bridge.Advertise = advertise
		case "event-log":
			cfg.Events.Path = eventLog
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The console owns the terminal; logs go through it so they do not
	// corrupt the prompt.
	var (
		console *interactive.Console
		src     framer.Source
		stdout  io.Writer = os.Stdout
		stderr  io.Writer = os.Stderr
	)
	queue := framer.NewQueueSource()
	if raw {
		src = framer.NewReaderSource(os.Stdin, 0)
	} else {
		console, err = interactive.New(queue, cfg.Device)
		if err != nil {
			return err
		}
		src = queue
		stdout, stderr = console.Stdout(), console.Stderr()
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	logger.Info("ardupar device starting",
		"device", cfg.Device,
		"store", cfg.Store.Kind,
		"timeout", cfg.Timeout,
		"bridge", cfg.Bridge.Listen)

	store, closeStore, err := cfg.Store.OpenStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	events, closeEvents, err := openEventLogger(cfg.Events, logger)
	if err != nil {
		return err
	}
	defer closeEvents()

	var br bridge.Bridge = bridge.Nop{}
	router := bridge.NewRouter()
	if cfg.Bridge.Listen != "" {
		br = router
	}

	reg := param.NewRegistry(param.Config{
		Capacity:    cfg.Capacity,
		Store:       store,
		Bridge:      br,
		Logger:      logger,
		EventLogger: events,
	})

	dump := func() {
		sink := status.NewTextSink(stdout)
		if err := reg.Dump(sink); err != nil {
			logger.Warn("dump failed", "error", err)
		}
		_ = sink.Flush()
	}

	params, err := config.Declare(reg, cfg.Parameters,
		map[string]func(){"DUMP": dump},
		func(cmd string) { logger.Info("trigger", "command", cmd) })
	if err != nil {
		logger.Warn("parameter declaration incomplete", "error", err)
	}
	if _, ok := reg.Lookup("DUMP"); !ok {
		if _, err := reg.Callback("DUMP", dump); err != nil {
			logger.Warn("built-in DUMP not registered", "error", err)
		}
	}
	for _, o := range reg.Overlaps() {
		logger.Warn("command prefix overlap", "prefix", o.Prefix, "command", o.Command)
	}
	logger.Info("parameters ready", "declared", len(params), "registered", reg.Len(), "capacity", reg.Capacity())

	if cfg.Bridge.Listen != "" {
		srv := bridge.NewUDPServer(cfg.Bridge.Listen, bridge.Serialized(router, reg.Locker()), logger)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer srv.Stop()
		logger.Info("bridge listening", "addr", srv.Addr().String())

		if cfg.Bridge.Advertise {
			dcfg := discovery.DefaultConfig()
			dcfg.Interface = cfg.Bridge.Interface
			adv := discovery.NewAdvertiser(dcfg)
			port := cfg.BridgePort()
			if ua, ok := srv.Addr().(*net.UDPAddr); ok {
				port = ua.Port
			}
			info := &discovery.Info{Device: cfg.Device, Port: uint16(port), Parameters: reg.Len()}
			if err := adv.Advertise(ctx, info); err != nil {
				logger.Warn("mDNS advertising failed", "error", err)
			} else {
				defer adv.Stop()
				logger.Info("advertising bridge", "service", discovery.ServiceType, "instance", cfg.Device)
			}
		}
	}

	f := framer.New(src, cfg.Timeout)
	go updateLoop(ctx, reg, f)

	if console != nil {
		go console.Run(ctx, cancel, reg)
	} else if rs, ok := src.(*framer.ReaderSource); ok {
		go func() {
			<-rs.Done()
			if err := rs.Err(); err != nil && !errors.Is(err, io.EOF) {
				logger.Warn("input closed", "error", err)
			}
			// Let the framer drain what is still buffered.
			time.Sleep(2 * cfg.Timeout)
			cancel()
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	cancel()
	logger.Info("shutting down")
	return nil
}

// updateLoop polls the framer and dispatches commands until ctx ends.
func updateLoop(ctx context.Context, reg *param.Registry, f *framer.Framer) {
	for ctx.Err() == nil {
		if !reg.Update(f) {
			time.Sleep(pollInterval)
		}
	}
}

func openEventLogger(ec config.EventsConfig, logger *slog.Logger) (plog.Logger, func() error, error) {
	var (
		loggers []plog.Logger
		closer  = func() error { return nil }
	)
	if ec.Console {
		loggers = append(loggers, plog.NewSlogAdapter(logger))
	}
	if ec.Path != "" {
		fl, err := plog.NewFileLogger(ec.Path)
		if err != nil {
			return nil, closer, fmt.Errorf("open event log: %w", err)
		}
		loggers = append(loggers, fl)
		closer = fl.Close
	}
	if len(loggers) == 0 {
		return nil, closer, nil
	}
	return plog.NewMultiLogger(loggers...), closer, nil
}
