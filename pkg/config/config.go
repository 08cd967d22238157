package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Defaults.
const (
	DefaultDevice    = "ardupar"
	DefaultCapacity  = 32
	DefaultTimeout   = 50 * time.Millisecond
	DefaultStoreSize = 1024
	DefaultLogLevel  = "info"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the device configuration.
type Config struct {
	// Device names the device in logs and mDNS.
	Device string `yaml:"device"`

	// Capacity bounds the parameter registry.
	Capacity int `yaml:"capacity"`

	// Timeout is the inter-byte silence that ends a command.
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Store      StoreConfig  `yaml:"store"`
	Bridge     BridgeConfig `yaml:"bridge"`
	Events     EventsConfig `yaml:"events"`
	Parameters []ParamDecl  `yaml:"parameters"`
}

// StoreConfig selects the non-volatile store.
type StoreConfig struct {
	// Kind is memory, file or sqlite.
	Kind string `yaml:"kind"`

	// Path is the backing file for file and sqlite stores.
	Path string `yaml:"path"`

	// Size is the store size in bytes.
	Size int `yaml:"size"`
}

// BridgeConfig enables the UDP message bridge.
type BridgeConfig struct {
	// Listen is the UDP address; empty disables the bridge.
	Listen string `yaml:"listen"`

	// Advertise publishes the bridge over mDNS.
	Advertise bool `yaml:"advertise"`

	// Interface restricts mDNS to one network interface.
	Interface string `yaml:"interface"`
}

// EventsConfig configures change-event capture.
type EventsConfig struct {
	// Path is a CBOR event log file; empty disables file capture.
	Path string `yaml:"path"`

	// Console mirrors events to the operational log at debug level.
	Console bool `yaml:"console"`
}

// DefaultConfig returns a configuration with an in-memory store and no
// bridge.
func DefaultConfig() *Config {
	return &Config{
		Device:   DefaultDevice,
		Capacity: DefaultCapacity,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
		Store: StoreConfig{
			Kind: StoreMemory,
			Size: DefaultStoreSize,
		},
	}
}

// Parse decodes YAML on top of DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration, including every parameter declaration.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalid, c.Capacity)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalid, c.Timeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Store.validate(); err != nil {
		return err
	}
	if len(c.Parameters) > c.Capacity {
		return fmt.Errorf("%w: %d parameters exceed capacity %d", ErrInvalid, len(c.Parameters), c.Capacity)
	}

	seen := make(map[string]bool, len(c.Parameters))
	for i := range c.Parameters {
		d := &c.Parameters[i]
		if err := d.validate(); err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
		if seen[d.Command] {
			return fmt.Errorf("%w: duplicate command %q", ErrInvalid, d.Command)
		}
		seen[d.Command] = true
	}
	return nil
}

func (s StoreConfig) validate() error {
	switch s.Kind {
	case StoreMemory:
	case StoreFile, StoreSQLite:
		if s.Path == "" {
			return fmt.Errorf("%w: %s store requires a path", ErrInvalid, s.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrInvalid, s.Kind)
	}
	if s.Size <= 0 {
		return fmt.Errorf("%w: store size must be positive, got %d", ErrInvalid, s.Size)
	}
	return nil
}

// ApplyEnv overrides values from environment variables:
// ARDUPAR_LOG_LEVEL, ARDUPAR_STORE_KIND, ARDUPAR_STORE_PATH,
// ARDUPAR_BRIDGE_LISTEN and ARDUPAR_TIMEOUT. Pass os.Getenv in production.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("ARDUPAR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("ARDUPAR_STORE_KIND"); v != "" {
		c.Store.Kind = v
	}
	if v := getenv("ARDUPAR_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := getenv("ARDUPAR_BRIDGE_LISTEN"); v != "" {
		c.Bridge.Listen = v
	}
	if v := getenv("ARDUPAR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: ARDUPAR_TIMEOUT: %v", ErrInvalid, err)
		}
		c.Timeout = d
	}
	return c.Validate()
}

// ParseLevel maps a level name to an slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalid, s)
	}
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// BridgePort returns the numeric port of Bridge.Listen, or 0.
func (c *Config) BridgePort() int {
	i := strings.LastIndexByte(c.Bridge.Listen, ':')
	if i < 0 {
		return 0
	}
	p, err := strconv.Atoi(c.Bridge.Listen[i+1:])
	if err != nil {
		return 0
	}
	return p
}
