package discovery

import (
	"errors"
	"time"
)

const (
	// ServiceType is the DNS-SD service type of a parameter bridge.
	ServiceType = "_ardupar._udp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default bridge port.
	DefaultPort = 9000

	// WireVersion is advertised in the ver TXT record.
	WireVersion = "1"

	// MaxInstanceNameLen is the DNS label limit for instance names.
	MaxInstanceNameLen = 63

	// BrowseTimeout is the default timeout for Find.
	BrowseTimeout = 3 * time.Second
)

// TXT record keys.
const (
	TXTKeyDevice     = "dev"
	TXTKeyVersion    = "ver"
	TXTKeyParameters = "n"
)

// Errors.
var (
	ErrMissingRequired     = errors.New("missing required field")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrNotFound            = errors.New("service not found")
)

// Info describes an advertised bridge.
type Info struct {
	// Device is the device (instance) name.
	Device string

	// Port is the UDP port of the bridge.
	Port uint16

	// Parameters is the number of registered parameters; 0 omits the record.
	Parameters int
}

// Service is a discovered bridge.
type Service struct {
	InstanceName string
	Host         string
	Port         uint16
	Addresses    []string
	Version      string
	Parameters   int
}
