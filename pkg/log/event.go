package log

import (
	"time"
)

// Event represents one parameter change or lifecycle event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the registry instance (UUID) that produced the event.
	SessionID string `cbor:"2,keyasint"`

	// Origin is where the value came from.
	Origin Origin `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Command is the parameter's command string.
	Command string `cbor:"5,keyasint"`

	// Kind is the parameter variant name ("int", "long", "float", "string", "trigger").
	Kind string `cbor:"6,keyasint,omitempty"`

	// Value is the applied value, formatted as in the status dump.
	Value string `cbor:"7,keyasint,omitempty"`

	// Address is the storage address, nil for volatile parameters.
	Address *int `cbor:"8,keyasint,omitempty"`
}

// Origin indicates where an event's value came from.
type Origin uint8

const (
	// OriginSerial is the framed serial command stream.
	OriginSerial Origin = 0
	// OriginBridge is a network bridge message.
	OriginBridge Origin = 1
	// OriginStorage is non-volatile storage (load at setup).
	OriginStorage Origin = 2
	// OriginSetup is parameter registration.
	OriginSetup Origin = 3
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginSerial:
		return "SERIAL"
	case OriginBridge:
		return "BRIDGE"
	case OriginStorage:
		return "STORAGE"
	case OriginSetup:
		return "SETUP"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryUpdate indicates a value was applied.
	CategoryUpdate Category = 0
	// CategoryTrigger indicates a trigger action was invoked.
	CategoryTrigger Category = 1
	// CategoryLoad indicates a value was loaded from storage.
	CategoryLoad Category = 2
	// CategoryRegister indicates a parameter was registered.
	CategoryRegister Category = 3
	// CategoryReject indicates a registration was rejected (capacity exceeded).
	CategoryReject Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryUpdate:
		return "UPDATE"
	case CategoryTrigger:
		return "TRIGGER"
	case CategoryLoad:
		return "LOAD"
	case CategoryRegister:
		return "REGISTER"
	case CategoryReject:
		return "REJECT"
	default:
		return "UNKNOWN"
	}
}

// ParseOrigin returns the origin for a case-sensitive upper-case name.
func ParseOrigin(s string) (Origin, bool) {
	for o := OriginSerial; o <= OriginSetup; o++ {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// ParseCategory returns the category for a case-sensitive upper-case name.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryUpdate; c <= CategoryReject; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// AddressPtr returns a pointer to addr, or nil when addr is negative.
func AddressPtr(addr int) *int {
	if addr < 0 {
		return nil
	}
	return &addr
}
