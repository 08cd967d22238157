package wire

import (
	"errors"
	"fmt"
)

// Limits.
const (
	// MaxMessageSize is the largest encoded message (one datagram).
	MaxMessageSize = 512

	// MaxArgs is the maximum number of arguments in a message.
	MaxArgs = 16
)

// Message errors.
var (
	ErrEmptyAddress    = errors.New("empty address")
	ErrUnknownArgType  = errors.New("unknown argument type")
	ErrTooManyArgs     = errors.New("too many arguments")
	ErrMessageTooLarge = errors.New("message too large")
)

// ArgType is the type tag of a message argument.
type ArgType byte

const (
	ArgInt    ArgType = 'i'
	ArgFloat  ArgType = 'f'
	ArgString ArgType = 's'
)

// String returns the single-character tag.
func (t ArgType) String() string {
	switch t {
	case ArgInt, ArgFloat, ArgString:
		return string(rune(t))
	default:
		return fmt.Sprintf("ArgType(%d)", byte(t))
	}
}

// Valid returns true for the known tags.
func (t ArgType) Valid() bool {
	return t == ArgInt || t == ArgFloat || t == ArgString
}

// Arg is one typed message argument. Only the field matching Type is meaningful.
type Arg struct {
	Type  ArgType `cbor:"1,keyasint"`
	Int   int32   `cbor:"2,keyasint,omitempty"`
	Float float32 `cbor:"3,keyasint,omitempty"`
	Str   string  `cbor:"4,keyasint,omitempty"`
}

// IntArg creates an 'i' argument.
func IntArg(v int32) Arg { return Arg{Type: ArgInt, Int: v} }

// FloatArg creates an 'f' argument.
func FloatArg(v float32) Arg { return Arg{Type: ArgFloat, Float: v} }

// StringArg creates an 's' argument.
func StringArg(s string) Arg { return Arg{Type: ArgString, Str: s} }

// Message is a bridge message addressed to one parameter.
type Message struct {
	// Address is the target parameter's address (its command string).
	Address string `cbor:"1,keyasint"`

	// Args are the typed arguments.
	Args []Arg `cbor:"2,keyasint,omitempty"`
}

// NewMessage creates a message for address with the given arguments.
func NewMessage(address string, args ...Arg) *Message {
	return &Message{Address: address, Args: args}
}

// Validate checks the address and argument tags.
func (m *Message) Validate() error {
	if m.Address == "" {
		return ErrEmptyAddress
	}
	if len(m.Args) > MaxArgs {
		return fmt.Errorf("%w: %d > %d", ErrTooManyArgs, len(m.Args), MaxArgs)
	}
	for i, a := range m.Args {
		if !a.Type.Valid() {
			return fmt.Errorf("%w: arg %d has tag %d", ErrUnknownArgType, i, byte(a.Type))
		}
	}
	return nil
}

// Arg returns argument i, or false if there is no such argument.
func (m *Message) Arg(i int) (Arg, bool) {
	if i < 0 || i >= len(m.Args) {
		return Arg{}, false
	}
	return m.Args[i], true
}

// String returns a compact human-readable form, e.g. "LED ,if 1 2.5".
func (m *Message) String() string {
	tags := make([]byte, 0, len(m.Args)+1)
	tags = append(tags, ',')
	vals := ""
	for _, a := range m.Args {
		tags = append(tags, byte(a.Type))
		switch a.Type {
		case ArgInt:
			vals += fmt.Sprintf(" %d", a.Int)
		case ArgFloat:
			vals += fmt.Sprintf(" %g", a.Float)
		case ArgString:
			vals += fmt.Sprintf(" %q", a.Str)
		}
	}
	return m.Address + " " + string(tags) + vals
}
