package bridge

import (
	"github.com/ardupar/ardupar-go/pkg/wire"
)

// Sink receives bridge messages addressed to it.
type Sink interface {
	// Address is the exact message address the sink answers to.
	Address() string

	// Digest applies a message. It returns true if the message changed
	// state or invoked an action.
	Digest(msg *wire.Message) bool
}

// Bridge is a runtime-selected message bridge.
type Bridge interface {
	// Register adds a sink. Sinks are never removed.
	Register(s Sink)

	// AddressOf returns the address messages must carry to reach s.
	AddressOf(s Sink) string
}

// Nop is the disabled bridge. Register does nothing.
type Nop struct{}

// Register discards the sink.
func (Nop) Register(Sink) {}

// AddressOf returns the sink's address.
func (Nop) AddressOf(s Sink) string { return s.Address() }

// Compile-time interface satisfaction check.
var _ Bridge = Nop{}
