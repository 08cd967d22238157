package main

import (
	"fmt"
	"strconv"

	"github.com/ardupar/ardupar-go/pkg/wire"
)

// ParseMessage builds a message from command-line words:
// the address followed by (type, value) pairs.
func ParseMessage(words []string) (*wire.Message, error) {
	if len(words) == 0 {
		return nil, wire.ErrEmptyAddress
	}
	rest := words[1:]
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("argument %q has no value", rest[len(rest)-1])
	}

	msg := wire.NewMessage(words[0])
	for i := 0; i < len(rest); i += 2 {
		arg, err := parseArg(rest[i], rest[i+1])
		if err != nil {
			return nil, err
		}
		msg.Args = append(msg.Args, arg)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func parseArg(tag, value string) (wire.Arg, error) {
	switch tag {
	case "i":
		v, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return wire.Arg{}, fmt.Errorf("invalid int %q: %w", value, err)
		}
		return wire.IntArg(int32(v)), nil
	case "f":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return wire.Arg{}, fmt.Errorf("invalid float %q: %w", value, err)
		}
		return wire.FloatArg(float32(v)), nil
	case "s":
		return wire.StringArg(value), nil
	default:
		return wire.Arg{}, fmt.Errorf("%w: %q (must be i, f, or s)", wire.ErrUnknownArgType, tag)
	}
}
