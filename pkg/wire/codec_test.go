package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
	}{
		{"no args", NewMessage("RESET")},
		{"int", NewMessage("LED", IntArg(42))},
		{"negative int", NewMessage("OFFSET", IntArg(-7))},
		{"float", NewMessage("GAIN", FloatArg(0.25))},
		{"string", NewMessage("NAME", StringArg("kitchen"))},
		{"mixed", NewMessage("MIX", IntArg(1), FloatArg(2.5), StringArg("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeMessage(tt.msg)
			if err != nil {
				t.Fatalf("EncodeMessage failed: %v", err)
			}

			decoded, err := DecodeMessage(data)
			if err != nil {
				t.Fatalf("DecodeMessage failed: %v", err)
			}

			if decoded.Address != tt.msg.Address {
				t.Errorf("Address: got %q, want %q", decoded.Address, tt.msg.Address)
			}
			if len(decoded.Args) != len(tt.msg.Args) {
				t.Fatalf("Args: got %d, want %d", len(decoded.Args), len(tt.msg.Args))
			}
			for i := range tt.msg.Args {
				if decoded.Args[i] != tt.msg.Args[i] {
					t.Errorf("Args[%d]: got %+v, want %+v", i, decoded.Args[i], tt.msg.Args[i])
				}
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := EncodeMessage(NewMessage("LED", IntArg(1), StringArg("on")))
	if err != nil {
		t.Fatalf("EncodeMessage failed: %v", err)
	}
	b, err := EncodeMessage(NewMessage("LED", IntArg(1), StringArg("on")))
	if err != nil {
		t.Fatalf("EncodeMessage failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("encodings differ:\n%x\n%x", a, b)
	}
}

func TestMessageValidate(t *testing.T) {
	if err := NewMessage("").Validate(); !errors.Is(err, ErrEmptyAddress) {
		t.Errorf("empty address: got %v, want ErrEmptyAddress", err)
	}

	bad := NewMessage("X", Arg{Type: 'q'})
	if err := bad.Validate(); !errors.Is(err, ErrUnknownArgType) {
		t.Errorf("unknown tag: got %v, want ErrUnknownArgType", err)
	}
	if _, err := EncodeMessage(bad); err == nil {
		t.Error("EncodeMessage accepted an unknown tag")
	}

	many := NewMessage("X")
	for i := 0; i <= MaxArgs; i++ {
		many.Args = append(many.Args, IntArg(int32(i)))
	}
	if err := many.Validate(); !errors.Is(err, ErrTooManyArgs) {
		t.Errorf("too many args: got %v, want ErrTooManyArgs", err)
	}
}

func TestEncodeTooLarge(t *testing.T) {
	msg := NewMessage("NAME", StringArg(strings.Repeat("x", MaxMessageSize)))
	if _, err := EncodeMessage(msg); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("EncodeMessage: got %v, want ErrMessageTooLarge", err)
	}
	if _, err := DecodeMessage(make([]byte, MaxMessageSize+1)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("DecodeMessage: got %v, want ErrMessageTooLarge", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := DecodeMessage([]byte{0xff, 0x00, 0x13}); err == nil {
		t.Error("DecodeMessage accepted garbage")
	}
}

func TestMessageAccessors(t *testing.T) {
	msg := NewMessage("LED", IntArg(3), StringArg("x"))

	if a, ok := msg.Arg(0); !ok || a.Type != ArgInt || a.Int != 3 {
		t.Errorf("Arg(0) = %+v, %v", a, ok)
	}
	if _, ok := msg.Arg(2); ok {
		t.Error("Arg(2) ok = true")
	}
	if a, ok := msg.Arg(1); !ok || a.Str != "x" {
		t.Errorf("Arg(1) = %+v, %v", a, ok)
	}
	if got := msg.String(); got != `LED ,is 3 "x"` {
		t.Errorf("String() = %q", got)
	}
	if ArgInt.String() != "i" || ArgType(0).String() != "ArgType(0)" {
		t.Errorf("ArgType.String(): %q %q", ArgInt.String(), ArgType(0).String())
	}
}
