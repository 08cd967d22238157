package param

import (
	"github.com/ardupar/ardupar-go/pkg/eeprom"
	plog "github.com/ardupar/ardupar-go/pkg/log"
	"github.com/ardupar/ardupar-go/pkg/wire"
)

// String is a fixed-capacity text parameter. The command must be followed
// by one separator character, which is skipped: "NAME=kitchen" and
// "NAME kitchen" both store "kitchen". At most Cap()-1 bytes are kept.
type String struct {
	base
	buf *Buffer
}

func newString(cmd string, buf *Buffer) *String {
	return &String{
		base: base{command: cmd, kind: KindString, addr: eeprom.NotPersisted},
		buf:  buf,
	}
}

// Value returns the current content.
func (s *String) Value() string { return s.buf.String() }

// Buffer returns the parameter's storage.
func (s *String) Buffer() *Buffer { return s.buf }

// MatchAndParse stores the remainder after the command and separator.
// A remainder of one byte or less leaves the value unchanged.
func (s *String) MatchAndParse(buf []byte) bool {
	rest, ok := s.match(buf)
	if !ok {
		return false
	}
	if len(rest) <= 1 {
		return true
	}
	s.apply(rest[1:], plog.OriginSerial)
	return true
}

// Digest stores the first argument if it is a string.
func (s *String) Digest(msg *wire.Message) bool {
	arg, ok := msg.Arg(0)
	if !ok || arg.Type != wire.ArgString {
		return false
	}
	s.apply(cstring([]byte(arg.Str)), plog.OriginBridge)
	return true
}

func (s *String) apply(v []byte, origin plog.Origin) {
	block := s.buf.set(v)
	s.env.write(&s.base, block)
	s.env.emit(origin, plog.CategoryUpdate, &s.base, string(cstring(block)))
}

// load reads the persisted block. A fully erased block loads as empty.
func (s *String) load() {
	raw := make([]byte, s.buf.Cap())
	if !s.env.read(&s.base, raw) {
		return
	}
	if erased(raw) {
		clear(raw)
	}
	s.buf.load(raw)
	s.env.emit(plog.OriginStorage, plog.CategoryLoad, &s.base, s.buf.String())
}

func (s *String) persistedSize() int { return s.buf.Cap() }

// Describe returns the status record without bounds.
func (s *String) Describe() Record {
	return Record{
		Kind:  KindString,
		Name:  s.command,
		Value: s.buf.String(),
	}
}

func erased(b []byte) bool {
	for _, c := range b {
		if c != eeprom.ErasedByte {
			return false
		}
	}
	return true
}
