package param

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/ardupar/ardupar-go/pkg/bridge"
	"github.com/ardupar/ardupar-go/pkg/eeprom"
	plog "github.com/ardupar/ardupar-go/pkg/log"
)

// Parameter is a named runtime value updated from command buffers and
// bridge messages. The set of implementations is closed: *Int, *Long,
// *Float, *String and *Callback.
type Parameter interface {
	// Command returns the command string that identifies the parameter.
	Command() string

	// Kind returns the variant.
	Kind() Kind

	// MatchAndParse tests whether buf starts with the command string and,
	// if so, parses the remainder into the value. It reports whether the
	// prefix matched, even if the remainder was ignored.
	MatchAndParse(buf []byte) bool

	// Describe returns the status record for the current value.
	Describe() Record

	// StorageAddress returns the persistence address, or
	// eeprom.NotPersisted.
	StorageAddress() eeprom.Address

	bridge.Sink

	sealed()
}

// env is what a parameter needs from its registry. It outlives
// registration, so handles rejected for capacity stay usable.
type env struct {
	store   eeprom.Store
	logger  *slog.Logger
	events  plog.Logger
	session string
	timeNow func() time.Time
}

func (e *env) emit(origin plog.Origin, cat plog.Category, b *base, value string) {
	if e.events == nil {
		return
	}
	e.events.Log(plog.Event{
		Timestamp: e.timeNow(),
		SessionID: e.session,
		Origin:    origin,
		Category:  cat,
		Command:   b.command,
		Kind:      b.kind.WireName(),
		Value:     value,
		Address:   plog.AddressPtr(int(b.addr)),
	})
}

// write persists data at the parameter's address. Failures are logged.
func (e *env) write(b *base, data []byte) {
	if !b.addr.IsPersisted() || e.store == nil {
		return
	}
	if err := e.store.WriteBlock(data, b.addr); err != nil {
		e.warnLog("persist failed", "command", b.command, "address", int(b.addr), "error", err)
	}
}

// read fills dst from the parameter's address. Failures are logged.
func (e *env) read(b *base, dst []byte) bool {
	if !b.addr.IsPersisted() || e.store == nil {
		return false
	}
	if err := e.store.ReadBlock(dst, b.addr); err != nil {
		e.warnLog("load failed", "command", b.command, "address", int(b.addr), "error", err)
		return false
	}
	return true
}

func (e *env) debugLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *env) warnLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

// base holds what every variant shares.
type base struct {
	command string
	kind    Kind
	addr    eeprom.Address
	env     *env
}

func (b *base) Command() string                { return b.command }
func (b *base) Kind() Kind                     { return b.kind }
func (b *base) StorageAddress() eeprom.Address { return b.addr }

// Address returns the bridge address, which is the command string.
func (b *base) Address() string { return b.command }

func (b *base) sealed() {}

// match returns the remainder of buf after the command string.
func (b *base) match(buf []byte) ([]byte, bool) {
	buf = cstring(buf)
	if !bytes.HasPrefix(buf, []byte(b.command)) {
		return nil, false
	}
	return buf[len(b.command):], true
}

// Compile-time interface satisfaction checks.
var (
	_ Parameter = (*Int)(nil)
	_ Parameter = (*Long)(nil)
	_ Parameter = (*Float)(nil)
	_ Parameter = (*String)(nil)
	_ Parameter = (*Callback)(nil)
)
