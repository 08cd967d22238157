package param

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ardupar/ardupar-go/pkg/bridge"
	"github.com/ardupar/ardupar-go/pkg/eeprom"
	"github.com/ardupar/ardupar-go/pkg/framer"
	plog "github.com/ardupar/ardupar-go/pkg/log"
)

// DefaultCapacity is the registry capacity when Config.Capacity is zero.
const DefaultCapacity = 32

// Registry errors.
var (
	// ErrCapacityExceeded is returned with a usable handle when the
	// registry is full. The parameter is never dispatched.
	ErrCapacityExceeded = errors.New("registry capacity exceeded")

	ErrAlreadyRegistered = errors.New("command already registered")
	ErrInvalidConfig     = errors.New("invalid parameter configuration")
	ErrNoStore           = errors.New("persistence requested without a store")
)

// Config configures a Registry.
type Config struct {
	// Capacity bounds the number of registered parameters.
	// Default: DefaultCapacity.
	Capacity int

	// Store is the non-volatile store. Nil disables persistence.
	Store eeprom.Store

	// Allocator hands out storage addresses. If nil and Store is set, the
	// registry creates its own allocator starting at address 0.
	Allocator *eeprom.Allocator

	// Bridge receives every registered parameter as a sink.
	// Default: bridge.Nop.
	Bridge bridge.Bridge

	// Logger is used for operational logging. Nil disables logging.
	Logger *slog.Logger

	// EventLogger receives change events. Nil disables capture.
	EventLogger plog.Logger
}

// Overlap is a pair of registered commands where one is a prefix of the
// other. A buffer for Command also matches Prefix.
type Overlap struct {
	Prefix  string
	Command string
}

// Registry is a bounded, ordered collection of parameters.
type Registry struct {
	structMu sync.RWMutex
	params   []Parameter
	capacity int
	alloc    *eeprom.Allocator
	bridge   bridge.Bridge
	env      *env

	// dispatchMu serializes value updates from all sources.
	dispatchMu sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config) *Registry {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Bridge == nil {
		cfg.Bridge = bridge.Nop{}
	}
	if cfg.Allocator == nil && cfg.Store != nil {
		cfg.Allocator = eeprom.NewAllocator()
	}
	return &Registry{
		capacity: cfg.Capacity,
		alloc:    cfg.Allocator,
		bridge:   cfg.Bridge,
		env: &env{
			store:   cfg.Store,
			logger:  cfg.Logger,
			events:  cfg.EventLogger,
			session: uuid.NewString(),
			timeNow: time.Now,
		},
	}
}

// setup validates, places and loads p, then appends it if there is room.
func (r *Registry) setup(p Parameter, b *base, opts []Option) error {
	if b.command == "" {
		return fmt.Errorf("%w: empty command", ErrInvalidConfig)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	r.structMu.Lock()
	defer r.structMu.Unlock()

	if r.lookupLocked(b.command) != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, b.command)
	}

	if o.persist {
		ps, ok := p.(persistable)
		if !ok {
			return fmt.Errorf("%w: %s: %s cannot be persisted", ErrInvalidConfig, b.command, b.kind)
		}
		if r.env.store == nil {
			return fmt.Errorf("%w: %s", ErrNoStore, b.command)
		}
		if o.fixed.IsPersisted() {
			b.addr = o.fixed
		} else {
			b.addr = r.alloc.Allocate(ps.persistedSize())
		}
		ps.load()
	}

	if len(r.params) >= r.capacity {
		r.env.warnLog("parameter registry full", "command", b.command, "capacity", r.capacity)
		r.env.emit(plog.OriginSetup, plog.CategoryReject, b, "")
		return fmt.Errorf("%w: %s (capacity %d)", ErrCapacityExceeded, b.command, r.capacity)
	}

	for _, q := range r.params {
		if strings.HasPrefix(b.command, q.Command()) || strings.HasPrefix(q.Command(), b.command) {
			r.env.warnLog("overlapping commands both match", "command", b.command, "other", q.Command())
		}
	}

	r.params = append(r.params, p)
	r.bridge.Register(p)
	r.env.emit(plog.OriginSetup, plog.CategoryRegister, b, p.Describe().Value)
	r.env.debugLog("parameter registered",
		"command", b.command,
		"kind", b.kind.String(),
		"address", int(b.addr),
		"bridge", r.bridge.AddressOf(p))
	return nil
}

func (r *Registry) lookupLocked(cmd string) Parameter {
	for _, p := range r.params {
		if p.Command() == cmd {
			return p
		}
	}
	return nil
}

// Dispatch feeds buf to every registered parameter in registration order
// and returns how many matched. Bytes after a NUL are ignored.
func (r *Registry) Dispatch(buf []byte) int {
	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	buf = cstring(buf)
	n := 0
	for _, p := range r.Parameters() {
		if p.MatchAndParse(buf) {
			n++
		}
	}
	if n == 0 && len(buf) > 0 {
		r.env.debugLog("no parameter matched", "command", string(buf))
	}
	return n
}

// Update reads one command from f and dispatches it. It returns false
// without waiting when no bytes are available.
func (r *Registry) Update(f *framer.Framer) bool {
	frame, ok := f.Next()
	if !ok {
		return false
	}
	if frame.Truncated() {
		r.env.debugLog("command truncated", "received", frame.Received(), "kept", frame.Len())
	}
	r.Dispatch(frame.Bytes())
	return true
}

// Dump emits one record per registered parameter in registration order.
// It stops at the first sink error.
func (r *Registry) Dump(sink StatusSink) error {
	for _, p := range r.Parameters() {
		if err := sink.Emit(p.Describe()); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns the records of all registered parameters.
func (r *Registry) Snapshot() []Record {
	params := r.Parameters()
	out := make([]Record, len(params))
	for i, p := range params {
		out[i] = p.Describe()
	}
	return out
}

// Parameters returns the registered parameters in registration order.
func (r *Registry) Parameters() []Parameter {
	r.structMu.RLock()
	defer r.structMu.RUnlock()
	out := make([]Parameter, len(r.params))
	copy(out, r.params)
	return out
}

// Lookup returns the parameter registered under cmd.
func (r *Registry) Lookup(cmd string) (Parameter, bool) {
	r.structMu.RLock()
	defer r.structMu.RUnlock()
	p := r.lookupLocked(cmd)
	return p, p != nil
}

// Overlaps returns every pair of registered commands where one is a
// prefix of the other, in registration order.
func (r *Registry) Overlaps() []Overlap {
	params := r.Parameters()
	var out []Overlap
	for i, a := range params {
		for _, b := range params[i+1:] {
			switch {
			case strings.HasPrefix(b.Command(), a.Command()):
				out = append(out, Overlap{Prefix: a.Command(), Command: b.Command()})
			case strings.HasPrefix(a.Command(), b.Command()):
				out = append(out, Overlap{Prefix: b.Command(), Command: a.Command()})
			}
		}
	}
	return out
}

// Len returns the number of registered parameters.
func (r *Registry) Len() int {
	r.structMu.RLock()
	defer r.structMu.RUnlock()
	return len(r.params)
}

// Capacity returns the maximum number of parameters.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Allocator returns the storage allocator, or nil without a store.
func (r *Registry) Allocator() *eeprom.Allocator {
	return r.alloc
}

// SessionID identifies this registry in change events.
func (r *Registry) SessionID() string {
	return r.env.session
}

// AddressOf returns the bridge address of p.
func (r *Registry) AddressOf(p Parameter) string {
	return r.bridge.AddressOf(p)
}

// Locker returns the lock that serializes value updates. Wrap bridge
// handlers running on other goroutines with it.
func (r *Registry) Locker() sync.Locker {
	return &r.dispatchMu
}
