package param

import (
	"errors"
	"fmt"
	"math"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
)

// Option configures a parameter at setup.
type Option func(*setupOptions)

type setupOptions struct {
	persist bool
	fixed   eeprom.Address
}

// Persist stores the value in the registry's Store at a freshly allocated
// address. The value is loaded from that address at setup.
func Persist() Option {
	return func(o *setupOptions) {
		o.persist = true
		o.fixed = eeprom.NotPersisted
	}
}

// PersistAt stores the value at a fixed address. The allocator is not
// advanced; the caller is responsible for keeping fixed blocks disjoint
// from allocated ones.
func PersistAt(addr eeprom.Address) Option {
	return func(o *setupOptions) {
		o.persist = true
		o.fixed = addr
	}
}

func buildOptions(opts []Option) (setupOptions, error) {
	o := setupOptions{fixed: eeprom.NotPersisted}
	for _, opt := range opts {
		opt(&o)
	}
	if o.persist && o.fixed < eeprom.NotPersisted {
		return o, fmt.Errorf("%w: negative address %d", ErrInvalidConfig, o.fixed)
	}
	return o, nil
}

// Int registers a 16-bit integer parameter bounded by [min, max]. A nil
// cell gets an owned cell starting at min.
func (r *Registry) Int(cmd string, min, max int16, cell *Cell[int16], opts ...Option) (*Int, error) {
	if min > max {
		return nil, fmt.Errorf("%w: %s: min %d > max %d", ErrInvalidConfig, cmd, min, max)
	}
	if cell == nil {
		cell = Owned(min)
	}
	p := newInt(cmd, min, max, cell)
	p.env = r.env
	return result(p, r.setup(p, &p.base, opts))
}

// Long registers a 32-bit integer parameter bounded by [min, max].
func (r *Registry) Long(cmd string, min, max int32, cell *Cell[int32], opts ...Option) (*Long, error) {
	if min > max {
		return nil, fmt.Errorf("%w: %s: min %d > max %d", ErrInvalidConfig, cmd, min, max)
	}
	if cell == nil {
		cell = Owned(min)
	}
	p := newLong(cmd, min, max, cell)
	p.env = r.env
	return result(p, r.setup(p, &p.base, opts))
}

// Float registers a floating-point parameter bounded by [min, max].
func (r *Registry) Float(cmd string, min, max float32, cell *Cell[float32], opts ...Option) (*Float, error) {
	if math.IsNaN(float64(min)) || math.IsNaN(float64(max)) || min > max {
		return nil, fmt.Errorf("%w: %s: bad range [%g, %g]", ErrInvalidConfig, cmd, min, max)
	}
	if cell == nil {
		cell = Owned(min)
	}
	p := newFloat(cmd, min, max, cell)
	p.env = r.env
	return result(p, r.setup(p, &p.base, opts))
}

// String registers a text parameter backed by buf, whose capacity must be
// at least 2 (one byte of text plus the terminator).
func (r *Registry) String(cmd string, buf *Buffer, opts ...Option) (*String, error) {
	if buf == nil || buf.Cap() < 2 {
		return nil, fmt.Errorf("%w: %s: string capacity must be at least 2", ErrInvalidConfig, cmd)
	}
	p := newString(cmd, buf)
	p.env = r.env
	return result(p, r.setup(p, &p.base, opts))
}

// Callback registers a trigger that runs fn on every match.
func (r *Registry) Callback(cmd string, fn func()) (*Callback, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s: nil action", ErrInvalidConfig, cmd)
	}
	p := newCallback(cmd, fn)
	p.env = r.env
	return result(p, r.setup(p, &p.base, nil))
}

// result returns the handle alongside a capacity error, which leaves it
// usable, and drops it for any other error.
func result[P Parameter](p P, err error) (P, error) {
	if err != nil && !errors.Is(err, ErrCapacityExceeded) {
		var zero P
		return zero, err
	}
	return p, err
}

// persistable is implemented by variants that can be stored.
type persistable interface {
	persistedSize() int
	load()
}
