package param

import (
	"math"
	"strconv"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
	plog "github.com/ardupar/ardupar-go/pkg/log"
	"github.com/ardupar/ardupar-go/pkg/wire"
)

type number interface {
	int16 | int32 | float32
}

// numeric is the shared implementation of Int, Long and Float. Values are
// carried as float64 between parsing and clamping; every int16 and int32
// is exact in float64, so clamping there never changes an in-range value.
type numeric[T number] struct {
	base
	cell     *Cell[T]
	min, max T
	integral bool
	width    int
	put      func([]byte, T)
	get      func([]byte) T
	format   func(T) string
	parse    func([]byte) float64
}

// Value returns the current value.
func (n *numeric[T]) Value() T { return n.cell.Load() }

// Min returns the lower bound.
func (n *numeric[T]) Min() T { return n.min }

// Max returns the upper bound.
func (n *numeric[T]) Max() T { return n.max }

// Cell returns the parameter's storage.
func (n *numeric[T]) Cell() *Cell[T] { return n.cell }

// clamp maps v into [min, max]. NaN maps to min.
func (n *numeric[T]) clamp(v float64) T {
	switch {
	case math.IsNaN(v), v <= float64(n.min):
		return n.min
	case v >= float64(n.max):
		return n.max
	default:
		return T(v)
	}
}

// MatchAndParse parses the remainder after the command as a number.
func (n *numeric[T]) MatchAndParse(buf []byte) bool {
	rest, ok := n.match(buf)
	if !ok {
		return false
	}
	n.apply(n.parse(rest), plog.OriginSerial)
	return true
}

// Digest applies the first argument of a bridge message. Integer kinds
// truncate 'f' arguments toward zero. Other argument types are ignored.
func (n *numeric[T]) Digest(msg *wire.Message) bool {
	arg, ok := msg.Arg(0)
	if !ok {
		return false
	}
	var v float64
	switch arg.Type {
	case wire.ArgInt:
		v = float64(arg.Int)
	case wire.ArgFloat:
		v = float64(arg.Float)
		if n.integral {
			v = math.Trunc(v)
		}
	default:
		return false
	}
	n.apply(v, plog.OriginBridge)
	return true
}

func (n *numeric[T]) apply(v float64, origin plog.Origin) {
	val := n.clamp(v)
	n.cell.Store(val)

	data := make([]byte, n.width)
	n.put(data, val)
	n.env.write(&n.base, data)
	n.env.emit(origin, plog.CategoryUpdate, &n.base, n.format(val))
}

// load reads the persisted value into the cell, clamped into range.
func (n *numeric[T]) load() {
	data := make([]byte, n.width)
	if !n.env.read(&n.base, data) {
		return
	}
	val := n.clamp(float64(n.get(data)))
	n.cell.Store(val)
	n.env.emit(plog.OriginStorage, plog.CategoryLoad, &n.base, n.format(val))
}

func (n *numeric[T]) persistedSize() int { return n.width }

// Describe returns the status record with bounds.
func (n *numeric[T]) Describe() Record {
	return Record{
		Kind:      n.kind,
		Name:      n.command,
		Value:     n.format(n.cell.Load()),
		Min:       n.format(n.min),
		Max:       n.format(n.max),
		HasBounds: true,
	}
}

// Int is a 16-bit integer parameter, persisted as 2 bytes.
type Int struct {
	numeric[int16]
}

func newInt(cmd string, min, max int16, cell *Cell[int16]) *Int {
	return &Int{numeric[int16]{
		base:     base{command: cmd, kind: KindInt, addr: eeprom.NotPersisted},
		cell:     cell,
		min:      min,
		max:      max,
		integral: true,
		width:    2,
		put:      eeprom.PutInt16,
		get:      eeprom.Int16,
		format:   func(v int16) string { return strconv.FormatInt(int64(v), 10) },
		parse:    parseIntFloat,
	}}
}

// Long is a 32-bit integer parameter, persisted as 4 bytes.
type Long struct {
	numeric[int32]
}

func newLong(cmd string, min, max int32, cell *Cell[int32]) *Long {
	return &Long{numeric[int32]{
		base:     base{command: cmd, kind: KindLong, addr: eeprom.NotPersisted},
		cell:     cell,
		min:      min,
		max:      max,
		integral: true,
		width:    4,
		put:      eeprom.PutInt32,
		get:      eeprom.Int32,
		format:   func(v int32) string { return strconv.FormatInt(int64(v), 10) },
		parse:    parseIntFloat,
	}}
}

// Float is a 32-bit floating-point parameter, persisted as 4 bytes.
// Status values print with two decimals.
type Float struct {
	numeric[float32]
}

func newFloat(cmd string, min, max float32, cell *Cell[float32]) *Float {
	return &Float{numeric[float32]{
		base:   base{command: cmd, kind: KindFloat, addr: eeprom.NotPersisted},
		cell:   cell,
		min:    min,
		max:    max,
		width:  4,
		put:    eeprom.PutFloat32,
		get:    eeprom.Float32,
		format: formatFloat,
		parse:  parseFloat,
	}}
}

func parseIntFloat(b []byte) float64 { return float64(parseInt(b)) }

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 2, 32)
}
