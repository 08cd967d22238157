package config

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
	"github.com/ardupar/ardupar-go/pkg/param"
)

// Parameter kinds accepted in declarations.
const (
	KindInt     = "int"
	KindLong    = "long"
	KindFloat   = "float"
	KindString  = "string"
	KindTrigger = "trigger"
)

// ParamDecl declares one parameter.
type ParamDecl struct {
	Command string  `yaml:"command"`
	Kind    string  `yaml:"kind"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`

	// Default is the initial value before any load, as text. Numeric
	// defaults outside [min, max] are rejected.
	Default string `yaml:"default"`

	// Capacity is the string buffer size including the terminator.
	Capacity int `yaml:"capacity"`

	// Persist stores the value in the configured store.
	Persist bool `yaml:"persist"`

	// Address fixes the storage address instead of allocating one.
	Address *int `yaml:"address"`
}

func (d *ParamDecl) validate() error {
	if d.Command == "" {
		return fmt.Errorf("%w: empty command", ErrInvalid)
	}
	if d.Address != nil && (*d.Address < 0 || !d.Persist) {
		return fmt.Errorf("%w: %s: address requires persist and must be non-negative", ErrInvalid, d.Command)
	}

	switch d.Kind {
	case KindInt:
		return d.validateRange(math.MinInt16, math.MaxInt16, true)
	case KindLong:
		return d.validateRange(math.MinInt32, math.MaxInt32, true)
	case KindFloat:
		return d.validateRange(-math.MaxFloat32, math.MaxFloat32, false)
	case KindString:
		if d.Capacity < 2 {
			return fmt.Errorf("%w: %s: string capacity must be at least 2", ErrInvalid, d.Command)
		}
		if len(d.Default) > d.Capacity-1 {
			return fmt.Errorf("%w: %s: default longer than capacity-1", ErrInvalid, d.Command)
		}
	case KindTrigger:
		if d.Persist {
			return fmt.Errorf("%w: %s: triggers cannot be persisted", ErrInvalid, d.Command)
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalid, d.Command, d.Kind)
	}
	return nil
}

func (d *ParamDecl) validateRange(lo, hi float64, integral bool) error {
	if d.Min > d.Max {
		return fmt.Errorf("%w: %s: min %g > max %g", ErrInvalid, d.Command, d.Min, d.Max)
	}
	if d.Min < lo || d.Max > hi {
		return fmt.Errorf("%w: %s: range [%g, %g] exceeds %s limits", ErrInvalid, d.Command, d.Min, d.Max, d.Kind)
	}
	if integral && (d.Min != math.Trunc(d.Min) || d.Max != math.Trunc(d.Max)) {
		return fmt.Errorf("%w: %s: integer bounds required", ErrInvalid, d.Command)
	}
	v, err := d.defaultValue()
	if err != nil {
		return err
	}
	if math.IsNaN(v) || v < d.Min || v > d.Max {
		return fmt.Errorf("%w: %s: default %g outside [%g, %g]", ErrInvalid, d.Command, v, d.Min, d.Max)
	}
	if integral && v != math.Trunc(v) {
		return fmt.Errorf("%w: %s: integer default required, got %q", ErrInvalid, d.Command, d.Default)
	}
	return nil
}

// defaultValue returns the numeric default, or Min when none is set.
func (d *ParamDecl) defaultValue() (float64, error) {
	if d.Default == "" {
		return d.Min, nil
	}
	v, err := strconv.ParseFloat(d.Default, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: default %q is not a number", ErrInvalid, d.Command, d.Default)
	}
	return v, nil
}

func (d *ParamDecl) options() []param.Option {
	switch {
	case d.Address != nil:
		return []param.Option{param.PersistAt(eeprom.Address(*d.Address))}
	case d.Persist:
		return []param.Option{param.Persist()}
	default:
		return nil
	}
}

// Declare registers every declaration with reg in order. Triggers run the
// action named by their command in actions, or onTrigger if there is none.
// A capacity error is returned but the remaining declarations are still
// attempted, matching the registry's non-fatal overflow.
func Declare(reg *param.Registry, decls []ParamDecl, actions map[string]func(), onTrigger func(cmd string)) ([]param.Parameter, error) {
	var (
		out      []param.Parameter
		firstErr error
	)
	for i := range decls {
		p, err := declare(reg, &decls[i], actions, onTrigger)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", decls[i].Command, err)
			}
			continue
		}
		out = append(out, p)
	}
	return out, firstErr
}

func declare(reg *param.Registry, d *ParamDecl, actions map[string]func(), onTrigger func(string)) (param.Parameter, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	def, _ := d.defaultValue()

	switch d.Kind {
	case KindInt:
		return reg.Int(d.Command, int16(d.Min), int16(d.Max), param.Owned(int16(def)), d.options()...)
	case KindLong:
		return reg.Long(d.Command, int32(d.Min), int32(d.Max), param.Owned(int32(def)), d.options()...)
	case KindFloat:
		return reg.Float(d.Command, float32(d.Min), float32(d.Max), param.Owned(float32(def)), d.options()...)
	case KindString:
		return reg.String(d.Command, param.NewBufferString(d.Capacity, d.Default), d.options()...)
	default:
		fn := actions[d.Command]
		if fn == nil {
			cmd := d.Command
			fn = func() {
				if onTrigger != nil {
					onTrigger(cmd)
				}
			}
		}
		return reg.Callback(d.Command, fn)
	}
}
