package param

import "sync"

// Cell is the storage behind a numeric parameter: either owned by the
// parameter or a reference to a variable the caller keeps using.
//
// Reads through Load are synchronized with parameter updates. Reading a
// referenced variable directly is not.
type Cell[T any] struct {
	mu    sync.RWMutex
	p     *T
	owned bool
}

// Owned returns a cell that owns its value, starting at initial.
func Owned[T any](initial T) *Cell[T] {
	v := initial
	return &Cell[T]{p: &v, owned: true}
}

// Ref returns a cell that aliases *p. The caller keeps ownership of p.
func Ref[T any](p *T) *Cell[T] {
	if p == nil {
		var zero T
		return Owned(zero)
	}
	return &Cell[T]{p: p}
}

// Load returns the current value.
func (c *Cell[T]) Load() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c.p
}

// Store sets the value.
func (c *Cell[T]) Store(v T) {
	c.mu.Lock()
	*c.p = v
	c.mu.Unlock()
}

// Owned reports whether the cell owns its value.
func (c *Cell[T]) Owned() bool {
	return c.owned
}
