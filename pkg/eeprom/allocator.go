package eeprom

import "sync"

// Address is a byte offset into non-volatile memory.
type Address int

// NotPersisted marks a parameter that has no persistence address.
const NotPersisted Address = -1

// IsPersisted returns true if a is a real address.
func (a Address) IsPersisted() bool { return a >= 0 }

// Allocator hands out non-overlapping address ranges.
//
// The counter only grows. There is no way to free or reuse a range.
type Allocator struct {
	mu   sync.Mutex
	next Address
}

// NewAllocator creates an allocator starting at address 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate returns the current counter and advances it by size bytes.
// Negative sizes are treated as zero.
func (a *Allocator) Allocate(size int) Address {
	if size < 0 {
		size = 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	addr := a.next
	a.next += Address(size)
	return addr
}

// Next returns the address the next allocation would receive.
func (a *Allocator) Next() Address {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}
