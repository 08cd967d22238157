package param

import (
	"bytes"
	"sync"
)

// Buffer is the fixed-capacity storage behind a String parameter. Its
// content is always NUL-terminated within the capacity.
type Buffer struct {
	mu    sync.RWMutex
	b     []byte
	owned bool
}

// NewBuffer returns an owned, empty buffer of the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{b: make([]byte, capacity), owned: true}
}

// NewBufferString returns an owned buffer holding s, truncated to
// capacity-1 bytes.
func NewBufferString(capacity int, s string) *Buffer {
	b := NewBuffer(capacity)
	if capacity > 0 {
		b.set([]byte(s))
	}
	return b
}

// BindBuffer returns a buffer that aliases b. Its capacity is len(b).
// The caller keeps ownership of b.
func BindBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Cap returns the buffer capacity in bytes, including the terminator.
func (b *Buffer) Cap() int {
	return len(b.b)
}

// Owned reports whether the buffer owns its storage.
func (b *Buffer) Owned() bool {
	return b.owned
}

// String returns the content up to the first NUL.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(cstring(b.b))
}

// Bytes returns a copy of the whole block.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]byte, len(b.b))
	copy(out, b.b)
	return out
}

// set copies at most Cap()-1 bytes of v, zeroes the rest of the block and
// returns a copy of the block.
func (b *Buffer) set(v []byte) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.b) == 0 {
		return nil
	}
	n := min(len(v), len(b.b)-1)
	copy(b.b, v[:n])
	clear(b.b[n:])
	out := make([]byte, len(b.b))
	copy(out, b.b)
	return out
}

// load replaces the block with raw persisted bytes and terminates it.
func (b *Buffer) load(raw []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.b) == 0 {
		return
	}
	copy(b.b, raw)
	b.b[len(b.b)-1] = 0
}

// cstring returns b up to (not including) the first NUL byte.
func cstring(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
