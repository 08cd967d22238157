package framer

import (
	"runtime"
	"time"
)

// MaxCommandLen is the capacity of a command buffer, including the
// terminating zero byte.
const MaxCommandLen = 32

// Source is a non-blocking byte source.
type Source interface {
	// Available reports whether at least one byte can be read right now.
	Available() bool

	// Poll returns the next byte without blocking, or false if none is available.
	Poll() (byte, bool)
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Frame is one assembled command buffer.
//
// The buffer is always zero-terminated at Len().
type Frame struct {
	buf      [MaxCommandLen]byte
	n        int
	received int
}

// Bytes returns the command bytes without the terminator.
func (f *Frame) Bytes() []byte { return f.buf[:f.n] }

// Len returns the number of command bytes kept.
func (f *Frame) Len() int { return f.n }

// Received returns the number of bytes read, including discarded overflow.
func (f *Frame) Received() int { return f.received }

// Truncated returns true if bytes were discarded because the buffer was full.
func (f *Frame) Truncated() bool { return f.received > f.n }

// String returns the command as a string.
func (f *Frame) String() string { return string(f.buf[:f.n]) }

// Framer reads command frames from a Source.
type Framer struct {
	src     Source
	timeout time.Duration
	clock   Clock
}

// Option configures a Framer.
type Option func(*Framer)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(f *Framer) {
		if c != nil {
			f.clock = c
		}
	}
}

// New creates a Framer reading from src with the given inter-byte timeout.
func New(src Source, timeout time.Duration, opts ...Option) *Framer {
	f := &Framer{
		src:     src,
		timeout: timeout,
		clock:   systemClock{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Timeout returns the inter-byte timeout.
func (f *Framer) Timeout() time.Duration {
	return f.timeout
}

// Next assembles the next frame.
//
// If no byte is available on entry it returns at once with ok == false.
// Otherwise it reads until the source has been silent for the timeout. ok is
// false if only zero bytes were seen.
func (f *Framer) Next() (frame Frame, ok bool) {
	if !f.src.Available() {
		return frame, false
	}

	last := f.clock.Now()
	for f.clock.Now().Sub(last) < f.timeout {
		b, got := f.src.Poll()
		if !got || b == 0 {
			runtime.Gosched()
			continue
		}
		last = f.clock.Now()
		frame.received++
		if frame.n < MaxCommandLen-1 {
			frame.buf[frame.n] = b
			frame.n++
		}
	}
	frame.buf[frame.n] = 0

	return frame, frame.n > 0
}
