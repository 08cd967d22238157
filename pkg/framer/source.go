package framer

import (
	"io"
	"sync"
)

// QueueSource is an in-memory Source. Bytes written to it are read back in
// order. It is safe for concurrent use: one goroutine may Write while the
// framer reads.
type QueueSource struct {
	mu  sync.Mutex
	buf []byte
}

// NewQueueSource creates a QueueSource holding the given initial bytes.
func NewQueueSource(initial ...byte) *QueueSource {
	return &QueueSource{buf: append([]byte(nil), initial...)}
}

// Write appends p to the queue. It never fails.
func (q *QueueSource) Write(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buf = append(q.buf, p...)
	return len(p), nil
}

// WriteString appends s to the queue.
func (q *QueueSource) WriteString(s string) (int, error) {
	return q.Write([]byte(s))
}

// Available implements Source.
func (q *QueueSource) Available() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf) > 0
}

// Poll implements Source.
func (q *QueueSource) Poll() (byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return 0, false
	}
	b := q.buf[0]
	q.buf = q.buf[1:]
	return b, true
}

// Len returns the number of queued bytes.
func (q *QueueSource) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// ReaderSource adapts a blocking io.Reader (a serial port, stdin, a pipe)
// into a non-blocking Source. A background goroutine pumps bytes into a
// bounded buffer; when the buffer is full the pump blocks, which applies
// back-pressure to the reader.
type ReaderSource struct {
	ch   chan byte
	done chan struct{}

	mu  sync.Mutex
	err error
}

// NewReaderSource starts pumping r. bufSize bounds the number of bytes held
// in memory; values < 1 default to 256.
func NewReaderSource(r io.Reader, bufSize int) *ReaderSource {
	if bufSize < 1 {
		bufSize = 256
	}
	s := &ReaderSource{
		ch:   make(chan byte, bufSize),
		done: make(chan struct{}),
	}
	go s.pump(r)
	return s
}

func (s *ReaderSource) pump(r io.Reader) {
	defer close(s.done)
	chunk := make([]byte, 64)
	for {
		n, err := r.Read(chunk)
		for _, b := range chunk[:n] {
			s.ch <- b
		}
		if err != nil {
			if err != io.EOF {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}
	}
}

// Available implements Source.
func (s *ReaderSource) Available() bool {
	return len(s.ch) > 0
}

// Poll implements Source.
func (s *ReaderSource) Poll() (byte, bool) {
	select {
	case b := <-s.ch:
		return b, true
	default:
		return 0, false
	}
}

// Done is closed once the underlying reader returned EOF or an error.
// Bytes may still be buffered after Done is closed.
func (s *ReaderSource) Done() <-chan struct{} {
	return s.done
}

// Err returns the read error that stopped the pump, if any. EOF is not an error.
func (s *ReaderSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Compile-time interface satisfaction checks.
var (
	_ Source = (*QueueSource)(nil)
	_ Source = (*ReaderSource)(nil)
)
