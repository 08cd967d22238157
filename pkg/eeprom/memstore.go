package eeprom

import "sync"

// MemStore is a RAM-backed Store of fixed size.
type MemStore struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

// NewMemStore creates an erased store of size bytes.
func NewMemStore(size int) *MemStore {
	data := make([]byte, size)
	erase(data)
	return &MemStore{data: data}
}

// ReadBlock implements Store.
func (s *MemStore) ReadBlock(dst []byte, addr Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkRange(addr, len(dst), len(s.data)); err != nil {
		return err
	}
	copy(dst, s.data[addr:])
	return nil
}

// WriteBlock implements Store.
func (s *MemStore) WriteBlock(src []byte, addr Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkRange(addr, len(src), len(s.data)); err != nil {
		return err
	}
	copy(s.data[addr:], src)
	s.writes++
	return nil
}

// Size returns the store size in bytes.
func (s *MemStore) Size() int {
	return len(s.data)
}

// Writes returns the number of successful WriteBlock calls.
func (s *MemStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Bytes returns a copy of the whole image.
func (s *MemStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Compile-time interface satisfaction check.
var _ Store = (*MemStore)(nil)
