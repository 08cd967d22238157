package eeprom

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a Store backed by a fixed-size image file.
//
// The image is created erased if it does not exist. An existing image that is
// shorter than size is extended with erased bytes; a longer one is left as is
// but only the first size bytes are addressable.
type FileStore struct {
	mu     sync.Mutex
	path   string
	size   int
	file   *os.File
	closed bool
}

// OpenFileStore opens or creates the image file at path.
func OpenFileStore(path string, size int) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if cur := int(info.Size()); cur < size {
		pad := bytes.Repeat([]byte{ErasedByte}, size-cur)
		if _, err := f.WriteAt(pad, int64(cur)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to initialize image: %w", err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &FileStore{path: path, size: size, file: f}, nil
}

// Path returns the image file path.
func (s *FileStore) Path() string {
	return s.path
}

// ReadBlock implements Store.
func (s *FileStore) ReadBlock(dst []byte, addr Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := checkRange(addr, len(dst), s.size); err != nil {
		return err
	}
	_, err := s.file.ReadAt(dst, int64(addr))
	return err
}

// WriteBlock implements Store. The write is synced before returning.
func (s *FileStore) WriteBlock(src []byte, addr Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := checkRange(addr, len(src), s.size); err != nil {
		return err
	}
	if _, err := s.file.WriteAt(src, int64(addr)); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close closes the image file. It is safe to call Close multiple times.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// Compile-time interface satisfaction check.
var _ Store = (*FileStore)(nil)
