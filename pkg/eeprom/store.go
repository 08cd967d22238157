package eeprom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErasedByte is the value of every byte in a freshly erased store.
const ErasedByte byte = 0xFF

// Store errors.
var (
	ErrOutOfRange = errors.New("eeprom: block out of range")
	ErrClosed     = errors.New("eeprom: store closed")
)

// Store is a byte-addressed non-volatile memory.
//
// ReadBlock fills dst with len(dst) bytes starting at addr.
// WriteBlock writes src starting at addr.
// Both are synchronous: the data is durable when the call returns.
type Store interface {
	ReadBlock(dst []byte, addr Address) error
	WriteBlock(src []byte, addr Address) error
}

// checkRange validates that [addr, addr+n) lies within a store of the given size.
func checkRange(addr Address, n, size int) error {
	if addr < 0 || int(addr)+n > size {
		return fmt.Errorf("%w: [%d, %d) outside [0, %d)", ErrOutOfRange, addr, int(addr)+n, size)
	}
	return nil
}

func erase(b []byte) {
	for i := range b {
		b[i] = ErasedByte
	}
}

// PutInt16 encodes v into b[0:2] (little-endian).
func PutInt16(b []byte, v int16) { binary.LittleEndian.PutUint16(b, uint16(v)) }

// Int16 decodes b[0:2] (little-endian).
func Int16(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }

// PutInt32 encodes v into b[0:4] (little-endian).
func PutInt32(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) }

// Int32 decodes b[0:4] (little-endian).
func Int32(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }

// PutFloat32 encodes v into b[0:4] (IEEE-754, little-endian).
func PutFloat32(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }

// Float32 decodes b[0:4] (IEEE-754, little-endian).
func Float32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
