// Package eeprom models the non-volatile memory that parameters persist into.
//
// # Addresses
//
// An Address is a byte offset into the store. NotPersisted is the sentinel
// used by parameters that live in RAM only.
//
// Addresses are handed out by an Allocator. A process must construct exactly
// one Allocator and thread it through every persisted parameter's setup;
// two independent allocators would hand out overlapping ranges and the
// parameters would corrupt each other's bytes.
//
//	alloc := eeprom.NewAllocator()
//	a := alloc.Allocate(2) // 0
//	b := alloc.Allocate(4) // 2
//
// The allocator never frees and never checks against the physical size of
// the store. Running past the end of a store surfaces as ErrOutOfRange from
// the store itself.
//
// # Stores
//
// Store is the block read/write contract of the underlying driver. Three
// implementations are provided:
//   - MemStore: RAM-backed image, used in tests and for volatile devices
//   - FileStore: a fixed-size image file, survives process restarts
//   - SQLiteStore: one row per written byte in an SQLite database
//
// All stores start out "erased" (every byte 0xFF), like a fresh EEPROM.
//
// # Encoding
//
// Numeric values are stored in their fixed-width little-endian form; see
// PutInt16, PutInt32 and PutFloat32.
package eeprom
