// Package param implements named runtime parameters updated from a text
// command stream.
//
// A Registry holds a bounded, ordered set of parameters. Each parameter is
// identified by its command string. Dispatch feeds one command buffer to
// every registered parameter in registration order; each parameter whose
// command is a prefix of the buffer parses the remainder:
//
//	reg := param.NewRegistry(param.Config{Store: store, Allocator: eeprom.NewAllocator()})
//	speed, _ := reg.Int("SPEED", 0, 100, param.Owned[int16](50), param.Persist())
//	reg.Dispatch([]byte("SPEED75"))
//	speed.Value() // 75
//
// Matching is a plain prefix test with no separator and no first-match-wins:
// with "LED" and "LEDCOLOR" both registered, "LEDCOLOR1" updates both ("LED"
// parses "COLOR1" as 0). Overlaps reports such pairs.
//
// # Variants
//
// The parameter set is closed: Int (int16), Long (int32), Float (float32),
// String (fixed-capacity NUL-terminated buffer) and Callback (a trigger).
// Numeric values are clamped to [min, max] on every write. String updates
// skip one separator character after the command.
//
// # Persistence
//
// Persist() allocates a storage block from the registry's Allocator; the
// value is read back from the Store at setup and written on every update.
// Storage failures are logged, never returned from updates.
//
// # Concurrency
//
// Registration is meant for startup. Dispatch, Update and bridge digests
// serialize on the registry's dispatch lock (see Locker). A callback may
// call Dump or Snapshot but must not call Dispatch.
package param
