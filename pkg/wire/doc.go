// Package wire defines the CBOR wire format of bridge messages.
//
// A bridge message addresses one parameter by its command string and
// carries zero or more typed arguments:
//
//	msg := wire.NewMessage("LED", wire.IntArg(42))
//	data, _ := wire.EncodeMessage(msg)
//
// Argument types follow the usual open-sound-control tags:
//   - 'i': 32-bit signed integer
//   - 'f': 32-bit float
//   - 's': string
//
// # CBOR Integer Keys
//
// All maps use integer keys for compactness. Encoding is deterministic
// (canonical key order, no indefinite lengths) so equal messages always
// produce equal bytes.
//
// A message must fit in a single datagram; see MaxMessageSize.
package wire
