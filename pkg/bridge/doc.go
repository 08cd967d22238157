// Package bridge forwards network messages into parameters.
//
// A parameter registers itself with a Bridge as a Sink. The sink's address
// is its command string; a message is delivered to every sink whose
// address equals the message address exactly (unlike the serial command
// stream, which matches by prefix).
//
// Nop is the disabled bridge. Router keeps the registered sinks and fans
// messages out. UDPServer receives CBOR-encoded wire.Message datagrams and
// hands them to a Handler; Client sends them.
//
// The parameter core is single-threaded. A UDPServer runs its own
// goroutine, so its handler should be wrapped with Serialized using the
// registry's lock:
//
//	router := bridge.NewRouter()
//	reg := param.NewRegistry(param.Config{Bridge: router})
//	srv := bridge.NewUDPServer(":9000", bridge.Serialized(router, reg.Locker()), logger)
package bridge
