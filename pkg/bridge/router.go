package bridge

import (
	"sync"

	"github.com/ardupar/ardupar-go/pkg/wire"
)

// Handler routes a decoded message and reports how many sinks took it.
type Handler interface {
	Route(msg *wire.Message) int
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(msg *wire.Message) int

// Route calls f(msg).
func (f HandlerFunc) Route(msg *wire.Message) int { return f(msg) }

// Router is a Bridge that delivers messages to registered sinks by exact
// address match, in registration order.
type Router struct {
	mu    sync.RWMutex
	sinks []Sink
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{}
}

// Register adds a sink.
func (r *Router) Register(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks = append(r.sinks, s)
}

// AddressOf returns the sink's address.
func (r *Router) AddressOf(s Sink) string {
	return s.Address()
}

// Len returns the number of registered sinks.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sinks)
}

// Addresses returns the registered addresses in registration order.
func (r *Router) Addresses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.sinks))
	for i, s := range r.sinks {
		out[i] = s.Address()
	}
	return out
}

// Route delivers msg to every sink whose address equals msg.Address and
// returns the number of sinks that digested it.
func (r *Router) Route(msg *wire.Message) int {
	r.mu.RLock()
	sinks := make([]Sink, len(r.sinks))
	copy(sinks, r.sinks)
	r.mu.RUnlock()

	n := 0
	for _, s := range sinks {
		if s.Address() != msg.Address {
			continue
		}
		if s.Digest(msg) {
			n++
		}
	}
	return n
}

// Serialized returns a Handler that holds l while h routes a message.
func Serialized(h Handler, l sync.Locker) Handler {
	return HandlerFunc(func(msg *wire.Message) int {
		l.Lock()
		defer l.Unlock()
		return h.Route(msg)
	})
}

// Compile-time interface satisfaction checks.
var (
	_ Bridge  = (*Router)(nil)
	_ Handler = (*Router)(nil)
)
