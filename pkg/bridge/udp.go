package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/ardupar/ardupar-go/pkg/wire"
)

// Server errors.
var (
	ErrServerStarted = errors.New("server already started")
	ErrNotStarted    = errors.New("server not started")
)

// UDPServer receives one CBOR-encoded wire.Message per datagram and hands
// it to a Handler. Malformed datagrams are logged and dropped.
type UDPServer struct {
	addr    string
	handler Handler
	logger  *slog.Logger

	mu     sync.Mutex
	conn   net.PacketConn
	cancel context.CancelFunc
	done   chan struct{}

	received int
	dropped  int
}

// NewUDPServer creates a server that will listen on addr ("host:port").
// A nil logger disables logging.
func NewUDPServer(addr string, h Handler, logger *slog.Logger) *UDPServer {
	return &UDPServer{
		addr:    addr,
		handler: h,
		logger:  logger,
	}
}

// Start binds the socket and starts the receive loop.
// The loop ends when ctx is cancelled or Stop is called.
func (s *UDPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return ErrServerStarted
	}

	var lc net.ListenConfig
	conn, err := lc.ListenPacket(ctx, "udp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s.conn = conn
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go s.serve(ctx, conn, s.done)

	s.debugLog("bridge listening", "addr", conn.LocalAddr().String())
	return nil
}

func (s *UDPServer) serve(ctx context.Context, conn net.PacketConn, done chan struct{}) {
	defer close(done)

	buf := make([]byte, wire.MaxMessageSize+1)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			s.warnLog("bridge read failed", "error", err)
			continue
		}

		msg, err := wire.DecodeMessage(buf[:n])
		if err != nil {
			s.count(false)
			s.warnLog("bridge message dropped", "from", from.String(), "error", err)
			continue
		}
		s.count(true)

		taken := s.handler.Route(msg)
		s.debugLog("bridge message", "from", from.String(), "msg", msg.String(), "sinks", taken)
	}
}

func (s *UDPServer) count(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.received++
	} else {
		s.dropped++
	}
}

// Addr returns the bound address, or nil before Start.
func (s *UDPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Stats returns the number of routed and dropped datagrams.
func (s *UDPServer) Stats() (received, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received, s.dropped
}

// Stop closes the socket and waits for the receive loop to exit.
func (s *UDPServer) Stop() error {
	s.mu.Lock()
	if s.conn == nil {
		s.mu.Unlock()
		return ErrNotStarted
	}
	cancel, done := s.cancel, s.done
	s.conn = nil
	s.mu.Unlock()

	cancel()
	<-done
	return nil
}

func (s *UDPServer) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *UDPServer) warnLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
