package param

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
	plog "github.com/ardupar/ardupar-go/pkg/log"
)

// recordingLogger collects change events.
type recordingLogger struct {
	mu     sync.Mutex
	events []plog.Event
}

func (l *recordingLogger) Log(e plog.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *recordingLogger) byCategory(c plog.Category) []plog.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []plog.Event
	for _, e := range l.events {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// mockStore is a testify mock for eeprom.Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) ReadBlock(dst []byte, addr eeprom.Address) error {
	args := m.Called(dst, addr)
	return args.Error(0)
}

func (m *mockStore) WriteBlock(src []byte, addr eeprom.Address) error {
	args := m.Called(src, addr)
	return args.Error(0)
}

var fixedTime = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func newTestRegistry(cfg Config) *Registry {
	r := NewRegistry(cfg)
	r.env.timeNow = func() time.Time { return fixedTime }
	return r
}

func newPersistentRegistry(size int) (*Registry, *eeprom.MemStore) {
	store := eeprom.NewMemStore(size)
	return newTestRegistry(Config{Store: store, Allocator: eeprom.NewAllocator()}), store
}
