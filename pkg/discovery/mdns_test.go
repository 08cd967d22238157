package discovery

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNetwork stands in for the multicast network. Registered instances
// are answered to every browse.
type fakeNetwork struct {
	mu   sync.Mutex
	regs []*fakeRegistration

	// browseDone is closed when a browse returns.
	browseDone chan struct{}
}

type fakeRegistration struct {
	net     *fakeNetwork
	entry   *zeroconf.ServiceEntry
	stopped bool
}

func (r *fakeRegistration) Shutdown() {
	r.net.mu.Lock()
	defer r.net.mu.Unlock()
	r.stopped = true
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{browseDone: make(chan struct{})}
}

func (n *fakeNetwork) register(instance string, port int, txt []string, _ []net.Interface, _ ...zeroconf.ServerOption) (registration, error) {
	r := &fakeRegistration{net: n, entry: testEntry(instance, port, txt...)}
	n.mu.Lock()
	n.regs = append(n.regs, r)
	n.mu.Unlock()
	return r, nil
}

func (n *fakeNetwork) active() []*zeroconf.ServiceEntry {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []*zeroconf.ServiceEntry
	for _, r := range n.regs {
		if !r.stopped {
			out = append(out, r.entry)
		}
	}
	return out
}

func (n *fakeNetwork) browse(ctx context.Context, entries, _ chan *zeroconf.ServiceEntry, _ ...zeroconf.ClientOption) error {
	defer close(n.browseDone)
	for _, e := range n.active() {
		select {
		case entries <- e:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func testEntry(instance string, port int, txt ...string) *zeroconf.ServiceEntry {
	entry := &zeroconf.ServiceEntry{}
	entry.Instance = instance
	entry.HostName = instance + ".local."
	entry.Port = port
	entry.Text = txt
	entry.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.20")}
	return entry
}

func testAdvertiser(n *fakeNetwork) *Advertiser {
	a := NewAdvertiser(DefaultConfig())
	a.register = n.register
	return a
}

func testBrowser(n *fakeNetwork) *Browser {
	b := NewBrowser(DefaultConfig())
	b.browse = n.browse
	return b
}

func TestAdvertiseThenFind(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)
	ctx := context.Background()

	require.NoError(t, adv.Advertise(ctx, &Info{Device: "kitchen", Port: 9100, Parameters: 4}))
	defer adv.Stop()

	other := testAdvertiser(n)
	require.NoError(t, other.Advertise(ctx, &Info{Device: "garage", Port: 9200}))
	defer other.Stop()

	svc, err := testBrowser(n).Find(ctx, "garage")
	require.NoError(t, err)
	assert.Equal(t, "garage", svc.InstanceName)
	assert.Equal(t, uint16(9200), svc.Port)
	assert.Equal(t, WireVersion, svc.Version)
	assert.Equal(t, 0, svc.Parameters)
	assert.Equal(t, "192.168.1.20:9200", svc.HostPort())
}

func TestFindEmptyNameReturnsFirst(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)
	require.NoError(t, adv.Advertise(context.Background(), &Info{Device: "kitchen", Port: 9100, Parameters: 4}))

	svc, err := testBrowser(n).Find(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "kitchen", svc.InstanceName)
	assert.Equal(t, 4, svc.Parameters)
}

func TestFindTimesOut(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)
	require.NoError(t, adv.Advertise(context.Background(), &Info{Device: "kitchen", Port: 9100}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testBrowser(n).Find(ctx, "attic")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindStopsBrowseWhenFound(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)
	require.NoError(t, adv.Advertise(context.Background(), &Info{Device: "kitchen", Port: 9100}))

	// The caller's deadline is far away; a match must still end the browse.
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	_, err := testBrowser(n).Find(ctx, "kitchen")
	require.NoError(t, err)

	select {
	case <-n.browseDone:
	case <-time.After(time.Second):
		t.Fatal("browse still running after Find returned")
	}
}

func TestFindSkipsStoppedAdvertisement(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)
	require.NoError(t, adv.Advertise(context.Background(), &Info{Device: "kitchen", Port: 9100}))
	adv.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testBrowser(n).Find(ctx, "kitchen")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvertiseReplacesPrevious(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)
	ctx := context.Background()

	require.NoError(t, adv.Advertise(ctx, &Info{Device: "kitchen", Port: 9100}))
	require.NoError(t, adv.Advertise(ctx, &Info{Device: "kitchen", Port: 9101}))

	active := n.active()
	require.Len(t, active, 1)
	assert.Equal(t, 9101, active[0].Port)

	adv.Stop()
	assert.Empty(t, n.active())
	adv.Stop()
}

func TestAdvertiseDefaults(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)
	require.NoError(t, adv.Advertise(context.Background(), &Info{Device: "kitchen"}))

	active := n.active()
	require.Len(t, active, 1)
	assert.Equal(t, DefaultPort, active[0].Port)
	assert.ElementsMatch(t, []string{"dev=kitchen", "ver=1"}, active[0].Text)
}

func TestAdvertiseRejectsInvalidName(t *testing.T) {
	n := newFakeNetwork()
	adv := testAdvertiser(n)

	err := adv.Advertise(context.Background(), &Info{Device: ""})
	assert.ErrorIs(t, err, ErrInvalidInstanceName)
	assert.Empty(t, n.active())
}

func TestAdvertiseRegisterError(t *testing.T) {
	adv := NewAdvertiser(DefaultConfig())
	boom := errors.New("no multicast interface")
	adv.register = func(string, int, []string, []net.Interface, ...zeroconf.ServerOption) (registration, error) {
		return nil, boom
	}

	err := adv.Advertise(context.Background(), &Info{Device: "kitchen"})
	assert.ErrorIs(t, err, boom)
	adv.Stop()
}

func TestBrowseDropsDuplicates(t *testing.T) {
	kitchenV6 := testEntry("kitchen", 9100, "dev=kitchen", "ver=1")
	kitchenV6.AddrIPv4 = nil
	kitchenV6.AddrIPv6 = []net.IP{net.ParseIP("fe80::1")}

	type step struct {
		entry   *zeroconf.ServiceEntry
		removed bool
	}
	script := []step{
		{entry: testEntry("kitchen", 9100, "dev=kitchen", "ver=1")},
		{entry: kitchenV6},
		{entry: testEntry("broken", 9300, "ver=1")},
		{entry: testEntry("garage", 9200, "dev=garage", "ver=1")},
		{entry: testEntry("kitchen", 9100), removed: true},
		{entry: testEntry("kitchen", 9100, "dev=kitchen", "ver=1")},
	}

	b := NewBrowser(DefaultConfig())
	b.browse = func(ctx context.Context, entries, removed chan *zeroconf.ServiceEntry, _ ...zeroconf.ClientOption) error {
		for _, s := range script {
			ch := entries
			if s.removed {
				ch = removed
			}
			select {
			case ch <- s.entry:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := b.Browse(ctx)
	require.NoError(t, err)

	var names []string
	for len(names) < 3 {
		select {
		case svc, ok := <-services:
			require.True(t, ok, "browse ended early")
			names = append(names, svc.InstanceName)
		case <-time.After(time.Second):
			t.Fatalf("timed out, got %v", names)
		}
	}
	assert.Equal(t, []string{"kitchen", "garage", "kitchen"}, names)

	cancel()
	for range services {
		t.Error("unexpected service after cancel")
	}
}

// TestAdvertiseAndFindOverMDNS uses the real multicast network.
func TestAdvertiseAndFindOverMDNS(t *testing.T) {
	if testing.Short() {
		t.Skip("uses the multicast network")
	}

	adv := NewAdvertiser(DefaultConfig())
	err := adv.Advertise(context.Background(), &Info{Device: "ardupar-find-test", Port: 9400, Parameters: 2})
	if err != nil {
		t.Skipf("mDNS unavailable: %v", err)
	}
	defer adv.Stop()

	// Give mDNS time to propagate
	time.Sleep(500 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	svc, err := NewBrowser(DefaultConfig()).Find(ctx, "ardupar-find-test")
	if err != nil {
		t.Fatalf("Did not find advertised bridge: %v", err)
	}
	if svc.Port != 9400 || svc.Parameters != 2 {
		t.Errorf("svc = %+v", svc)
	}
}
