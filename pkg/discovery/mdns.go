package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// Config selects the interface and TTL used for mDNS.
type Config struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultConfig returns the default mDNS configuration.
func DefaultConfig() Config {
	return Config{TTL: 120 * time.Second}
}

func (c Config) interfaces() []net.Interface {
	if c.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(c.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// registration is a published service instance.
type registration interface {
	Shutdown()
}

// registerFunc publishes one bridge instance.
type registerFunc func(instance string, port int, txt []string, ifaces []net.Interface, opts ...zeroconf.ServerOption) (registration, error)

// browseFunc streams bridge entries until ctx is done.
type browseFunc func(ctx context.Context, entries, removed chan *zeroconf.ServiceEntry, opts ...zeroconf.ClientOption) error

func zeroconfRegister(instance string, port int, txt []string, ifaces []net.Interface, opts ...zeroconf.ServerOption) (registration, error) {
	server, err := zeroconf.Register(instance, ServiceType, Domain, port, txt, ifaces, opts...)
	if err != nil {
		return nil, err
	}
	return server, nil
}

func zeroconfBrowse(ctx context.Context, entries, removed chan *zeroconf.ServiceEntry, opts ...zeroconf.ClientOption) error {
	return zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
}

// Advertiser publishes a bridge over mDNS.
type Advertiser struct {
	config   Config
	register registerFunc

	mu     sync.Mutex
	server registration
}

// NewAdvertiser creates a new mDNS advertiser.
func NewAdvertiser(config Config) *Advertiser {
	return &Advertiser{config: config, register: zeroconfRegister}
}

// Advertise starts advertising info, replacing any previous advertisement.
func (a *Advertiser) Advertise(ctx context.Context, info *Info) error {
	if err := ValidateInstanceName(info.Device); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := a.register(
		info.Device,
		port,
		TXTRecordsToStrings(EncodeTXT(info)),
		a.config.interfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register bridge service: %w", err)
	}

	a.server = server
	return nil
}

// Stop stops advertising. It is safe to call when not advertising.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// Browser finds bridges over mDNS.
type Browser struct {
	config Config
	browse browseFunc
}

// NewBrowser creates a new mDNS browser.
func NewBrowser(config Config) *Browser {
	return &Browser{config: config, browse: zeroconfBrowse}
}

func (b *Browser) options() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if ifaces := b.config.interfaces(); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}
	return opts
}

// Browse streams discovered bridges until ctx is cancelled. Each instance
// is delivered once; repeated entries for it (one per interface or
// address family) are dropped until it is removed.
func (b *Browser) Browse(ctx context.Context) (<-chan *Service, error) {
	out := make(chan *Service)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)

		seen := make(map[string]bool)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToService(entry)
				if svc == nil || seen[svc.InstanceName] {
					continue
				}
				seen[svc.InstanceName] = true
				select {
				case out <- svc:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if ok {
					delete(seen, entry.Instance)
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = b.browse(ctx, entries, removed, b.options()...)
	}()

	return out, nil
}

// Find returns the first bridge whose device name equals device, or the
// first bridge found when device is empty.
func (b *Browser) Find(ctx context.Context, device string) (*Service, error) {
	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); ok {
		ctx, cancel = context.WithCancel(ctx)
	} else {
		ctx, cancel = context.WithTimeout(ctx, BrowseTimeout)
	}
	// Stops the browse as soon as a match is returned.
	defer cancel()

	services, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}
	for svc := range services {
		if device == "" || svc.InstanceName == device {
			return svc, nil
		}
	}
	return nil, ErrNotFound
}

// entryToService converts a zeroconf entry to a Service.
// Entries with unparseable TXT records are ignored.
func entryToService(entry *zeroconf.ServiceEntry) *Service {
	info, version, err := DecodeTXT(StringsToTXTRecords(entry.Text))
	if err != nil {
		return nil
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &Service{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         uint16(entry.Port),
		Addresses:    addrs,
		Version:      version,
		Parameters:   info.Parameters,
	}
}

// HostPort returns "addr:port" for the service's first address, or the
// host name when no address was resolved.
func (s *Service) HostPort() string {
	host := s.Host
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
	}
	return net.JoinHostPort(host, fmt.Sprint(s.Port))
}
