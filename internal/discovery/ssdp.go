package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/badisi/samsung-tv-remote/internal/logging"
)

const (
	// SearchTarget is the SSDP service type Samsung TVs answer to
	SearchTarget = "urn:dial-multiscreen-org:service:dial:1"

	// MulticastTTL keeps the query on the local network
	MulticastTTL = 2

	// maxDatagramSize bounds a single SSDP reply
	maxDatagramSize = 8192
)

// MulticastAddr is the standard SSDP multicast group
var MulticastAddr = &net.UDPAddr{
	IP:   net.IPv4(239, 255, 255, 250),
	Port: 1900,
}

// Discoverer finds devices within a time window. Implementations never fail;
// transport problems are logged and produce fewer devices.
type Discoverer interface {
	Discover(ctx context.Context, window time.Duration) []Device
}

// Prober discovers Samsung TVs with a single SSDP M-SEARCH query
type Prober struct {
	// Target is where the query is sent (default: MulticastAddr)
	Target *net.UDPAddr

	// SearchTarget is the ST header of the query
	SearchTarget string

	// Resolver fetches friendly names from descriptor URLs (nil disables it)
	Resolver *NameResolver
}

// NewProber creates a new SSDP prober with default settings
func NewProber() *Prober {
	return &Prober{
		Target:       MulticastAddr,
		SearchTarget: SearchTarget,
		Resolver:     NewNameResolver(),
	}
}

// searchRequest builds the M-SEARCH datagram
func (p *Prober) searchRequest() []byte {
	return []byte("M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + MulticastAddr.String() + "\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 1\r\n" +
		"ST: " + p.SearchTarget + "\r\n" +
		"\r\n")
}

// Discover sends one query and returns as soon as one device has been
// collected or the window has elapsed, whichever comes first. The socket
// is closed before returning.
func (p *Prober) Discover(ctx context.Context, window time.Duration) []Device {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		logging.Warn("Failed to open discovery socket", zap.Error(err))
		return nil
	}

	if err := ipv4.NewPacketConn(conn).SetMulticastTTL(MulticastTTL); err != nil {
		logging.Warn("Failed to set multicast TTL", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	target := p.Target
	if target == nil {
		target = MulticastAddr
	}

	if _, err := conn.WriteToUDP(p.searchRequest(), target); err != nil {
		logging.Warn("Failed to send discovery query",
			zap.Stringer("target", target),
			zap.Error(err),
		)
		_ = conn.Close()
		return nil
	}
	logging.Debug("Discovery query sent",
		zap.Stringer("target", target),
		zap.Duration("window", window),
	)

	var (
		mu      sync.Mutex
		devices []Device
		wg      sync.WaitGroup
	)
	found := make(chan struct{}, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.receive(ctx, conn, func(d Device) {
			mu.Lock()
			devices = append(devices, d)
			mu.Unlock()

			select {
			case found <- struct{}{}:
			default:
			}
		})
	}()

	select {
	case <-ctx.Done():
	case <-found:
	}

	// Cancelling aborts an in-flight descriptor fetch; closing unblocks the read.
	cancel()
	_ = conn.Close()
	wg.Wait()

	logging.Debug("Discovery finished", zap.Int("devices", len(devices)))
	return devices
}

// receive reads datagrams until the socket is closed or the context ends
func (p *Prober) receive(ctx context.Context, conn *net.UDPConn, emit func(Device)) {
	buf := make([]byte, maxDatagramSize)

	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				logging.Warn("Discovery receive failed", zap.Error(err))
			}
			return
		}

		data := buf[:n]
		r := parseReply(data, from)
		logging.LogDatagram(from, r != nil, data)
		if r == nil {
			continue
		}

		if r.Location != "" && p.Resolver != nil {
			if name, ok := p.Resolver.Resolve(ctx, r.Location); ok {
				r.Device.FriendlyName = name
			}
		}

		if ctx.Err() != nil {
			return
		}
		emit(r.Device)
	}
}

// DiscoverAll runs the discoverers concurrently within one window. The first
// discoverer to report devices stops the others, which return what they
// found so far. Results are concatenated in discoverer order.
func DiscoverAll(ctx context.Context, window time.Duration, discoverers ...Discoverer) []Device {
	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	results := make([][]Device, len(discoverers))
	var wg sync.WaitGroup
	for i, d := range discoverers {
		i, d := i, d
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = d.Discover(ctx, window)
			if len(results[i]) > 0 {
				cancel()
			}
		}()
	}
	wg.Wait()

	var devices []Device
	for _, found := range results {
		devices = append(devices, found...)
	}
	return devices
}

// String describes the prober for logs
func (p *Prober) String() string {
	return fmt.Sprintf("ssdp(%s)", p.SearchTarget)
}
