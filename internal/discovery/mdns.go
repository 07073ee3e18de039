package discovery

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/logging"
)

const (
	// AirPlayService is advertised by AirPlay capable Samsung TVs (2018+)
	AirPlayService = "_airplay._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."
)

// MDNSProber finds Samsung TVs advertising AirPlay over mDNS. Unlike Prober
// it always waits for the whole window.
type MDNSProber struct {
	Service string
	Domain  string
}

// NewMDNSProber creates a new mDNS prober with default settings
func NewMDNSProber() *MDNSProber {
	return &MDNSProber{
		Service: AirPlayService,
		Domain:  ServiceDomain,
	}
}

// Discover browses for the service until the window elapses
func (m *MDNSProber) Discover(ctx context.Context, window time.Duration) []Device {
	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		logging.Warn("Failed to create mDNS resolver", zap.Error(err))
		return nil
	}

	var (
		mu      sync.Mutex
		devices []Device
	)
	entries := make(chan *zeroconf.ServiceEntry)

	go func() {
		for entry := range entries {
			if device := parseServiceEntry(entry); device != nil {
				mu.Lock()
				devices = append(devices, *device)
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, m.Service, m.Domain, entries); err != nil {
		logging.Warn("Failed to browse for mDNS services", zap.Error(err))
		return nil
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]Device(nil), devices...)
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil if the entry is not a Samsung device or has no address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	if entry == nil {
		return nil
	}

	isSamsung := strings.Contains(entry.Instance, BrandMarker)
	mac := UnknownMAC
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		if strings.Contains(value, BrandMarker) {
			isSamsung = true
		}
		if strings.EqualFold(key, "deviceid") {
			mac = NormalizeMAC(value)
		}
	}
	if !isSamsung {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	name := strings.ReplaceAll(entry.Instance, `\ `, " ")
	if name == "" {
		name = ip
	}

	return &Device{
		FriendlyName: name,
		IP:           ip,
		MAC:          mac,
	}
}
