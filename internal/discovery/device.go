package discovery

import (
	"fmt"
	"net"
	"strings"
)

// UnknownMAC is recorded for devices that never reported a wake-up MAC.
// All such devices share this cache key.
const UnknownMAC = "00:00:00:00:00:00"

// Device represents a discovered Samsung TV. It is also the value stored in
// the device cache, so the JSON field names are part of the cache format.
type Device struct {
	// FriendlyName is the name from the device descriptor, or the IP when
	// the descriptor could not be fetched
	FriendlyName string `json:"friendlyName"`

	// IP is the address the device answered from (e.g., "192.168.1.20")
	IP string `json:"ip"`

	// MAC is the canonical hardware address (e.g., "F4:7D:EF:12:34:56")
	MAC string `json:"mac"`
}

// String returns a human-readable string representation of the device
func (d Device) String() string {
	return fmt.Sprintf("%s (%s, %s)", d.FriendlyName, d.IP, d.MAC)
}

// HasKnownMAC reports whether the device reported a real hardware address
func (d Device) HasKnownMAC() bool {
	return d.MAC != "" && d.MAC != UnknownMAC
}

// NormalizeMAC converts a hardware address to upper-case colon separated
// form. Values that do not parse as a 6 byte MAC yield UnknownMAC.
func NormalizeMAC(mac string) string {
	hw, err := net.ParseMAC(strings.TrimSpace(mac))
	if err != nil || len(hw) != 6 {
		return UnknownMAC
	}
	return strings.ToUpper(hw.String())
}

// Matches reports whether query names this device by MAC, IP or friendly
// name. Names compare case-insensitively.
func (d Device) Matches(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	if query == d.IP || strings.EqualFold(query, d.FriendlyName) {
		return true
	}
	mac := NormalizeMAC(query)
	return mac != UnknownMAC && mac == d.MAC
}
