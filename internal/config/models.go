package config

import "time"

const (
	// DefaultDiscoverTimeoutMs is the default discovery window
	DefaultDiscoverTimeoutMs = 5000

	// DefaultRemoteName is how the remote identifies itself to the TV
	DefaultRemoteName = "samsung-tv-remote"
)

// Registry represents the entire user configuration file.
// This stores application preferences and per-TV pairing data.
type Registry struct {
	Version     int                `yaml:"version"`
	Preferences *Preferences       `yaml:"preferences,omitempty"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by MAC address
}

// Device represents user data for a single TV.
// This is keyed by the TV's MAC address in the Registry.
type Device struct {
	Nickname   string    `yaml:"nickname,omitempty"`    // User-friendly name shown instead of the descriptor name
	Token      string    `yaml:"token,omitempty"`       // Pairing token issued by the TV on the secure channel
	LastPaired time.Time `yaml:"last_paired,omitempty"` // When the token was issued
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DiscoverTimeoutMs int    `yaml:"discover_timeout_ms"` // Discovery window in milliseconds
	RemoteName        string `yaml:"remote_name"`         // Name shown on the TV when pairing
	MDNS              bool   `yaml:"mdns"`                // Also browse mDNS during discovery
}

func defaultPreferences() *Preferences {
	return &Preferences{
		DiscoverTimeoutMs: DefaultDiscoverTimeoutMs,
		RemoteName:        DefaultRemoteName,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Preferences: defaultPreferences(),
		Devices:     make(map[string]*Device),
	}
}

// DiscoverTimeout returns the configured discovery window
func (r *Registry) DiscoverTimeout() time.Duration {
	if r.Preferences == nil || r.Preferences.DiscoverTimeoutMs <= 0 {
		return DefaultDiscoverTimeoutMs * time.Millisecond
	}
	return time.Duration(r.Preferences.DiscoverTimeoutMs) * time.Millisecond
}

// RemoteName returns the configured remote name
func (r *Registry) RemoteName() string {
	if r.Preferences == nil || r.Preferences.RemoteName == "" {
		return DefaultRemoteName
	}
	return r.Preferences.RemoteName
}

// GetDevice retrieves device data by MAC address.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(mac string) *Device {
	return r.Devices[mac]
}

// EnsureDevice ensures a device entry exists in the registry.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(mac string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[mac]; exists {
		return device
	}

	device := &Device{}
	r.Devices[mac] = device
	return device
}

// Token returns the stored pairing token for a TV, or "".
func (r *Registry) Token(mac string) string {
	if device := r.GetDevice(mac); device != nil {
		return device.Token
	}
	return ""
}

// SetToken stores a pairing token for a TV.
func (r *Registry) SetToken(mac, token string) {
	device := r.EnsureDevice(mac)
	device.Token = token
	device.LastPaired = time.Now()
}

// Nickname returns the nickname for a TV, or "".
func (r *Registry) Nickname(mac string) string {
	if device := r.GetDevice(mac); device != nil {
		return device.Nickname
	}
	return ""
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(mac, nickname string) {
	device := r.EnsureDevice(mac)
	device.Nickname = nickname
}
