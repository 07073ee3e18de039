package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/config"
	"github.com/badisi/samsung-tv-remote/internal/discovery"
	"github.com/badisi/samsung-tv-remote/internal/logging"
)

// FileName is the fixed name of the cache file inside the cache directory
const FileName = "badisi-samsung-tv-remote-device-cache.json"

// Cache maps a MAC address to the most recently seen device with that MAC
type Cache map[string]discovery.Device

// DefaultPath returns the platform cache file path
func DefaultPath() (string, error) {
	dir, err := config.GetCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the cache at path. A missing, unreadable or malformed file
// yields an empty cache; Load never fails. Entries are re-keyed by their
// canonical MAC.
func Load(path string) Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("Failed to read device cache", zap.String("path", path), zap.Error(err))
		}
		return Cache{}
	}

	var raw map[string]discovery.Device
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		logging.Warn("Ignoring malformed device cache", zap.String("path", path), zap.Error(err))
		return Cache{}
	}

	// Older caches keep the MAC as the TV sent it, often lower case.
	c := make(Cache, len(raw))
	for key, device := range raw {
		mac := device.MAC
		if mac == "" {
			mac = key
		}
		device.MAC = discovery.NormalizeMAC(mac)
		c[device.MAC] = device
	}
	return c
}

// Merge overwrites the entry of every fresh device, keyed by MAC, in order.
// Later devices with the same MAC win. The receiver is updated and returned.
func (c Cache) Merge(fresh []discovery.Device) Cache {
	if c == nil {
		c = Cache{}
	}
	for _, device := range fresh {
		c[device.MAC] = device
	}
	return c
}

// Save writes the whole cache to path, replacing the previous content
func (c Cache) Save(path string) error {
	if c == nil {
		c = Cache{}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal device cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary cache file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save device cache: %w", err)
	}

	return nil
}

// Remove deletes the entry for mac and reports whether it existed
func (c Cache) Remove(mac string) bool {
	mac = discovery.NormalizeMAC(mac)
	if _, ok := c[mac]; !ok {
		return false
	}
	delete(c, mac)
	return true
}

// Values returns every cached device, ordered by MAC
func (c Cache) Values() []discovery.Device {
	devices := make([]discovery.Device, 0, len(c))
	for _, device := range c {
		devices = append(devices, device)
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].MAC < devices[j].MAC
	})
	return devices
}

// Refresh loads the cache, merges fresh into it and saves the result.
// The merged cache is returned even when saving fails.
func Refresh(path string, fresh []discovery.Device) (Cache, error) {
	c := Load(path).Merge(fresh)
	if err := c.Save(path); err != nil {
		return c, err
	}
	return c, nil
}
