// Package config provides user configuration management for samsung-tv-remote.
//
// This package manages a YAML configuration file holding application
// preferences (discovery window, remote name, mDNS) and per-TV data keyed by
// MAC address (nickname and the pairing token issued by the TV).
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/samsung-tv-remote/config.yaml or $HOME/.config/samsung-tv-remote/config.yaml
//   - macOS: $HOME/.config/samsung-tv-remote/config.yaml
//   - Windows: %LOCALAPPDATA%\samsung-tv-remote\config.yaml
//
// GetCacheDir resolves the per-user cache directory used by the device
// cache, following the same platform switch.
//
// # Usage Example
//
//	path, _ := config.GetConfigPath()
//	registry, err := config.LoadRegistry(path)
//	if err != nil {
//	    return err
//	}
//	registry.SetToken(mac, token)
//	if err := registry.Save(path); err != nil {
//	    return err
//	}
//
// Saves are atomic (temporary file plus rename) and the file is created with
// user-only permissions because it contains pairing tokens.
package config
