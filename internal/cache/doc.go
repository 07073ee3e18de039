// Package cache persists discovered TVs across runs.
//
// The cache is a JSON object mapping MAC addresses to the last device seen
// with that MAC:
//
//	{
//	  "F4:7D:EF:12:34:56": {"friendlyName": "[TV] Living Room", "ip": "192.168.1.20", "mac": "F4:7D:EF:12:34:56"}
//	}
//
// Merging is last-write-wins per MAC with no field-level blending, so a TV
// that changed IP simply replaces its old entry. Devices without a reported
// MAC all share discovery.UnknownMAC and overwrite each other.
//
// The file lives in the per-user cache directory (see config.GetCacheDir).
// No file locking is done; concurrent runs race and the last writer wins.
package cache
