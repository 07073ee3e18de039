// Package discovery finds Samsung TVs on the local network.
//
// The primary mechanism is a single SSDP M-SEARCH query sent to
// 239.255.255.250:1900 for the DIAL multiscreen service type. Replies are
// parsed as "KEY: value" header blocks; anything that does not mention
// "Samsung" is ignored.
//
// # Discovery Process
//
//  1. Open a UDP socket with a multicast TTL of 2
//  2. Send one M-SEARCH query
//  3. Parse each reply, taking the MAC from the WAKEUP header and the
//     descriptor URL from LOCATION
//  4. Fetch the descriptor and use its <friendlyName> (best effort)
//  5. Return as soon as one device is collected or the window elapses
//
// # Usage Example
//
//	devices := discovery.NewProber().Discover(ctx, 5*time.Second)
//	for _, device := range devices {
//	    fmt.Printf("Found: %s\n", device)
//	}
//
// Devices that never report a MAC get UnknownMAC and cannot be told apart
// once merged into the cache.
//
// An optional MDNSProber browses for AirPlay advertisements as a second
// source; both implement Discoverer.
package discovery
