package discovery

import (
	"net"
	"regexp"
	"strings"
)

// BrandMarker must appear somewhere in a reply for it to be considered.
// It is a coarse filter on the raw text, not a protocol field.
const BrandMarker = "Samsung"

// macPattern extracts the MAC from a WAKEUP header ("MAC=f4:7d:ef:..;Timeout=10")
var macPattern = regexp.MustCompile(`(?i)MAC=([0-9a-f]{2}(?:[:-][0-9a-f]{2}){5})`)

// ParseHeaders parses "KEY: value" lines into a map keyed by the upper-cased
// header name. The first colon separates key and value, values are trimmed
// and lines without a colon are skipped.
func ParseHeaders(msg string) map[string]string {
	headers := make(map[string]string)

	for _, line := range strings.Split(msg, "\n") {
		key, value, ok := strings.Cut(strings.TrimRight(line, "\r"), ":")
		if !ok {
			continue
		}

		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}

	return headers
}

// reply is a candidate device projected from one discovery datagram
type reply struct {
	Device   Device
	Location string
}

// parseReply converts a discovery datagram into a candidate device.
// Returns nil if the datagram is not from a Samsung device or carries no
// headers at all.
func parseReply(data []byte, from *net.UDPAddr) *reply {
	text := string(data)
	if !strings.Contains(text, BrandMarker) {
		return nil
	}

	headers := ParseHeaders(text)
	if len(headers) == 0 {
		return nil
	}

	ip := ""
	if from != nil {
		ip = from.IP.String()
	}

	r := &reply{
		Device: Device{
			FriendlyName: ip,
			IP:           ip,
			MAC:          UnknownMAC,
		},
		Location: headers["LOCATION"],
	}

	if matches := macPattern.FindStringSubmatch(headers["WAKEUP"]); len(matches) == 2 {
		r.Device.MAC = NormalizeMAC(matches[1])
	}

	return r
}
