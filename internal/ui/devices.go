package ui

import (
	"fmt"
	"strings"

	"github.com/badisi/samsung-tv-remote/internal/discovery"
	"github.com/badisi/samsung-tv-remote/internal/keys"
)

// DeviceLabel returns the name shown for d, preferring a user nickname
func DeviceLabel(d discovery.Device, nickname string) string {
	if nickname != "" {
		return nickname
	}
	if d.FriendlyName != "" {
		return d.FriendlyName
	}
	return d.IP
}

// RenderDeviceList renders an indexed list of devices. label may be nil.
func RenderDeviceList(devices []discovery.Device, label func(discovery.Device) string) string {
	if label == nil {
		label = func(d discovery.Device) string { return DeviceLabel(d, "") }
	}

	var b strings.Builder
	for i, d := range devices {
		mac := d.MAC
		if !d.HasKnownMAC() {
			mac = "MAC unknown"
		}
		fmt.Fprintf(&b, "  %s %s  %s\n",
			IndexStyle.Render(fmt.Sprintf("[%d]", i)),
			DeviceNameStyle.Render(label(d)),
			DeviceDetailStyle.Render(d.IP+" · "+mac),
		)
	}
	return b.String()
}

// keyLegend lists the keys in the order they are shown to the user
var keyLegend = []struct {
	caps string
	key  keys.Key
}{
	{"0-9", keys.Digit0},
	{"←↑→↓", keys.Up},
	{"enter", keys.Enter},
	{"esc", keys.Home},
	{"del", keys.Back},
	{"p", keys.Play},
	{"+/-", keys.VolumeUp},
	{"w/s", keys.ChannelUp},
	{"q", keys.PowerOff},
	{"f", keys.ForceQuit},
}

var legendText = map[keys.Key]string{
	keys.Digit0:    "digits",
	keys.Up:        "navigate",
	keys.Enter:     "ok",
	keys.Home:      "home",
	keys.Back:      "back",
	keys.Play:      "play",
	keys.VolumeUp:  "volume",
	keys.ChannelUp: "channel",
	keys.PowerOff:  "power off & quit",
	keys.ForceQuit: "quit",
}

// RenderKeyLegend renders the key bindings of the interactive remote
func RenderKeyLegend() string {
	parts := make([]string, 0, len(keyLegend))
	for _, l := range keyLegend {
		parts = append(parts, KeyCapStyle.Render(l.caps)+" "+DeviceDetailStyle.Render(legendText[l.key]))
	}
	return "  " + strings.Join(parts, DeviceDetailStyle.Render(" • "))
}
