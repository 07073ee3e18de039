package session

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/discovery"
	"github.com/badisi/samsung-tv-remote/internal/keys"
	"github.com/badisi/samsung-tv-remote/internal/logging"
	"github.com/badisi/samsung-tv-remote/internal/terminal"
)

var (
	// ErrNoDevices is returned when there is nothing to control
	ErrNoDevices = errors.New("no devices found")

	// ErrAborted is returned when the user quits while picking a device
	ErrAborted = errors.New("device selection aborted")
)

// Labeler names a device in the selection list
type Labeler func(discovery.Device) string

// Select picks the device to control. A single device is chosen without
// asking. With several, an indexed list is printed to out and keys are read
// from dec until a listed digit is pressed.
func Select(devices []discovery.Device, dec *keys.Decoder, out io.Writer, label Labeler) (discovery.Device, error) {
	switch len(devices) {
	case 0:
		return discovery.Device{}, ErrNoDevices
	case 1:
		logging.Info("Auto-selected only device", zap.String("device", devices[0].String()))
		return devices[0], nil
	}

	if label == nil {
		label = discovery.Device.String
	}

	terminal.Println(out, "Select a device:")
	for i, d := range devices {
		if i > 9 {
			// Only single keystrokes are read
			break
		}
		terminal.Printf(out, "  [%d] %s", i, label(d))
	}
	terminal.Println(out, "Press a number, or q to quit.")

	for {
		raw, key, err := dec.Next()
		if err != nil {
			return discovery.Device{}, err
		}
		logging.LogKeystroke(key.String(), raw)

		if key == keys.PowerOff || key == keys.ForceQuit {
			return discovery.Device{}, ErrAborted
		}

		if idx, ok := key.Digit(); ok && idx < len(devices) {
			return devices[idx], nil
		}

		terminal.Printf(out, "Invalid choice, press 0-%d or q.", min(len(devices), 10)-1)
	}
}
