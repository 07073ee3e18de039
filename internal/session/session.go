package session

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/discovery"
	"github.com/badisi/samsung-tv-remote/internal/keys"
	"github.com/badisi/samsung-tv-remote/internal/logging"
	"github.com/badisi/samsung-tv-remote/internal/remote"
	"github.com/badisi/samsung-tv-remote/internal/terminal"
)

// ExitReason tells why Run returned
type ExitReason int

const (
	// ExitPowerOff means the user quit and the TV was sent KEY_POWER
	ExitPowerOff ExitReason = iota
	// ExitForceQuit means the user quit without touching the TV
	ExitForceQuit
)

func (r ExitReason) String() string {
	switch r {
	case ExitPowerOff:
		return "power off"
	case ExitForceQuit:
		return "force quit"
	default:
		return "unknown"
	}
}

// Session forwards decoded key presses to one TV
type Session struct {
	device discovery.Device
	client remote.Client
	dec    *keys.Decoder
	out    io.Writer
}

// New binds client to device. Keys are read from dec and progress is
// written to out.
func New(device discovery.Device, client remote.Client, dec *keys.Decoder, out io.Writer) *Session {
	return &Session{
		device: device,
		client: client,
		dec:    dec,
		out:    out,
	}
}

// Run wakes the TV, then dispatches keys until q or force-quit is pressed or
// reading input fails.
func (s *Session) Run(ctx context.Context) (ExitReason, error) {
	if err := s.client.Wake(ctx); err != nil {
		logging.Warn("Wake failed", zap.String("device", s.device.String()), zap.Error(err))
	}

	terminal.Printf(s.out, "Controlling %s. Press q to power off and quit, f to quit.", s.device)

	for {
		raw, key, err := s.dec.Next()
		if err != nil {
			return ExitForceQuit, err
		}

		logging.LogKeystroke(key.String(), raw)
		terminal.Printf(s.out, "%-12s %s", key, logging.HexBytes(raw))

		if key == keys.ForceQuit {
			return ExitForceQuit, nil
		}

		code, ok := key.RemoteCode()
		if !ok {
			continue
		}

		if err := s.client.SendKey(ctx, code); err != nil {
			logging.Error("Key send failed",
				zap.String("code", code),
				zap.String("device", s.device.String()),
				zap.Error(err),
			)
			if hint := remote.TroubleshootingHint(err); hint != "" {
				terminal.Println(s.out, hint)
			}
		}

		if key == keys.PowerOff {
			return ExitPowerOff, nil
		}
	}
}
