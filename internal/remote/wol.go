package remote

import (
	"bytes"
	"context"
	"fmt"
	"net"
)

// DefaultWakeAddr is the broadcast address magic packets are sent to
const DefaultWakeAddr = "255.255.255.255:9"

// MagicPacket builds a Wake-on-LAN packet: six 0xFF bytes followed by the
// MAC repeated sixteen times.
func MagicPacket(mac string) ([]byte, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil || len(hw) != 6 {
		return nil, &Error{
			Type:    ErrTypeInvalidMAC,
			Message: fmt.Sprintf("invalid MAC address %q", mac),
			Err:     err,
		}
	}

	var packet bytes.Buffer
	packet.Write(bytes.Repeat([]byte{0xFF}, 6))
	for i := 0; i < 16; i++ {
		packet.Write(hw)
	}
	return packet.Bytes(), nil
}

// SendMagicPacket sends one Wake-on-LAN packet for mac to addr
func SendMagicPacket(ctx context.Context, mac, addr string) error {
	packet, err := MagicPacket(mac)
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp4", addr)
	if err != nil {
		return NewNetworkError("failed to open wake socket", "", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.Write(packet); err != nil {
		return NewNetworkError("failed to send magic packet", "", err)
	}
	return nil
}
