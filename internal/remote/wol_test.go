package remote

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"
)

func TestMagicPacket(t *testing.T) {
	packet, err := MagicPacket("64:1C:AE:12:34:56")
	if err != nil {
		t.Fatalf("MagicPacket() error = %v", err)
	}

	if len(packet) != 102 {
		t.Fatalf("len(packet) = %d, want 102", len(packet))
	}
	if !bytes.Equal(packet[:6], bytes.Repeat([]byte{0xFF}, 6)) {
		t.Errorf("header = % x, want six ff bytes", packet[:6])
	}

	mac := []byte{0x64, 0x1C, 0xAE, 0x12, 0x34, 0x56}
	for i := 0; i < 16; i++ {
		off := 6 + i*6
		if !bytes.Equal(packet[off:off+6], mac) {
			t.Errorf("repetition %d = % x, want % x", i, packet[off:off+6], mac)
		}
	}
}

func TestMagicPacket_InvalidMAC(t *testing.T) {
	for _, mac := range []string{"", "not-a-mac", "00:11:22:33:44:55:66:77"} {
		_, err := MagicPacket(mac)
		if err == nil {
			t.Errorf("MagicPacket(%q) should fail", mac)
			continue
		}
		remoteErr, ok := err.(*Error)
		if !ok || remoteErr.Type != ErrTypeInvalidMAC {
			t.Errorf("MagicPacket(%q) error = %v, want invalid MAC", mac, err)
		}
	}
}

func TestSendMagicPacket(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP() error = %v", err)
	}
	defer func() { _ = conn.Close() }()

	if err := SendMagicPacket(context.Background(), "64-1c-ae-12-34-56", conn.LocalAddr().String()); err != nil {
		t.Fatalf("SendMagicPacket() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 256)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP() error = %v", err)
	}

	want, _ := MagicPacket("64:1C:AE:12:34:56")
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("received % x, want % x", buf[:n], want)
	}
}

func TestSamsungClient_Wake(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP() error = %v", err)
	}
	defer func() { _ = conn.Close() }()

	c := NewSamsungClient(Options{
		IP:       "127.0.0.1",
		MAC:      "64:1C:AE:12:34:56",
		WakeAddr: conn.LocalAddr().String(),
	})
	if err := c.Wake(context.Background()); err != nil {
		t.Fatalf("Wake() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 256)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil || n != 102 {
		t.Errorf("ReadFromUDP() = %d, %v, want 102 bytes", n, err)
	}
}

func TestSamsungClient_WakeUnknownMAC(t *testing.T) {
	c := NewSamsungClient(Options{IP: "127.0.0.1", MAC: "not-a-mac"})
	if err := c.Wake(context.Background()); err == nil {
		t.Error("Wake() should fail without a valid MAC")
	}
}

func TestSamsungClient_WakeSentinelMAC(t *testing.T) {
	c := NewSamsungClient(Options{IP: "127.0.0.1", MAC: "00:00:00:00:00:00", WakeAddr: "127.0.0.1:1"})
	if err := c.Wake(context.Background()); err != nil {
		t.Errorf("Wake() error = %v, want nil for unknown MAC", err)
	}
}
