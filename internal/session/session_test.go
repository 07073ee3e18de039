package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/badisi/samsung-tv-remote/internal/discovery"
	"github.com/badisi/samsung-tv-remote/internal/keys"
	"github.com/badisi/samsung-tv-remote/internal/remote"
)

// fakeClient records every call made by the session
type fakeClient struct {
	calls   []string
	wakeErr error
	sendErr error
}

func (f *fakeClient) Wake(context.Context) error {
	f.calls = append(f.calls, "wake")
	return f.wakeErr
}

func (f *fakeClient) SendKey(_ context.Context, code string) error {
	f.calls = append(f.calls, code)
	return f.sendErr
}

func (f *fakeClient) SendKeys(ctx context.Context, codes []string) error {
	for _, c := range codes {
		if err := f.SendKey(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeClient) Close() error { return nil }

// frames feeds one frame per Read call, the way a raw terminal does
type frames struct {
	chunks []string
}

func (f *frames) Read(p []byte) (int, error) {
	if len(f.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.chunks[0])
	f.chunks = f.chunks[1:]
	return n, nil
}

func decoderFor(chunks ...string) *keys.Decoder {
	return keys.NewDecoder(&frames{chunks: chunks})
}

var livingRoom = discovery.Device{FriendlyName: "Living Room", IP: "192.168.1.20", MAC: "64:1C:AE:12:34:56"}

var _ remote.Client = (*fakeClient)(nil)

func TestRun_DispatchesKeys(t *testing.T) {
	client := &fakeClient{}
	var out bytes.Buffer
	s := New(livingRoom, client, decoderFor("1", "\u001b[A", "\r", "z", "+", "\u001b", "q"), &out)

	reason, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if reason != ExitPowerOff {
		t.Errorf("Run() reason = %v, want %v", reason, ExitPowerOff)
	}

	want := []string{"wake", "KEY_1", "KEY_UP", "KEY_ENTER", "KEY_VOLUP", "KEY_HOME", "KEY_POWER"}
	if strings.Join(client.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", client.calls, want)
	}

	if !strings.Contains(out.String(), "1b 5b 41") {
		t.Errorf("output should show hex bytes of arrow up, got %q", out.String())
	}
}

func TestRun_ForceQuitSendsNothing(t *testing.T) {
	for _, quit := range []string{"f", "\x03"} {
		client := &fakeClient{}
		s := New(livingRoom, client, decoderFor(quit, "1"), io.Discard)

		reason, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if reason != ExitForceQuit {
			t.Errorf("Run(%q) reason = %v, want %v", quit, reason, ExitForceQuit)
		}
		if len(client.calls) != 1 || client.calls[0] != "wake" {
			t.Errorf("Run(%q) calls = %v, want [wake]", quit, client.calls)
		}
	}
}

func TestRun_WakeFailureIsNotFatal(t *testing.T) {
	client := &fakeClient{wakeErr: errors.New("no route")}
	s := New(livingRoom, client, decoderFor("5", "f"), io.Discard)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(client.calls) != 2 || client.calls[1] != "KEY_5" {
		t.Errorf("calls = %v, want [wake KEY_5]", client.calls)
	}
}

func TestRun_SendFailureContinues(t *testing.T) {
	client := &fakeClient{sendErr: &remote.Error{Type: remote.ErrTypeConnectionRefused, Message: "refused"}}
	var out bytes.Buffer
	s := New(livingRoom, client, decoderFor("1", "2", "f"), &out)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(client.calls) != 3 {
		t.Errorf("calls = %v, want wake plus two keys", client.calls)
	}
	if !strings.Contains(out.String(), "TV is on") {
		t.Errorf("output should carry a troubleshooting hint, got %q", out.String())
	}
}

func TestRun_ReadErrorEndsSession(t *testing.T) {
	client := &fakeClient{}
	s := New(livingRoom, client, decoderFor("1"), io.Discard)

	_, err := s.Run(context.Background())
	if !errors.Is(err, io.EOF) {
		t.Errorf("Run() error = %v, want io.EOF", err)
	}
}

func TestSelect(t *testing.T) {
	kitchen := discovery.Device{FriendlyName: "Kitchen", IP: "192.168.1.21", MAC: "64:1C:AE:00:00:01"}
	two := []discovery.Device{livingRoom, kitchen}

	tests := []struct {
		name    string
		devices []discovery.Device
		input   []string
		want    discovery.Device
		wantErr error
	}{
		{"no devices", nil, nil, discovery.Device{}, ErrNoDevices},
		{"single device needs no input", []discovery.Device{kitchen}, nil, kitchen, nil},
		{"pick second", two, []string{"1"}, kitchen, nil},
		{"out of range then valid", two, []string{"7", "\u001b[A", "0"}, livingRoom, nil},
		{"quit", two, []string{"q"}, discovery.Device{}, ErrAborted},
		{"ctrl-c", two, []string{"\x03"}, discovery.Device{}, ErrAborted},
		{"input ends", two, []string{"9"}, discovery.Device{}, io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.devices, decoderFor(tt.input...), io.Discard, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Select() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Select() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelect_ListsDevices(t *testing.T) {
	kitchen := discovery.Device{FriendlyName: "Kitchen", IP: "192.168.1.21", MAC: "64:1C:AE:00:00:01"}
	var out bytes.Buffer

	label := func(d discovery.Device) string { return strings.ToUpper(d.FriendlyName) }
	if _, err := Select([]discovery.Device{livingRoom, kitchen}, decoderFor("0"), &out, label); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	for _, want := range []string{"[0] LIVING ROOM\r\n", "[1] KITCHEN\r\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q missing %q", out.String(), want)
		}
	}
}

func TestExitReason_String(t *testing.T) {
	if ExitPowerOff.String() != "power off" || ExitForceQuit.String() != "force quit" {
		t.Error("unexpected ExitReason names")
	}
	if ExitReason(9).String() != "unknown" {
		t.Error("unknown ExitReason should print as unknown")
	}
}
