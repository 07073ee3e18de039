package remote

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/discovery"
	"github.com/badisi/samsung-tv-remote/internal/logging"
)

const (
	// SecurePort is the TLS remote-control port used by 2018+ TVs
	SecurePort = 8002

	// PlainPort is the unencrypted remote-control port of older TVs
	PlainPort = 8001

	// DefaultTimeout bounds connecting and pairing
	DefaultTimeout = 30 * time.Second

	// DefaultKeyDelay is the pause between keys sent by SendKeys
	DefaultKeyDelay = 100 * time.Millisecond

	channelPath = "/api/v2/channels/samsung.remote.control"

	eventConnect      = "ms.channel.connect"
	eventUnauthorized = "ms.channel.unauthorized"
	methodControl     = "ms.remote.control"
)

// Options configures a SamsungClient
type Options struct {
	IP  string
	MAC string

	// Name is shown on the TV when it asks to allow this remote
	Name string

	// Token is a pairing token previously issued by the TV (secure port only)
	Token string

	// Port is the remote-control port (default: SecurePort)
	Port int

	// BaseURL overrides the websocket base URL derived from IP and Port
	// (e.g., "ws://127.0.0.1:8001")
	BaseURL string

	// WakeAddr is where Wake-on-LAN packets go (default: DefaultWakeAddr)
	WakeAddr string

	// Timeout bounds connecting and pairing (default: DefaultTimeout)
	Timeout time.Duration

	// KeyDelay is the pause between keys in SendKeys (default: DefaultKeyDelay)
	KeyDelay time.Duration

	// OnToken is called when the TV issues a new pairing token
	OnToken func(token string)
}

// SamsungClient talks to the websocket remote-control API of Samsung TVs.
// The connection is opened lazily by the first key sent.
type SamsungClient struct {
	opts   Options
	dialer *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// message is the envelope used by the TV in both directions
type message struct {
	Method string          `json:"method,omitempty"`
	Event  string          `json:"event,omitempty"`
	Params *controlParams  `json:"params,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type controlParams struct {
	Cmd          string `json:"Cmd"`
	DataOfCmd    string `json:"DataOfCmd"`
	Option       string `json:"Option"`
	TypeOfRemote string `json:"TypeOfRemote"`
}

type connectData struct {
	Token string `json:"token"`
}

// NewSamsungClient creates a client for the TV described by opts
func NewSamsungClient(opts Options) *SamsungClient {
	if opts.Port == 0 {
		opts.Port = SecurePort
	}
	if opts.WakeAddr == "" {
		opts.WakeAddr = DefaultWakeAddr
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.KeyDelay <= 0 {
		opts.KeyDelay = DefaultKeyDelay
	}

	return &SamsungClient{
		opts: opts,
		dialer: &websocket.Dialer{
			HandshakeTimeout: opts.Timeout,
			// TVs present self-signed certificates
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		},
	}
}

// URL returns the websocket URL the client connects to
func (c *SamsungClient) URL() string {
	base := c.opts.BaseURL
	if base == "" {
		scheme := "ws"
		if c.opts.Port == SecurePort {
			scheme = "wss"
		}
		base = fmt.Sprintf("%s://%s:%d", scheme, c.opts.IP, c.opts.Port)
	}

	query := url.Values{}
	query.Set("name", base64.StdEncoding.EncodeToString([]byte(c.opts.Name)))
	if c.opts.Token != "" {
		query.Set("token", c.opts.Token)
	}
	return base + channelPath + "?" + query.Encode()
}

// Wake sends a Wake-on-LAN magic packet for the TV's MAC. TVs that never
// reported a MAC are skipped.
func (c *SamsungClient) Wake(ctx context.Context) error {
	if c.opts.MAC == discovery.UnknownMAC {
		logging.Debug("Skipping wake, MAC unknown", zap.String("ip", c.opts.IP))
		return nil
	}

	logging.Debug("Sending magic packet",
		zap.String("mac", c.opts.MAC),
		zap.String("addr", c.opts.WakeAddr),
	)
	return SendMagicPacket(ctx, c.opts.MAC, c.opts.WakeAddr)
}

// SendKey sends one key. A retryable failure, such as a dropped
// connection, is retried once on a fresh connection.
func (c *SamsungClient) SendKey(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := json.Marshal(message{
		Method: methodControl,
		Params: &controlParams{
			Cmd:          "Click",
			DataOfCmd:    code,
			Option:       "false",
			TypeOfRemote: "SendRemoteKey",
		},
	})
	if err != nil {
		return NewProtocolError("failed to encode key", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		if err = c.ensureConnected(ctx); err == nil {
			werr := c.write(ctx, payload)
			if werr == nil {
				logging.Debug("Key sent", zap.String("code", code))
				return nil
			}
			err = NewNetworkError("failed to send key "+code, c.opts.IP, werr)
			_ = c.closeLocked()
		}

		// Denied pairing and protocol errors would fail the same way again
		if !IsRetryable(err) || ctx.Err() != nil {
			return err
		}
		logging.Warn("Key send failed, reconnecting", zap.String("code", code), zap.Error(err))
	}

	return err
}

// SendKeys sends codes in order with KeyDelay between them
func (c *SamsungClient) SendKeys(ctx context.Context, codes []string) error {
	for i, code := range codes {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.opts.KeyDelay):
			}
		}
		if err := c.SendKey(ctx, code); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the connection, if any
func (c *SamsungClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *SamsungClient) closeLocked() error {
	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return conn.Close()
}

func (c *SamsungClient) write(ctx context.Context, payload []byte) error {
	deadline := time.Now().Add(c.opts.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// ensureConnected dials the TV and waits for the channel connect event.
// On first use of the secure port the TV shows a prompt that must be
// accepted before the event arrives.
func (c *SamsungClient) ensureConnected(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	conn, _, err := c.dialer.DialContext(ctx, c.URL(), nil)
	if err != nil {
		return NewNetworkError("failed to connect to TV", c.opts.IP, err)
	}

	deadline, _ := ctx.Deadline()
	_ = conn.SetReadDeadline(deadline)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			return NewNetworkError("TV closed the connection during pairing", c.opts.IP, err)
		}
		logging.LogRawBytes("Remote channel message", data)

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = conn.Close()
			return NewProtocolError("malformed channel message", err)
		}

		switch msg.Event {
		case eventUnauthorized:
			_ = conn.Close()
			return &Error{
				Type:     ErrTypeUnauthorized,
				Message:  "the TV denied the connection",
				DeviceIP: c.opts.IP,
			}

		case eventConnect:
			c.handleToken(msg.Data)
			_ = conn.SetReadDeadline(time.Time{})
			c.conn = conn
			go drain(conn)
			logging.Info("Connected to TV", zap.String("ip", c.opts.IP), zap.Int("port", c.opts.Port))
			return nil
		}
	}
}

func (c *SamsungClient) handleToken(data json.RawMessage) {
	if len(data) == 0 {
		return
	}

	var cd connectData
	if err := json.Unmarshal(data, &cd); err != nil || cd.Token == "" {
		return
	}
	if cd.Token == c.opts.Token {
		return
	}

	c.opts.Token = cd.Token
	logging.Info("Received pairing token", zap.String("ip", c.opts.IP))
	if c.opts.OnToken != nil {
		c.opts.OnToken(cd.Token)
	}
}

// drain consumes TV events so control frames keep being processed
func drain(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		logging.LogRawBytes("Remote channel message", data)
	}
}

// String describes the client for logs
func (c *SamsungClient) String() string {
	return "samsung(" + c.opts.IP + ":" + strconv.Itoa(c.opts.Port) + ")"
}
