package remote

import "context"

// Client sends remote-control commands to one TV
type Client interface {
	// Wake powers the TV on (Wake-on-LAN)
	Wake(ctx context.Context) error

	// SendKey sends a single key code such as "KEY_VOLUP"
	SendKey(ctx context.Context, code string) error

	// SendKeys sends several key codes in order
	SendKeys(ctx context.Context, codes []string) error

	// Close releases the connection to the TV
	Close() error
}
