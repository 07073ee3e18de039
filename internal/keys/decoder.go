package keys

import (
	"bytes"
	"io"
)

// FrameSize is the most bytes consumed by one read; arrow keys are the
// longest sequences at three bytes.
const FrameSize = 3

const (
	esc = "\x1b"
	del = "\x7f"
	etx = "\x03"
)

// frames lists exact input frames. Anything not listed (and not a digit)
// decodes to Unmapped.
var frames = map[string]Key{
	esc + "[A": Up,
	esc + "[B": Down,
	esc + "[C": Right,
	esc + "[D": Left,
	del:        Back,
	esc:        Home,
	"\r":       Enter,
	"p":        Play,
	"+":        VolumeUp,
	"-":        VolumeDown,
	"w":        ChannelUp,
	"s":        ChannelDown,
	"q":        PowerOff,
	etx:        ForceQuit,
	"f":        ForceQuit,
}

// Decode maps one input frame to a key. NUL padding is ignored and the
// frame must match exactly, so a lone ESC is Home while ESC [ A is Up.
func Decode(frame []byte) Key {
	text := string(bytes.ReplaceAll(frame, []byte{0}, nil))

	if len(text) == 1 && text[0] >= '0' && text[0] <= '9' {
		return Digit0 + Key(text[0]-'0')
	}
	if key, ok := frames[text]; ok {
		return key
	}
	return Unmapped
}

// Decoder reads frames from a raw terminal
type Decoder struct {
	r   io.Reader
	buf [FrameSize]byte
}

// NewDecoder creates a decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next decodes the bytes of a single read of up to FrameSize bytes.
// A short read is a complete frame; nothing is buffered between calls.
// The returned raw bytes exclude NUL padding, and reads that carry only
// padding are skipped.
func (d *Decoder) Next() ([]byte, Key, error) {
	for {
		n, err := d.r.Read(d.buf[:])
		if n > 0 {
			raw := bytes.ReplaceAll(d.buf[:n], []byte{0}, nil)
			if len(raw) > 0 {
				return raw, Decode(raw), nil
			}
		}
		if err != nil {
			return nil, Unmapped, err
		}
	}
}
