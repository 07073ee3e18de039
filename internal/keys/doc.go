// Package keys decodes raw terminal input into remote-control keys.
//
// The terminal is in raw mode and each read returns at most three bytes.
// One read is one frame: arrow keys arrive as ESC [ A..D in a single read,
// while a lone ESC (Home) arrives on its own. There is no buffering across
// reads, so a short read is never treated as the start of a longer sequence.
//
// # Key Bindings
//
//	0-9        digits            ESC [ A/B/C/D   arrows
//	Enter      enter             ESC             home
//	Backspace  back              p               play
//	+ / -      volume up/down    w / s           channel up/down
//	q          power off + quit  f / Ctrl-C      quit without sending
//
// w and s send channel up/down, not the arrow keys.
package keys
