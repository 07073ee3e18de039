// Package logging provides structured logging for samsung-tv-remote.
//
// This package wraps a global zap logger. The CLI is interactive and owns
// stdout, so logging is silent by default and, when enabled, writes to
// stderr.
//
// # Log Levels
//
//   - Debug: datagram dumps, descriptor fetches, websocket frames
//   - Info: keystrokes, selected device, pairing events
//   - Warn: non-fatal transport failures (send, fetch, wake)
//   - Error: failures surfaced to the user
//
// # Configuration
//
// Logging is enabled with the SAMSUNG_TV_REMOTE_LOG_LEVEL environment
// variable or the --log-level flag:
//
//	if err := logging.Initialize(level); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Lines end with "\r\n" so output stays readable while the terminal is in
// raw mode.
package logging
