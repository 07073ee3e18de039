// Package session runs the interactive remote: it picks the TV to control and
// turns key presses read from a raw terminal into remote-control commands.
//
// Keys map one-to-one onto Samsung key codes (see keys.Key.RemoteCode). q
// powers the TV off and ends the session; f or Ctrl-C ends it without
// sending anything.
package session
