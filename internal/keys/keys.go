package keys

import "fmt"

// Key is a logical remote-control key decoded from terminal input
type Key int

const (
	Unmapped Key = iota
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Up
	Down
	Left
	Right
	Enter
	Home
	Back
	Play
	VolumeUp
	VolumeDown
	ChannelUp
	ChannelDown
	// PowerOff turns the TV off and ends the session
	PowerOff
	// ForceQuit ends the session without sending anything
	ForceQuit
)

var keyNames = map[Key]string{
	Unmapped:    "unmapped",
	Up:          "up",
	Down:        "down",
	Left:        "left",
	Right:       "right",
	Enter:       "enter",
	Home:        "home",
	Back:        "back",
	Play:        "play",
	VolumeUp:    "volume up",
	VolumeDown:  "volume down",
	ChannelUp:   "channel up",
	ChannelDown: "channel down",
	PowerOff:    "power off",
	ForceQuit:   "force quit",
}

// remoteCodes maps keys to the Samsung remote key codes they send
var remoteCodes = map[Key]string{
	Digit0:      "KEY_0",
	Digit1:      "KEY_1",
	Digit2:      "KEY_2",
	Digit3:      "KEY_3",
	Digit4:      "KEY_4",
	Digit5:      "KEY_5",
	Digit6:      "KEY_6",
	Digit7:      "KEY_7",
	Digit8:      "KEY_8",
	Digit9:      "KEY_9",
	Up:          "KEY_UP",
	Down:        "KEY_DOWN",
	Left:        "KEY_LEFT",
	Right:       "KEY_RIGHT",
	Enter:       "KEY_ENTER",
	Home:        "KEY_HOME",
	Back:        "KEY_RETURN",
	Play:        "KEY_PLAY",
	VolumeUp:    "KEY_VOLUP",
	VolumeDown:  "KEY_VOLDOWN",
	ChannelUp:   "KEY_CHUP",
	ChannelDown: "KEY_CHDOWN",
	PowerOff:    "KEY_POWER",
}

// String returns a readable key name, e.g. "up" or "digit 7"
func (k Key) String() string {
	if d, ok := k.Digit(); ok {
		return fmt.Sprintf("digit %d", d)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Digit returns the numeric value of a digit key
func (k Key) Digit() (int, bool) {
	if k >= Digit0 && k <= Digit9 {
		return int(k - Digit0), true
	}
	return 0, false
}

// RemoteCode returns the Samsung key code sent for k. ForceQuit and
// Unmapped have no code.
func (k Key) RemoteCode() (string, bool) {
	code, ok := remoteCodes[k]
	return code, ok
}

// IsTerminal reports whether k ends an interactive session
func (k Key) IsTerminal() bool {
	return k == PowerOff || k == ForceQuit
}
