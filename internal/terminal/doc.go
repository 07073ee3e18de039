// Package terminal puts the controlling terminal into raw mode and writes
// output that stays readable while it is there.
package terminal
