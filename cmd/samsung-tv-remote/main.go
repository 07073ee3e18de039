// Samsung-tv-remote controls Samsung Smart TVs from the terminal.
//
// It finds TVs on the local network with SSDP, remembers them in a device
// cache, and turns key presses into remote-control commands sent over the
// TV's websocket API.
//
// Usage:
//
//	samsung-tv-remote [command] [flags]
//
// Running without arguments discovers TVs and starts the interactive remote.
// See 'samsung-tv-remote --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/badisi/samsung-tv-remote/internal/logging"
	"github.com/badisi/samsung-tv-remote/internal/version"
)

// errReported marks failures whose message was already shown to the user
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "samsung-tv-remote",
	Short: "Control Samsung Smart TVs from the terminal",
	Long: `Discover Samsung Smart TVs on the local network and control them
with the keyboard.

Without a command, TVs are discovered, merged into the device cache, and the
interactive remote starts on the selected TV. The first connection must be
accepted on the TV; the pairing token it returns is saved for next time.

Keys:
  0-9        digits             arrows     navigate
  enter      ok                 esc        home
  del        back               p          play
  + / -      volume             w / s      channel
  q          power off & quit   f, ctrl-c  quit`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runRemote,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", version.Name, version.Full())
	},
}
