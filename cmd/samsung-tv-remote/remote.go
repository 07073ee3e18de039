package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/keys"
	"github.com/badisi/samsung-tv-remote/internal/logging"
	"github.com/badisi/samsung-tv-remote/internal/session"
	"github.com/badisi/samsung-tv-remote/internal/terminal"
	"github.com/badisi/samsung-tv-remote/internal/ui"
)

// runRemote discovers TVs, lets the user pick one and runs the interactive
// remote on it
func runRemote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fresh, err := discoverDevices(cmd)
	if err != nil {
		return err
	}
	devices := refreshCache(fresh)
	if deviceQuery != "" {
		devices = matchDevices(devices, deviceQuery)
	}

	if len(devices) == 0 {
		printer.PrintError("No Samsung TVs found", session.ErrNoDevices, noDevicesTips...)
		return errReported
	}

	restore, err := terminal.MakeRaw(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer restore()

	// SIGTERM cannot reach us as a key press; restore the terminal before dying
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			restore()
			logging.Sync()
			os.Exit(1)
		case <-done:
		}
	}()

	printer.Raw = true
	dec := keys.NewDecoder(os.Stdin)

	device, err := session.Select(devices, dec, os.Stdout, deviceLabel)
	if errors.Is(err, session.ErrAborted) {
		terminal.Println(os.Stdout, "Aborted.")
		return errReported
	}
	if err != nil {
		return fmt.Errorf("failed to select a TV: %w", err)
	}

	client := newClient(device)
	defer func() { _ = client.Close() }()

	printer.PrintHeader("Samsung TV Remote", deviceLabel(device),
		ui.Param{Key: "IP", Value: device.IP},
		ui.Param{Key: "MAC", Value: device.MAC},
	)
	printer.Println(ui.RenderKeyLegend())

	reason, err := session.New(device, client, dec, os.Stdout).Run(ctx)
	if err != nil {
		return fmt.Errorf("reading keys failed: %w", err)
	}

	logging.Info("Session ended", zap.String("reason", reason.String()), zap.String("device", device.String()))
	terminal.Println(os.Stdout, "Bye!")
	return nil
}
