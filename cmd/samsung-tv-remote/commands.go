package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/cache"
	"github.com/badisi/samsung-tv-remote/internal/config"
	"github.com/badisi/samsung-tv-remote/internal/discovery"
	"github.com/badisi/samsung-tv-remote/internal/logging"
	"github.com/badisi/samsung-tv-remote/internal/remote"
	"github.com/badisi/samsung-tv-remote/internal/terminal"
	"github.com/badisi/samsung-tv-remote/internal/ui"
)

// Command flags
var (
	timeoutMs   int
	cachePath   string
	configPath  string
	deviceQuery string
	useMDNS     bool
	logLevel    string
	jsonOutput  bool
	assumeYes   bool
	wakeFirst   bool
)

// Resolved by setup before any command runs
var (
	registry *config.Registry
	window   time.Duration
	printer  *ui.Printer
)

var noDevicesTips = []string{
	"Make sure the TV is on and connected to the same network",
	"Allow UDP port 1900 (SSDP) through your firewall",
	"Give slow TVs more time with --timeout 10000",
	"Try --mdns to also browse AirPlay announcements",
}

func init() {
	rootCmd.PersistentFlags().IntVar(&timeoutMs, "timeout", config.DefaultDiscoverTimeoutMs, "Discovery window in milliseconds")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "Device cache file (default: platform cache directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: platform config directory)")
	rootCmd.PersistentFlags().StringVar(&deviceQuery, "device", "", "TV to use, by IP, MAC, name or nickname")
	rootCmd.PersistentFlags().BoolVar(&useMDNS, "mdns", false, "Also discover TVs with mDNS (AirPlay)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $"+logging.LogLevelEnvVar+" or silent)")

	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print discovered TVs as JSON")
	devicesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print cached TVs as JSON")
	forgetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	sendCmd.Flags().BoolVar(&wakeFirst, "wake", false, "Send a Wake-on-LAN packet first")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(nicknameCmd)
	rootCmd.AddCommand(sendCmd)
}

// setup initializes logging and loads the config registry
func setup(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}

	if configPath == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to locate config file: %w", err)
		}
		configPath = path
	}

	var err error
	registry, err = config.LoadRegistry(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cachePath == "" {
		if cachePath, err = cache.DefaultPath(); err != nil {
			return err
		}
	}

	window = registry.DiscoverTimeout()
	if cmd.Flags().Changed("timeout") {
		window = time.Duration(timeoutMs) * time.Millisecond
	}
	if !cmd.Flags().Changed("mdns") {
		useMDNS = registry.Preferences.MDNS
	}

	printer = ui.NewPrinter(os.Stdout)

	logging.Debug("Configuration loaded",
		zap.String("config", configPath),
		zap.String("cache", cachePath),
		zap.Duration("window", window),
		zap.Bool("mdns", useMDNS),
	)
	return nil
}

// scanCmd discovers TVs and updates the cache
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover Samsung TVs and update the device cache",
	Long: `Send an SSDP search to the local network and list the Samsung TVs that
answer. Found TVs are merged into the device cache.`,
	Example: `  # Scan with the default 5 second window
  samsung-tv-remote scan

  # Longer scan, JSON output for scripting
  samsung-tv-remote scan --timeout 10000 --json`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	fresh, err := discoverDevices(cmd)
	if err != nil {
		return err
	}
	refreshCache(fresh)

	if jsonOutput {
		if fresh == nil {
			fresh = []discovery.Device{}
		}
		return printJSON(fresh)
	}

	if len(fresh) == 0 {
		printer.PrintWarning("No Samsung TVs found", noDevicesTips...)
		return nil
	}

	printer.PrintSuccess(fmt.Sprintf("%d TV(s) found", len(fresh)), ui.Param{Key: "Cache", Value: cachePath})
	printer.Print(ui.RenderDeviceList(fresh, deviceLabel))
	return nil
}

// devicesCmd lists the cache without scanning
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List cached TVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices := cache.Load(cachePath).Values()

		if jsonOutput {
			return printJSON(devices)
		}
		if len(devices) == 0 {
			printer.PrintWarning("The device cache is empty", "Run 'samsung-tv-remote scan' to discover TVs")
			return nil
		}

		printer.Print(ui.RenderDeviceList(devices, deviceLabel))
		return nil
	},
}

// forgetCmd removes TVs from the cache
var forgetCmd = &cobra.Command{
	Use:   "forget [device]",
	Short: "Remove one TV, or all TVs, from the device cache",
	Example: `  # Forget one TV
  samsung-tv-remote forget 64:1C:AE:12:34:56

  # Empty the cache
  samsung-tv-remote forget --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForget,
}

func runForget(cmd *cobra.Command, args []string) error {
	c := cache.Load(cachePath)

	if len(args) == 0 {
		if !assumeYes && !ui.Confirm(os.Stdin, os.Stdout, "FORGET ALL DEVICES", []string{
			fmt.Sprintf("%d cached TV(s) will be removed", len(c)),
			"Pairing tokens in the config file are kept",
		}) {
			return nil
		}
		if err := os.Remove(cachePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove device cache: %w", err)
		}
		printer.PrintSuccess("Device cache emptied")
		return nil
	}

	matches := matchDevices(c.Values(), args[0])
	if len(matches) == 0 {
		return fmt.Errorf("no cached TV matches %q", args[0])
	}
	for _, d := range matches {
		c.Remove(d.MAC)
	}
	if err := c.Save(cachePath); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Forgot %d TV(s)", len(matches)))
	return nil
}

// nicknameCmd names a TV
var nicknameCmd = &cobra.Command{
	Use:   "nickname <device> [name]",
	Short: "Set the name shown for a cached TV (omit name to clear it)",
	Example: `  samsung-tv-remote nickname 192.168.1.20 "Living room"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := singleDevice(matchDevices(cache.Load(cachePath).Values(), args[0]), args[0])
		if err != nil {
			return err
		}
		if !device.HasKnownMAC() {
			return fmt.Errorf("%s did not report a MAC address and cannot be named", device.IP)
		}

		name := ""
		if len(args) == 2 {
			name = strings.TrimSpace(args[1])
		}
		registry.SetDeviceNickname(device.MAC, name)
		if err := registry.Save(configPath); err != nil {
			return err
		}

		printer.PrintSuccess("Nickname saved",
			ui.Param{Key: "TV", Value: device.String()},
			ui.Param{Key: "Nickname", Value: name},
		)
		return nil
	},
}

// sendCmd sends keys without the interactive remote
var sendCmd = &cobra.Command{
	Use:   "send <key>...",
	Short: "Send one or more keys to a TV",
	Long: `Send key codes to a TV and exit. Codes may be given with or without the
KEY_ prefix (e.g., VOLUP or KEY_VOLUP). Cached TVs are used when --device
matches one; otherwise the network is scanned.`,
	Example: `  samsung-tv-remote send --device 192.168.1.20 VOLUP VOLUP
  samsung-tv-remote send --wake HOME`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	candidates := cache.Load(cachePath).Values()
	if deviceQuery != "" {
		candidates = matchDevices(candidates, deviceQuery)
	}
	if len(candidates) == 0 {
		fresh, err := discoverDevices(cmd)
		if err != nil {
			return err
		}
		candidates = refreshCache(fresh)
		if deviceQuery != "" {
			candidates = matchDevices(candidates, deviceQuery)
		}
	}

	device, err := singleDevice(candidates, deviceQuery)
	if err != nil {
		return err
	}

	codes := make([]string, len(args))
	for i, a := range args {
		codes[i] = keyCode(a)
	}

	client := newClient(device)
	defer func() { _ = client.Close() }()

	if wakeFirst {
		if err := client.Wake(cmd.Context()); err != nil {
			logging.Warn("Wake failed", zap.Error(err))
		}
	}

	if err := client.SendKeys(cmd.Context(), codes); err != nil {
		var tips []string
		if hint := remote.TroubleshootingHint(err); hint != "" {
			tips = append(tips, hint)
		}
		printer.PrintError("Sending keys failed", err, tips...)
		return errReported
	}

	printer.PrintSuccess("Keys sent",
		ui.Param{Key: "TV", Value: deviceLabel(device)},
		ui.Param{Key: "Keys", Value: strings.Join(codes, " ")},
	)
	return nil
}

// keyCode normalizes "volup" to "KEY_VOLUP"
func keyCode(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "KEY_") {
		s = "KEY_" + s
	}
	return s
}

// discoverDevices runs one discovery pass, animated when attached to a terminal
func discoverDevices(cmd *cobra.Command) ([]discovery.Device, error) {
	discoverers := []discovery.Discoverer{discovery.NewProber()}
	if useMDNS {
		discoverers = append(discoverers, discovery.NewMDNSProber())
	}

	scan := func(ctx context.Context) []discovery.Device {
		return discovery.DiscoverAll(ctx, window, discoverers...)
	}

	if !jsonOutput && terminal.IsTerminal(os.Stdin) && terminal.IsTerminal(os.Stdout) {
		devices, err := ui.RunScan(cmd.Context(), os.Stdin, os.Stdout, window, scan)
		if err == nil || errors.Is(err, ui.ErrScanCancelled) {
			return devices, err
		}
		logging.Warn("Scan view failed, scanning without it", zap.Error(err))
	}

	return scan(cmd.Context()), nil
}

// refreshCache merges fresh into the cache and returns every cached TV.
// A failed save is shown but not fatal.
func refreshCache(fresh []discovery.Device) []discovery.Device {
	c, err := cache.Refresh(cachePath, fresh)
	if err != nil {
		logging.Warn("Failed to save device cache", zap.String("path", cachePath), zap.Error(err))
		printer.PrintWarning("Could not save the device cache", err.Error())
	}
	return c.Values()
}

// deviceLabel prefers the user's nickname for d
func deviceLabel(d discovery.Device) string {
	return ui.DeviceLabel(d, registry.Nickname(d.MAC))
}

// matchDevices returns the devices query names, including by nickname
func matchDevices(devices []discovery.Device, query string) []discovery.Device {
	var matches []discovery.Device
	for _, d := range devices {
		nickname := registry.Nickname(d.MAC)
		if d.Matches(query) || (nickname != "" && strings.EqualFold(nickname, strings.TrimSpace(query))) {
			matches = append(matches, d)
		}
	}
	return matches
}

func singleDevice(devices []discovery.Device, query string) (discovery.Device, error) {
	switch {
	case len(devices) == 1:
		return devices[0], nil
	case len(devices) == 0 && query != "":
		return discovery.Device{}, fmt.Errorf("no TV matches %q", query)
	case len(devices) == 0:
		return discovery.Device{}, errors.New("no TVs found")
	default:
		return discovery.Device{}, fmt.Errorf("%d TVs match, choose one with --device", len(devices))
	}
}

// newClient creates a remote for device that stores new pairing tokens
func newClient(device discovery.Device) *remote.SamsungClient {
	return remote.NewSamsungClient(remote.Options{
		IP:    device.IP,
		MAC:   device.MAC,
		Name:  registry.RemoteName(),
		Token: registry.Token(device.MAC),
		OnToken: func(token string) {
			// Tokens are keyed by MAC
			if !device.HasKnownMAC() {
				return
			}
			registry.SetToken(device.MAC, token)
			if err := registry.Save(configPath); err != nil {
				logging.Warn("Failed to save pairing token", zap.String("mac", device.MAC), zap.Error(err))
			}
		},
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
