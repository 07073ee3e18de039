// Package ui renders the styled terminal output of samsung-tv-remote.
//
// It uses Lipgloss for boxes and colors and Bubble Tea for the one animated
// screen, the discovery progress shown by RunScan. Everything else follows a
// "print and move on" pattern through Printer.
//
//   - Header: banner naming the TV being controlled
//   - Result: success, failure and warning boxes with troubleshooting tips
//   - RenderDeviceList / RenderKeyLegend: device picker and key help
//   - ScanModel: spinner and window progress bar during discovery
//   - Confirm: yes/no prompt for destructive commands
//
// While the interactive remote runs, the terminal is in raw mode; set
// Printer.Raw so line endings still return the cursor to column zero.
//
// Logging is controlled via the SAMSUNG_TV_REMOTE_LOG_LEVEL environment
// variable and goes to stderr, so it does not interleave with this output
// unless enabled.
package ui
