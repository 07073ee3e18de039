package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/badisi/samsung-tv-remote/internal/discovery"
)

// ErrScanCancelled is returned by RunScan when the user quits the scan
var ErrScanCancelled = errors.New("scan cancelled")

// ScanFunc performs one discovery pass
type ScanFunc func(ctx context.Context) []discovery.Device

// Messages for async operations
type scanCompleteMsg struct {
	devices []discovery.Device
}

type scanTickMsg time.Time

// scanKeyMap defines key bindings while scanning
type scanKeyMap struct {
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k scanKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k scanKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// ScanModel shows a spinner and the elapsed share of the discovery window
// while a scan runs
type ScanModel struct {
	ctx    context.Context
	scan   ScanFunc
	window time.Duration

	Spinner     spinner.Model
	ProgressBar progress.Model
	Help        help.Model
	Keys        scanKeyMap

	started   time.Time
	elapsed   time.Duration
	Devices   []discovery.Device
	Done      bool
	Cancelled bool
}

// NewScanModel creates a model that runs scan when started
func NewScanModel(ctx context.Context, window time.Duration, scan ScanFunc) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40

	return ScanModel{
		ctx:         ctx,
		scan:        scan,
		window:      window,
		Spinner:     s,
		ProgressBar: bar,
		Help:        help.New(),
		Keys: scanKeyMap{
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
		started: time.Now(),
	}
}

// Init starts the scan, the spinner and the progress ticker
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.runScan, m.Spinner.Tick, scanTick())
}

func (m ScanModel) runScan() tea.Msg {
	return scanCompleteMsg{devices: m.scan(m.ctx)}
}

func scanTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return scanTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			m.Cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.ProgressBar.Width = min(max(msg.Width-20, 20), 50)

	case scanCompleteMsg:
		m.Done = true
		m.Devices = msg.devices
		return m, tea.Quit

	case scanTickMsg:
		m.elapsed = time.Time(msg).Sub(m.started)
		if m.Done {
			return m, nil
		}
		return m, scanTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Percent is the elapsed share of the discovery window
func (m ScanModel) Percent() float64 {
	if m.window <= 0 {
		return 1
	}
	return min(float64(m.elapsed)/float64(m.window), 1)
}

// View renders the scan progress
func (m ScanModel) View() string {
	if m.Done || m.Cancelled {
		return ""
	}

	title := fmt.Sprintf("%s %s", m.Spinner.View(), ScanLabelStyle.Render("Searching for Samsung TVs..."))
	elapsed := DeviceDetailStyle.Render(fmt.Sprintf("%.1fs / %.1fs", m.elapsed.Seconds(), m.window.Seconds()))

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		"  "+title,
		"",
		"  "+m.ProgressBar.ViewAs(m.Percent())+"  "+elapsed,
		"",
		"  "+m.Help.View(m.Keys),
		"",
	)
}

// RunScan runs scan behind the animated scan view. The scan's context is
// cancelled when the user quits.
func RunScan(ctx context.Context, in io.Reader, out io.Writer, window time.Duration, scan ScanFunc) ([]discovery.Device, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		NewScanModel(ctx, window, scan),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("scan view: %w", err)
	}

	m, ok := final.(ScanModel)
	if !ok {
		return nil, fmt.Errorf("scan view: unexpected model %T", final)
	}
	if m.Cancelled {
		return nil, ErrScanCancelled
	}
	return m.Devices, nil
}
