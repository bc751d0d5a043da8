package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/platform"
)

// HelpRows is the height of the collapsed help bar under the game.
const HelpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model hosting one game session.
type Model struct {
	session    *platform.Session
	keys       KeyMap
	help       help.Model
	normalizer *core.Normalizer
	logger     *log.Logger
	fps        int
	width      int
	height     int
	quitting   bool
}

// NewModel creates a Bubble Tea model for the given session.
func NewModel(session *platform.Session, fps int, logger *log.Logger) Model {
	if fps <= 0 {
		fps = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		session:    session,
		keys:       DefaultKeyMap(),
		help:       h,
		normalizer: core.NewNormalizer(),
		logger:     logger,
		fps:        fps,
	}
}

// Init starts the tick loop. The game starts on the first WindowSizeMsg.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if raw, ok := MouseRaw(msg); ok {
			m.feed(raw)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.BlurMsg:
		m.normalizer.Reset()
		return m, nil

	case TickMsg:
		m.session.Tick()
		return m, tickCmd(m.fps)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}

	if k := m.keys.Translate(msg); k != "" {
		m.feed(core.Raw{Kind: core.RawKeyPress, Key: k})
	}
	return m, nil
}

// resize gives the game everything above the help bar.
func (m Model) resize() {
	m.session.Resize(m.width, max(m.height-lipgloss.Height(m.helpView()), 0))
}

func (m Model) helpView() string {
	return helpStyle.Render(m.help.View(m.keys))
}

func (m Model) feed(raw core.Raw) {
	for _, ev := range m.normalizer.Feed(raw) {
		m.session.Input(ev)
	}
}

// saveScreenshot writes the last frame as text under ~/.arcade/screenshots.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.session.Game().ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.session.Screen().String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the last drawn frame above the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.session.Screen()) + "\n" + m.helpView()
}

// Run starts the Bubble Tea program for session.
func Run(session *platform.Session, fps int, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(session, fps, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}
