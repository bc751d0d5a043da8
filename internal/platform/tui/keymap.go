package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// KeyMap holds the terminal bindings. Game keys translate to the
// browser-style key names games understand.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Action     key.Binding
	Confirm    key.Binding
	Restart    key.Binding
	Escape     key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Action: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "action"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "place"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Restart, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Action, k.Confirm, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// Translate maps a key message to a game key name, or "" when unbound.
func (k KeyMap) Translate(msg tea.KeyMsg) string {
	switch {
	case key.Matches(msg, k.Up):
		return core.KeyUp
	case key.Matches(msg, k.Down):
		return core.KeyDown
	case key.Matches(msg, k.Left):
		return core.KeyLeft
	case key.Matches(msg, k.Right):
		return core.KeyRight
	case key.Matches(msg, k.Action):
		return core.KeySpace
	case key.Matches(msg, k.Confirm):
		return core.KeyEnter
	case key.Matches(msg, k.Restart):
		return "r"
	case key.Matches(msg, k.Escape):
		return core.KeyEscape
	}
	return ""
}

// MouseRaw converts a mouse message to a raw pointer signal. Cell
// coordinates are reported at the cell center. ok is false for wheel and
// other buttons.
func MouseRaw(msg tea.MouseMsg) (core.Raw, bool) {
	raw := core.Raw{
		X:      float64(msg.X) + 0.5,
		Y:      float64(msg.Y) + 0.5,
		HasPos: true,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return core.Raw{}, false
		}
		raw.Kind = core.RawPointerDown
	case tea.MouseActionMotion:
		raw.Kind = core.RawPointerMove
	case tea.MouseActionRelease:
		raw.Kind = core.RawPointerUp
	default:
		return core.Raw{}, false
	}
	return raw, true
}
