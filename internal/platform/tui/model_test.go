package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/games/stacker"
	"github.com/vovakirdan/pocket-arcade/internal/platform"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTranslate(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.KeyUp},
		{"w", runes("w"), core.KeyUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.KeyDown},
		{"a", runes("a"), core.KeyLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.KeyRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.KeySpace},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.KeyEnter},
		{"restart", runes("r"), "r"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEscape},
		{"unbound", runes("z"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Translate(tt.msg))
		})
	}
}

func TestMouseRaw(t *testing.T) {
	raw, ok := MouseRaw(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, ok)
	assert.Equal(t, core.Raw{Kind: core.RawPointerDown, X: 3.5, Y: 4.5, HasPos: true}, raw)

	raw, ok = MouseRaw(tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.True(t, ok)
	assert.Equal(t, core.RawPointerMove, raw.Kind)

	raw, ok = MouseRaw(tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionRelease})
	require.True(t, ok)
	assert.Equal(t, core.RawPointerUp, raw.Kind)

	_, ok = MouseRaw(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.False(t, ok)
	_, ok = MouseRaw(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.False(t, ok)
}

func newStackerModel(t *testing.T) (Model, *platform.Session) {
	t.Helper()
	session, err := platform.NewSession(platform.Options{
		Game:    stacker.New(config.Default().Stacker),
		Runtime: core.RuntimeConfig{Seed: 1},
	})
	require.NoError(t, err)
	return NewModel(session, 60, nil), session
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModelDrivesSession(t *testing.T) {
	m, session := newStackerModel(t)
	require.NotNil(t, m.Init())

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	m, cmd := step(t, m, TickMsg{})
	require.NotNil(t, cmd, "tick reschedules itself")
	assert.Equal(t, uint64(1), session.Loop().Frame())
	assert.Contains(t, m.View(), "Score: 0")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, 1, session.State().Score)

	// A tap places too: press and release on one cell
	m, _ = step(t, m, TickMsg{})
	m, _ = step(t, m, tea.MouseMsg{X: 20, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, _ = step(t, m, tea.MouseMsg{X: 20, Y: 6, Action: tea.MouseActionRelease})
	st := session.State()
	assert.True(t, st.Score == 2 || st.GameOver(), "click should place a block or end the tower, got %+v", st)
}

func TestHelpBarSharesTheWindow(t *testing.T) {
	m, session := newStackerModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})
	m, _ = step(t, m, TickMsg{})

	assert.Equal(t, 12-HelpRows, session.Screen().Height())
	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[len(lines)-1], "restart")

	m, _ = step(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	m, _ = step(t, m, TickMsg{})
	full := lipgloss.Height(m.helpView())
	assert.Greater(t, full, HelpRows)
	assert.Equal(t, 12-full, session.Screen().Height())
	assert.Contains(t, m.View(), "screenshot")

	m, _ = step(t, m, runes("?"))
	_, _ = step(t, m, TickMsg{})
	assert.Equal(t, 12-HelpRows, session.Screen().Height())
}

func TestQuitStopsSession(t *testing.T) {
	m, session := newStackerModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, session.Loop().Stopped())
	assert.Empty(t, m.View())
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColor(1, 0, "hello", core.ColorBrightYellow)
	s.DrawText(1, 2, "world")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, out, "hello")
	assert.Contains(t, lines[2], "world")
}
