// Package gfx hosts a session in a desktop or mobile window. The cell grid
// games draw on is scaled up to pixels; mouse and touches are reported in
// cell units so games see the same coordinates as in the terminal.
package gfx

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/platform"
)

// DefaultCell is the pixel size of one grid cell.
const DefaultCell = 16

// Key auto-repeat in ticks.
const (
	keyRepeatDelay    = 18
	keyRepeatInterval = 4
)

// mouseID keeps the mouse apart from touch identifiers.
const mouseID = -1

var colorBG = color.RGBA{16, 16, 28, 255}

type keyBinding struct {
	key  ebiten.Key
	name string
}

var keyBindings = []keyBinding{
	{ebiten.KeyArrowUp, core.KeyUp},
	{ebiten.KeyW, core.KeyUp},
	{ebiten.KeyArrowDown, core.KeyDown},
	{ebiten.KeyS, core.KeyDown},
	{ebiten.KeyArrowLeft, core.KeyLeft},
	{ebiten.KeyA, core.KeyLeft},
	{ebiten.KeyArrowRight, core.KeyRight},
	{ebiten.KeyD, core.KeyRight},
	{ebiten.KeySpace, core.KeySpace},
	{ebiten.KeyEnter, core.KeyEnter},
	{ebiten.KeyR, "r"},
	{ebiten.KeyEscape, core.KeyEscape},
}

// Host implements ebiten.Game for one session.
type Host struct {
	session    *platform.Session
	normalizer *core.Normalizer
	cell       int

	mouseDown bool
	mouseX    int
	mouseY    int
	touches   map[ebiten.TouchID][2]int
	focused   bool
}

// NewHost wraps session. cell <= 0 selects DefaultCell.
func NewHost(session *platform.Session, cell int) *Host {
	if cell <= 0 {
		cell = DefaultCell
	}
	return &Host{
		session:    session,
		normalizer: core.NewNormalizer(),
		cell:       cell,
		touches:    make(map[ebiten.TouchID][2]int),
		focused:    true,
	}
}

// Update polls input and advances the session one frame.
func (h *Host) Update() error {
	if h.session.Loop().Stopped() || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		h.session.Stop()
		return ebiten.Termination
	}

	focused := ebiten.IsFocused()
	if h.focused && !focused {
		h.normalizer.Reset()
		h.mouseDown = false
	}
	h.focused = focused

	h.pollKeys()
	h.pollMouse()
	h.pollTouches()
	h.session.Tick()
	return nil
}

func (h *Host) pollKeys() {
	for _, b := range keyBindings {
		if repeatDue(inpututil.KeyPressDuration(b.key), keyRepeatDelay, keyRepeatInterval) {
			h.feed(core.Raw{Kind: core.RawKeyPress, Key: b.name})
		}
	}
}

func (h *Host) pollMouse() {
	px, py := ebiten.CursorPosition()
	x, y := toCell(px, py, h.cell)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		h.mouseDown = true
		h.feed(core.Raw{Kind: core.RawPointerDown, ID: mouseID, X: x, Y: y, HasPos: true})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if h.mouseDown {
			h.mouseDown = false
			h.feed(core.Raw{Kind: core.RawPointerUp, ID: mouseID, X: x, Y: y, HasPos: true})
		}
	case h.mouseDown && (px != h.mouseX || py != h.mouseY):
		h.feed(core.Raw{Kind: core.RawPointerMove, ID: mouseID, X: x, Y: y, HasPos: true})
	}
	h.mouseX, h.mouseY = px, py
}

func (h *Host) pollTouches() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		px, py := ebiten.TouchPosition(id)
		h.touches[id] = [2]int{px, py}
		x, y := toCell(px, py, h.cell)
		h.feed(core.Raw{Kind: core.RawTouchStart, ID: int(id), X: x, Y: y, HasPos: true})
	}

	for id, last := range h.touches {
		if inpututil.IsTouchJustReleased(id) {
			delete(h.touches, id)
			h.feed(core.Raw{Kind: core.RawTouchEnd, ID: int(id)})
			continue
		}
		px, py := ebiten.TouchPosition(id)
		if px == last[0] && py == last[1] {
			continue
		}
		h.touches[id] = [2]int{px, py}
		x, y := toCell(px, py, h.cell)
		h.feed(core.Raw{Kind: core.RawTouchMove, ID: int(id), X: x, Y: y, HasPos: true})
	}
}

func (h *Host) feed(raw core.Raw) {
	for _, ev := range h.normalizer.Feed(raw) {
		h.session.Input(ev)
	}
}

// Draw paints the last frame. Glyphs without a pixel font render as
// colored shapes; ASCII text uses the debug font.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	s := h.session.Screen()
	cell := float64(h.cell)
	for y := range s.Height() {
		for x := range s.Width() {
			c := s.GetCell(x, y)
			if c.Rune == ' ' || c.Rune == 0 {
				continue
			}
			ox, oy := float64(x)*cell, float64(y)*cell
			if isText(c.Rune) {
				ebitenutil.DebugPrintAt(screen, string(c.Rune), int(ox)+(h.cell-debugGlyphW)/2, int(oy)+(h.cell-debugGlyphH)/2)
				continue
			}
			rx, ry, rw, rh := glyphRect(c.Rune, cell)
			vector.DrawFilledRect(screen, float32(ox+rx), float32(oy+ry), float32(rw), float32(rh), paletteColor(c.Color), false)
		}
	}
}

// Layout sizes the grid to the window and returns the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.session.Resize(outsideWidth/h.cell, outsideHeight/h.cell)
	return outsideWidth, outsideHeight
}

// Options configures the window.
type Options struct {
	Title  string
	Cell   int
	Width  int // in cells
	Height int // in cells
	FPS    int
}

// Run opens a window and blocks until it is closed.
func Run(session *platform.Session, opts Options) error {
	host := NewHost(session, opts.Cell)
	if opts.Width <= 0 {
		opts.Width = 60
	}
	if opts.Height <= 0 {
		opts.Height = 30
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = session.Game().Title()
	}

	ebiten.SetWindowSize(opts.Width*host.cell, opts.Height*host.cell)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	if err := ebiten.RunGame(host); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
