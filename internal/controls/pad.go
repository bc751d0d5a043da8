// Package controls implements the on-screen touch pad: a directional pad and
// an action button that emit the same key vocabulary as a keyboard.
package controls

import (
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// DefaultRepeat is the interval between repeated presses while a button is held.
const DefaultRepeat = 100 * time.Millisecond

// InputFunc receives a key from the pad.
type InputFunc func(key string)

type button struct {
	key   string
	glyph rune
	rect  core.Rect
}

// Pad lays out touch buttons along the bottom of the surface.
// It implements engine.Overlay.
type Pad struct {
	onInput InputFunc
	repeat  time.Duration
	clock   core.Clock

	buttons []button
	width   int
	height  int

	held       int // index into buttons, -1 when nothing is held
	capturing  bool
	swallow    bool // drop the click that follows a captured gesture
	nextRepeat time.Time
}

// Option customizes a Pad.
type Option func(*Pad)

// WithRepeat sets the hold repeat interval.
func WithRepeat(d time.Duration) Option {
	return func(p *Pad) {
		if d > 0 {
			p.repeat = d
		}
	}
}

// WithClock sets the time source used for repeats.
func WithClock(c core.Clock) Option {
	return func(p *Pad) {
		if c != nil {
			p.clock = c
		}
	}
}

// New creates a pad that reports presses to onInput.
func New(onInput InputFunc, opts ...Option) *Pad {
	p := &Pad{
		onInput: onInput,
		repeat:  DefaultRepeat,
		clock:   core.SystemClock{},
		held:    -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Update lays out the buttons for the current bounds and fires hold repeats.
func (p *Pad) Update(width, height int) {
	if width != p.width || height != p.height || p.buttons == nil {
		p.layout(width, height)
	}
	if p.held < 0 {
		return
	}
	now := p.clock.Now()
	if now.Before(p.nextRepeat) {
		return
	}
	p.fire(p.held)
	p.nextRepeat = now.Add(p.repeat)
}

// layout scales the buttons to the surface. Terminal cells are about twice
// as tall as wide, so buttons are twice as wide as they are tall.
func (p *Pad) layout(width, height int) {
	p.width, p.height = width, height

	bh := core.Clamp(height/8, 1, 4)
	bw := bh * 2
	margin := 1

	// D-pad cross, bottom-left.
	left := margin
	top := height - margin - 3*bh
	// Action button, bottom-right, two buttons tall.
	aw, ah := bw*2, bh*2
	ax := width - margin - aw
	ay := height - margin - ah - bh/2

	p.buttons = []button{
		{key: core.KeyUp, glyph: '▲', rect: core.NewRect(left+bw, top, bw, bh)},
		{key: core.KeyLeft, glyph: '◀', rect: core.NewRect(left, top+bh, bw, bh)},
		{key: core.KeyRight, glyph: '▶', rect: core.NewRect(left+2*bw, top+bh, bw, bh)},
		{key: core.KeyDown, glyph: '▼', rect: core.NewRect(left+bw, top+2*bh, bw, bh)},
		{key: core.KeySpace, glyph: '●', rect: core.NewRect(ax, ay, aw, ah)},
	}
	if p.held >= len(p.buttons) {
		p.held = -1
	}
}

// Draw paints the pad over the game.
func (p *Pad) Draw(dst *core.Screen, _, _ int) {
	for i, b := range p.buttons {
		c := core.ColorGray
		if i == p.held {
			c = core.ColorBrightWhite
		}
		dst.FillRect(b.rect, '░', c)
		cx, cy := b.rect.Center()
		dst.Paint(cx, cy, b.glyph, c)
	}
}

// Intercept consumes pointer gestures that begin on a button. Keys always
// pass through.
func (p *Pad) Intercept(ev core.Event) bool {
	switch ev.Kind {
	case core.EventStart:
		i := p.hit(ev.X, ev.Y)
		if i < 0 {
			p.swallow = false
			return false
		}
		p.capturing = true
		p.press(i)
		return true

	case core.EventMove:
		if !p.capturing {
			return false
		}
		// Sliding onto another button switches to it.
		if i := p.hit(ev.X, ev.Y); i >= 0 && i != p.held {
			p.press(i)
		} else if i < 0 {
			p.held = -1
		}
		return true

	case core.EventEnd:
		if !p.capturing {
			return false
		}
		p.capturing = false
		p.held = -1
		p.swallow = true
		return true

	case core.EventClick:
		if p.swallow {
			p.swallow = false
			return true
		}
		return false
	}
	return false
}

// Held returns the key of the button being held, or "".
func (p *Pad) Held() string {
	if p.held < 0 {
		return ""
	}
	return p.buttons[p.held].key
}

// Button returns the layout rectangle for key.
func (p *Pad) Button(key string) (core.Rect, bool) {
	for _, b := range p.buttons {
		if b.key == key {
			return b.rect, true
		}
	}
	return core.Rect{}, false
}

func (p *Pad) press(i int) {
	p.held = i
	p.fire(i)
	p.nextRepeat = p.clock.Now().Add(p.repeat)
}

func (p *Pad) fire(i int) {
	if p.onInput != nil {
		p.onInput(p.buttons[i].key)
	}
}

func (p *Pad) hit(x, y float64) int {
	for i, b := range p.buttons {
		if b.rect.ContainsF(x, y) {
			return i
		}
	}
	return -1
}
