package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

type fakeGame struct {
	updates int
	frames  []uint64
	events  []core.Event
}

func (g *fakeGame) Update(int, int) { g.updates++ }

func (g *fakeGame) Draw(dst *core.Screen, frame uint64) {
	g.frames = append(g.frames, frame)
	dst.Set(0, 0, 'G')
}

func (g *fakeGame) HandleInput(ev core.Event) { g.events = append(g.events, ev) }

type fakeOverlay struct {
	updates int
	consume bool
	seen    []core.Event
}

func (o *fakeOverlay) Update(int, int) { o.updates++ }

func (o *fakeOverlay) Draw(dst *core.Screen, _, _ int) { dst.Set(1, 0, 'O') }

func (o *fakeOverlay) Intercept(ev core.Event) bool {
	o.seen = append(o.seen, ev)
	return o.consume
}

func TestBind(t *testing.T) {
	g := &fakeGame{}
	l, err := NewLoop(Bind(g))
	require.NoError(t, err)
	l.Resize(4, 2)

	l.Tick()
	l.Interact(core.ClickEvent())

	assert.Equal(t, 1, g.updates)
	assert.Equal(t, []uint64{1}, g.frames)
	assert.Equal(t, []core.Event{core.ClickEvent()}, g.events)
}

func TestWithOverlay(t *testing.T) {
	g := &fakeGame{}
	o := &fakeOverlay{}
	l, err := NewLoop(WithOverlay(Bind(g), o))
	require.NoError(t, err)
	l.Resize(4, 2)

	l.Tick()
	assert.Equal(t, "GO  ", l.Surface().Screen().Row(0))
	assert.Equal(t, 1, o.updates)

	l.Interact(core.KeyEvent(core.KeySpace))
	o.consume = true
	l.Interact(core.StartEvent(0, 0))

	assert.Len(t, o.seen, 2)
	assert.Equal(t, []core.Event{core.KeyEvent(core.KeySpace)}, g.events)
}
