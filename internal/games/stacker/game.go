// Package stacker implements Zen Stacker: drop an oscillating block onto the
// tower, keep only the overlapping part, and climb as high as you can.
package stacker

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

const hudHeight = 1

// BlockChar fills every block.
const BlockChar = '█'

// block is a placed layer. Level 0 is the base.
type block struct {
	x, w  float64
	level int
}

// mover is the block sliding above the tower.
type mover struct {
	x, w float64
	dir  float64
}

// Game implements the stacker.
type Game struct {
	cfg     config.StackerConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand

	initialized bool
	phase       core.Phase
	score       int

	width  float64
	height float64

	blocks []block
	moving mover
	speed  float64
	camera float64 // world units scrolled up
	// fromLeft is the side the next moving block enters from.
	fromLeft bool
}

// New creates a stacker tuned by cfg.
func New(cfg config.StackerConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.KindStacker.ID(), func(cfg config.Config) registry.Game {
		return New(cfg.Stacker)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return registry.KindStacker.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Zen Stacker"
}

// Reset starts a new tower.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.phase = core.PhasePlaying
	g.score = 0
	g.speed = g.cfg.StartSpeed
	g.camera = 0
	g.blocks = nil
	g.fromLeft = g.rng.Intn(2) == 0
	g.width = float64(max(cfg.ScreenW, 0))
	g.height = float64(max(cfg.ScreenH, 0))
	g.initialized = true

	if g.width > 0 {
		g.build()
	}
}

// Restart resets a finished game with a fresh seed.
func (g *Game) Restart() bool {
	if !g.initialized || g.phase != core.PhaseGameOver {
		return false
	}
	cfg := g.runtime
	cfg.Seed = g.rng.Int63()
	g.Reset(cfg)
	return true
}

func (g *Game) baseWidth() float64 {
	w := g.cfg.BaseWidth
	if w <= 0 {
		w = g.width * g.cfg.BaseRatio
	}
	return math.Min(math.Max(w, 1), g.width)
}

// build places the base block and the first moving block.
func (g *Game) build() {
	bw := g.baseWidth()
	g.blocks = []block{{x: (g.width - bw) / 2, w: bw, level: 0}}
	g.spawn(bw)
}

// spawn puts a new moving block of width w at alternating edges.
func (g *Game) spawn(w float64) {
	if g.fromLeft {
		g.moving = mover{x: 0, w: w, dir: 1}
	} else {
		g.moving = mover{x: math.Max(g.width-w, 0), w: w, dir: -1}
	}
	g.fromLeft = !g.fromLeft
}

func (g *Game) top() block {
	return g.blocks[len(g.blocks)-1]
}

// StackHeight is the height of the placed tower in world units.
func (g *Game) StackHeight() float64 {
	return float64(len(g.blocks)) * g.cfg.BlockH
}

func (g *Game) visibleHeight() float64 {
	return math.Max(g.height-hudHeight, 0)
}

// cameraTarget keeps the top of the tower around mid-field.
func (g *Game) cameraTarget() float64 {
	return math.Max(0, g.StackHeight()-g.visibleHeight()/2)
}

// Update slides the moving block and eases the camera.
func (g *Game) Update(width, height int) {
	if !g.initialized || width <= 0 || height <= 0 {
		return
	}
	g.resize(float64(width), float64(height))
	if g.phase == core.PhaseGameOver {
		return
	}

	g.slide()
	g.camera += (g.cameraTarget() - g.camera) * g.cfg.CameraLerp
}

// resize rescales the tower horizontally so it keeps its shape.
func (g *Game) resize(w, h float64) {
	g.height = h
	g.runtime.ScreenW, g.runtime.ScreenH = int(w), int(h)
	if w == g.width {
		return
	}
	if g.width <= 0 || g.blocks == nil {
		g.width = w
		g.build()
		return
	}

	k := w / g.width
	g.width = w
	for i := range g.blocks {
		g.blocks[i].x *= k
		g.blocks[i].w *= k
	}
	g.moving.x *= k
	g.moving.w *= k
	g.moving.x = core.ClampF(g.moving.x, 0, g.width-g.moving.w)
}

// slide moves the block one step and bounces it off the field edges.
func (g *Game) slide() {
	m := &g.moving
	maxX := g.width - m.w
	if maxX <= 0 {
		m.x = 0
		return
	}
	m.x += m.dir * g.speed
	switch {
	case m.x < 0:
		m.x = -m.x
		m.dir = 1
	case m.x > maxX:
		m.x = 2*maxX - m.x
		m.dir = -1
	}
	m.x = core.ClampF(m.x, 0, maxX)
}

// place drops the moving block onto the tower.
func (g *Game) place() {
	below := g.top()
	start, length := core.Overlap(g.moving.x, g.moving.w, below.x, below.w)
	if length <= 0 {
		g.phase = core.PhaseGameOver
		g.runtime.Emit(core.SoundGameOver)
		return
	}

	g.blocks = append(g.blocks, block{x: start, w: length, level: below.level + 1})
	g.score++
	g.speed += g.cfg.SpeedGain
	g.runtime.Emit(core.SoundPlace)
	g.spawn(length)
}

// HandleInput places on space, Enter or click.
func (g *Game) HandleInput(ev core.Event) {
	if !g.initialized {
		return
	}
	if g.phase == core.PhaseGameOver {
		if core.IsRestart(ev) {
			g.Restart()
		}
		return
	}
	if g.blocks == nil {
		return
	}

	if ev.Kind == core.EventClick || ev.IsKey(core.KeySpace, core.KeyEnter) {
		g.place()
	}
}

// screenRect maps a block at level with horizontal extent [x, x+w) to cells.
func (g *Game) screenRect(x, w float64, level int) core.Rect {
	bottom := g.height - float64(level)*g.cfg.BlockH + g.camera
	top := bottom - g.cfg.BlockH
	x0 := int(math.Round(x))
	x1 := int(math.Round(x + w))
	y0 := int(math.Round(top))
	y1 := int(math.Round(bottom))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Draw paints the tower, the moving block and the HUD.
func (g *Game) Draw(dst *core.Screen, _ uint64) {
	if !g.initialized {
		return
	}
	for _, b := range g.blocks {
		r := g.screenRect(b.x, b.w, b.level)
		if r.Bottom() <= hudHeight {
			continue
		}
		dst.FillRect(r, BlockChar, core.LayerColor(b.level))
	}
	if g.blocks != nil && g.phase == core.PhasePlaying {
		level := g.top().level + 1
		dst.FillRect(g.screenRect(g.moving.x, g.moving.w, level), BlockChar, core.LayerColor(level))
	}

	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColor(1, 0, fmt.Sprintf("Stacker  Score: %d", g.score), core.ColorBrightWhite)

	if g.phase == core.PhaseGameOver {
		dst.DrawMessage("Tower complete", fmt.Sprintf("Height %d - Space, R or tap to restart", g.score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score: g.score,
		Phase: g.phase,
		Seed:  g.runtime.Seed,
	}
}
