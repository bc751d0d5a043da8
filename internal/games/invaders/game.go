// Package invaders implements Cosmic Invaders: a lockstep enemy formation,
// rate-limited player shots and an endless wave loop.
package invaders

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

const (
	hudHeight = 1
	bulletW   = 1.0
	bulletH   = 1.0
	starDrift = 0.05
)

// Visual characters for rendering
const (
	ShipChar   = '▲'
	BulletChar = '│'
	StarChar   = '·'
)

var rowGlyphs = []rune{'▼', '◆', '▒', '■'}

var rowColors = []core.Color{
	core.ColorBrightMagenta,
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
}

type enemy struct {
	box   core.FRect
	row   int
	alive bool
}

type bullet struct {
	box  core.FRect
	prev core.FRect // box at the start of the tick
}

type star struct {
	x, y float64
}

// Game implements Cosmic Invaders.
type Game struct {
	cfg     config.InvadersConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand

	initialized bool
	phase       core.Phase
	score       int
	wave        int
	tick        uint64

	width    float64
	height   float64
	tooSmall bool

	enemies    []enemy
	dir        float64 // +1 right, -1 left
	moveTicker int

	bullets  []bullet
	lastShot uint64
	hasShot  bool

	shipX    float64 // left edge
	steering bool

	stars []star
}

// New creates an Invaders game tuned by cfg.
func New(cfg config.InvadersConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.KindInvaders.ID(), func(cfg config.Config) registry.Game {
		return New(cfg.Invaders)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return registry.KindInvaders.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Cosmic Invaders"
}

// Reset initializes the game for a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.phase = core.PhasePlaying
	g.score = 0
	g.wave = 0
	g.tick = 0
	g.bullets = nil
	g.hasShot = false
	g.steering = false
	g.enemies = nil
	g.width, g.height = -1, -1
	g.initialized = true

	g.layout(float64(max(cfg.ScreenW, 0)), float64(max(cfg.ScreenH, 0)))
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

// formationWidth is the span of a full formation row.
func (g *Game) formationWidth() float64 {
	c := float64(g.cfg.Cols)
	return c*g.cfg.EnemyW + (c-1)*g.cfg.GapX
}

func (g *Game) rowHeight() float64 {
	return g.cfg.EnemyH + g.cfg.GapY
}

func (g *Game) fieldTop() float64 {
	return hudHeight
}

// shipY is the top of the ship row.
func (g *Game) shipY() float64 {
	return g.height - 1
}

// spawnWave places a full formation at the initial layout.
func (g *Game) spawnWave() {
	g.wave++
	g.dir = 1
	g.moveTicker = 0
	g.bullets = g.bullets[:0]
	startX := math.Floor((g.width - g.formationWidth()) / 2)
	startY := g.fieldTop() + 1

	g.enemies = g.enemies[:0]
	for r := range g.cfg.Rows {
		for c := range g.cfg.Cols {
			g.enemies = append(g.enemies, enemy{
				box: core.FRect{
					X: startX + float64(c)*(g.cfg.EnemyW+g.cfg.GapX),
					Y: startY + float64(r)*g.rowHeight(),
					W: g.cfg.EnemyW,
					H: g.cfg.EnemyH,
				},
				row:   r,
				alive: true,
			})
		}
	}
}

// layout adapts to new bounds. Stars are redistributed; a formation that
// no longer fits is placed again at the initial layout, keeping the score.
// After game over only the bounds change.
func (g *Game) layout(w, h float64) bool {
	if w == g.width && h == g.height {
		return !g.tooSmall
	}
	g.width, g.height = w, h
	g.runtime.ScreenW, g.runtime.ScreenH = int(w), int(h)

	minH := g.fieldTop() + 1 + float64(g.cfg.Rows)*g.rowHeight() + 2
	g.tooSmall = w < g.formationWidth()+g.cfg.StepX || h < minH
	if g.tooSmall {
		return false
	}
	if g.phase == core.PhaseGameOver {
		return true
	}

	g.scatterStars()
	g.shipX = core.ClampF(g.shipX, 0, w-g.cfg.ShipW)
	if g.enemies == nil {
		g.shipX = (w - g.cfg.ShipW) / 2
	}

	switch {
	case g.enemies == nil:
		g.spawnWave()
	case !g.formationFits():
		g.wave--
		g.spawnWave()
	}

	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if b.box.X >= 0 && b.box.Right() <= w && b.box.Bottom() <= h {
			kept = append(kept, b)
		}
	}
	g.bullets = kept
	return true
}

func (g *Game) formationFits() bool {
	for _, e := range g.enemies {
		if e.alive && (e.box.X < 0 || e.box.Right() > g.width || e.box.Bottom() > g.shipY()) {
			return false
		}
	}
	return true
}

func (g *Game) scatterStars() {
	g.stars = make([]star, g.cfg.Stars)
	for i := range g.stars {
		g.stars[i] = star{
			x: g.rng.Float64() * g.width,
			y: g.fieldTop() + g.rng.Float64()*(g.height-g.fieldTop()),
		}
	}
}

// Update runs one tick: bullets, formation, collisions, then wave and loss checks.
func (g *Game) Update(width, height int) {
	if !g.initialized || width <= 0 || height <= 0 {
		return
	}
	if !g.layout(float64(width), float64(height)) {
		return
	}
	g.driftStars()
	if g.phase == core.PhaseGameOver {
		return
	}

	g.tick++
	g.moveBullets()
	dx, dy := g.moveFormation()
	g.resolveHits(dx, dy)

	if g.aliveCount() == 0 {
		g.spawnWave()
	}
	if g.reachedShip() {
		g.phase = core.PhaseGameOver
		g.runtime.Emit(core.SoundGameOver)
	}
}

func (g *Game) driftStars() {
	span := g.height - g.fieldTop()
	if span <= 0 {
		return
	}
	for i := range g.stars {
		g.stars[i].y += starDrift
		if g.stars[i].y >= g.height {
			g.stars[i].y -= span
			g.stars[i].x = g.rng.Float64() * g.width
		}
	}
}

// moveBullets advances shots upward and discards those above the field.
func (g *Game) moveBullets() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.prev = b.box
		b.box.Y -= g.cfg.BulletSpeed
		if b.box.Bottom() <= g.fieldTop() {
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

// moveFormation steps the formation every MoveEvery ticks and returns how
// far it moved. When the next step would leave the field it reverses and
// drops one row instead.
func (g *Game) moveFormation() (dx, dy float64) {
	g.moveTicker++
	if g.moveTicker < max(g.cfg.MoveEvery, 1) {
		return 0, 0
	}
	g.moveTicker = 0

	minX, maxX, ok := g.aliveSpan()
	if !ok {
		return 0, 0
	}

	dx = g.dir * g.cfg.StepX
	if maxX+dx > g.width || minX+dx < 0 {
		g.dir = -g.dir
		dy = g.rowHeight()
		for i := range g.enemies {
			g.enemies[i].box.Y += dy
		}
		return 0, dy
	}
	for i := range g.enemies {
		g.enemies[i].box.X += dx
	}
	return dx, 0
}

// aliveSpan returns the horizontal extent of the living enemies.
func (g *Game) aliveSpan() (minX, maxX float64, ok bool) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	for _, e := range g.enemies {
		if !e.alive {
			continue
		}
		ok = true
		minX = math.Min(minX, e.box.X)
		maxX = math.Max(maxX, e.box.Right())
	}
	return minX, maxX, ok
}

// resolveHits kills every live enemy a bullet touched this tick and removes
// the bullet. The bullet's path is swept relative to the formation, which
// moved by (dx, dy).
func (g *Game) resolveHits(dx, dy float64) {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		path := b.prev.Offset(dx, dy).Union(b.box)
		hit := false
		for i := range g.enemies {
			e := &g.enemies[i]
			if e.alive && path.Intersects(e.box) {
				e.alive = false
				g.score += g.cfg.KillScore
				hit = true
			}
		}
		if hit {
			g.runtime.Emit(core.SoundHit)
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

func (g *Game) aliveCount() int {
	n := 0
	for _, e := range g.enemies {
		if e.alive {
			n++
		}
	}
	return n
}

// reachedShip reports whether the formation has come down to the ship row.
func (g *Game) reachedShip() bool {
	for _, e := range g.enemies {
		if e.alive && e.box.Bottom() > g.shipY() {
			return true
		}
	}
	return false
}

// fire launches a bullet from the ship's nose when the cooldown allows.
func (g *Game) fire() bool {
	if g.hasShot && g.tick-g.lastShot < uint64(max(g.cfg.FireCooldown, 0)) {
		return false
	}
	g.hasShot = true
	g.lastShot = g.tick
	g.bullets = append(g.bullets, bullet{box: core.FRect{
		X: g.shipX + g.cfg.ShipW/2 - bulletW/2,
		Y: g.shipY() - bulletH,
		W: bulletW,
		H: bulletH,
	}})
	g.runtime.Emit(core.SoundShoot)
	return true
}

func (g *Game) steerTo(x float64) {
	g.shipX = core.ClampF(x-g.cfg.ShipW/2, 0, g.width-g.cfg.ShipW)
}

// HandleInput steers the ship and fires.
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
	if g.tooSmall {
		return
	}

	switch ev.Kind {
	case core.EventStart:
		g.steering = true
		g.steerTo(ev.X)
	case core.EventMove:
		if g.steering {
			g.steerTo(ev.X)
		}
	case core.EventEnd:
		g.steering = false
	case core.EventClick:
		g.fire()
	case core.EventKeyDown:
		switch ev.Key {
		case core.KeyLeft:
			g.shipX = core.ClampF(g.shipX-g.cfg.ShipStep, 0, g.width-g.cfg.ShipW)
		case core.KeyRight:
			g.shipX = core.ClampF(g.shipX+g.cfg.ShipStep, 0, g.width-g.cfg.ShipW)
		case core.KeySpace, core.KeyUp:
			g.fire()
		}
	}
}

func cellRect(b core.FRect) core.Rect {
	x := int(math.Round(b.X))
	y := int(math.Round(b.Y))
	return core.NewRect(x, y, max(int(math.Round(b.W)), 1), max(int(math.Round(b.H)), 1))
}

// Draw paints stars, formation, bullets, ship and HUD.
func (g *Game) Draw(dst *core.Screen, _ uint64) {
	if !g.initialized {
		return
	}
	dst.DrawTextColor(1, 0, fmt.Sprintf("Invaders  Score: %d  Wave: %d", g.score, g.wave), core.ColorBrightWhite)

	if g.tooSmall {
		dst.DrawMessage("Window too small", "Resize to continue")
		return
	}

	for _, s := range g.stars {
		dst.Paint(int(s.x), int(s.y), StarChar, core.ColorGray)
	}
	for _, e := range g.enemies {
		if !e.alive {
			continue
		}
		r := e.row % len(rowGlyphs)
		dst.FillRect(cellRect(e.box), rowGlyphs[r], rowColors[r])
	}
	for _, b := range g.bullets {
		dst.FillRect(cellRect(b.box), BulletChar, core.ColorBrightYellow)
	}
	ship := core.FRect{X: g.shipX, Y: g.shipY(), W: g.cfg.ShipW, H: 1}
	dst.FillRect(cellRect(ship), ShipChar, core.ColorBrightGreen)

	if g.phase == core.PhaseGameOver {
		dst.DrawMessage("The invaders landed", fmt.Sprintf("Score %d - Space, R or tap to restart", g.score))
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
