// Package snake implements the grid snake. The grid is re-derived from the
// surface bounds every tick and logic steps are throttled on wall time.
package snake

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a grid cell.
type Point struct {
	X, Y int
}

const hudHeight = 1 // Top HUD line, not part of the grid

// Visual characters for rendering
const (
	HeadChar = '█'
	BodyChar = '▓'
	FoodChar = '●'
)

// swipe tracks a drag from start to end. End events carry no position,
// so the last move is remembered.
type swipe struct {
	active       bool
	startX       float64
	startY       float64
	lastX, lastY float64
}

// Game implements the Snake game.
type Game struct {
	cfg     config.SnakeConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand

	initialized bool
	score       int
	phase       core.Phase
	foodEaten   int
	lastStep    time.Time

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Latched from the most recent valid input
	food      Point

	// Grid derived from the last Update bounds
	cols     int
	rows     int
	tooSmall bool

	swipe swipe
}

// New creates a Snake game tuned by cfg.
func New(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.KindSnake.ID(), func(cfg config.Config) registry.Game {
		return New(cfg.Snake)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return registry.KindSnake.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes the game for a new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.score = 0
	g.phase = core.PhasePlaying
	g.foodEaten = 0
	g.lastStep = time.Time{}
	g.swipe = swipe{}
	g.snake = nil
	g.cols, g.rows = -1, -1
	g.initialized = true

	g.layout(cfg.ScreenW, cfg.ScreenH)
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

// Rate returns the current logic steps per second.
func (g *Game) Rate() float64 {
	return math.Min(g.cfg.MaxRate, g.cfg.BaseRate+g.cfg.RatePerFood*float64(g.foodEaten))
}

func (g *Game) interval() time.Duration {
	rate := g.Rate()
	if rate <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / rate)
}

// Update re-derives the grid and runs at most one logic step when the
// throttle interval has elapsed.
func (g *Game) Update(width, height int) {
	if !g.initialized {
		return
	}
	if !g.layout(width, height) {
		return
	}
	if g.phase == core.PhaseGameOver {
		return
	}

	now := g.runtime.Now()
	if g.lastStep.IsZero() {
		g.lastStep = now
		return
	}
	if now.Sub(g.lastStep) < g.interval() {
		return
	}
	g.lastStep = now
	g.step()
}

// layout derives the grid from the bounds. While playing, a snake that no
// longer fits is placed again; score and phase are kept. Returns false when the surface is
// too small to play.
func (g *Game) layout(width, height int) bool {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	size := max(g.cfg.GridSize, 1)
	cols := max(width, 0) / size
	rows := max(height-hudHeight, 0) / size

	if cols == g.cols && rows == g.rows && len(g.snake) > 0 {
		return !g.tooSmall
	}
	g.cols, g.rows = cols, rows
	g.tooSmall = cols < g.cfg.StartLength+2 || rows < 3
	if g.tooSmall {
		return false
	}
	// A finished board stays as it ended until the restart
	if g.phase == core.PhaseGameOver {
		return true
	}

	if len(g.snake) == 0 || !g.fits() {
		g.placeSnake()
		g.spawnFood()
	} else if !g.inGrid(g.food) {
		g.spawnFood()
	}
	return true
}

func (g *Game) fits() bool {
	for _, p := range g.snake {
		if !g.inGrid(p) {
			return false
		}
	}
	return true
}

func (g *Game) inGrid(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// placeSnake puts a fresh snake in the middle of the grid heading right.
func (g *Game) placeSnake() {
	length := max(g.cfg.StartLength, 1)
	headX := max(g.cols/2, length-1)
	headY := g.rows / 2

	g.snake = make([]Point, length)
	for i := range g.snake {
		g.snake[i] = Point{X: headX - i, Y: headY}
	}
	g.direction = DirRight
	g.nextDir = DirRight
}

// spawnFood places food on a uniformly random free cell chosen from an
// exhaustive scan. A full board ends the game.
func (g *Game) spawnFood() bool {
	occupied := make(map[Point]bool, len(g.snake))
	for _, seg := range g.snake {
		occupied[seg] = true
	}

	free := make([]Point, 0, max(g.cols*g.rows-len(g.snake), 0))
	for y := range g.rows {
		for x := range g.cols {
			if p := (Point{X: x, Y: y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.food = Point{X: -1, Y: -1}
		return false
	}
	g.food = free[g.rng.Intn(len(free))]
	return true
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// step advances the snake one cell in the latched direction.
func (g *Game) step() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir
	head := g.snake[0]
	next := head
	switch g.direction {
	case DirUp:
		next.Y--
	case DirDown:
		next.Y++
	case DirLeft:
		next.X--
	case DirRight:
		next.X++
	}

	// Walls, then any body cell (the tail included)
	if !g.inGrid(next) || g.isSnakeAt(next) {
		g.gameOver()
		return
	}

	g.snake = append([]Point{next}, g.snake...)

	if next == g.food {
		g.score += g.cfg.FoodScore
		g.foodEaten++
		g.runtime.Emit(core.SoundEat)
		if !g.spawnFood() {
			g.gameOver()
		}
		return
	}

	g.snake = g.snake[:len(g.snake)-1]
}

func (g *Game) gameOver() {
	g.phase = core.PhaseGameOver
	g.runtime.Emit(core.SoundGameOver)
}

// HandleInput latches a direction or restarts a finished game.
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

	switch ev.Kind {
	case core.EventKeyDown:
		if dir, ok := keyDirection(ev.Key); ok {
			g.turn(dir)
		}
	case core.EventStart:
		g.swipe = swipe{active: true, startX: ev.X, startY: ev.Y, lastX: ev.X, lastY: ev.Y}
	case core.EventMove:
		if g.swipe.active {
			g.swipe.lastX, g.swipe.lastY = ev.X, ev.Y
		}
	case core.EventEnd:
		if g.swipe.active {
			g.swipe.active = false
			if dir, ok := g.swipeDirection(); ok {
				g.turn(dir)
			}
		}
	}
}

// turn latches dir unless it reverses the current axis.
func (g *Game) turn(dir Direction) {
	if isOpposite(dir, g.direction) {
		return
	}
	g.nextDir = dir
}

func (g *Game) swipeDirection() (Direction, bool) {
	dx := g.swipe.lastX - g.swipe.startX
	dy := g.swipe.lastY - g.swipe.startY
	if dist := math.Hypot(dx, dy); dist == 0 || dist < g.cfg.SwipeMin {
		return 0, false
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			return DirRight, true
		}
		return DirLeft, true
	}
	if dy > 0 {
		return DirDown, true
	}
	return DirUp, true
}

func keyDirection(key string) (Direction, bool) {
	switch key {
	case core.KeyUp:
		return DirUp, true
	case core.KeyDown:
		return DirDown, true
	case core.KeyLeft:
		return DirLeft, true
	case core.KeyRight:
		return DirRight, true
	}
	return 0, false
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// Draw paints the HUD, grid, snake and food.
func (g *Game) Draw(dst *core.Screen, _ uint64) {
	if !g.initialized {
		return
	}
	dst.DrawTextColor(1, 0, fmt.Sprintf("Snake  Score: %d  Speed: %.1f/s", g.score, g.Rate()), core.ColorBrightWhite)

	if g.tooSmall {
		dst.DrawMessage("Window too small", "Resize to continue")
		return
	}

	size := max(g.cfg.GridSize, 1)
	cell := func(p Point) core.Rect {
		return core.NewRect(p.X*size, hudHeight+p.Y*size, size, size)
	}

	if g.inGrid(g.food) {
		dst.FillRect(cell(g.food), FoodChar, core.ColorBrightRed)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			dst.FillRect(cell(g.snake[i]), HeadChar, core.ColorBrightGreen)
		} else {
			dst.FillRect(cell(g.snake[i]), BodyChar, core.ColorGreen)
		}
	}

	if g.phase == core.PhaseGameOver {
		dst.DrawMessage("Game Over", fmt.Sprintf("Score %d - Space, R or tap to restart", g.score))
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

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
