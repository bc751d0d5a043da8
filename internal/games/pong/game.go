// Package pong implements Pong against a scripted opponent.
// Player 1 controls the left paddle, the CPU controls the right paddle.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

const paddleWidth = 1.0

// ball is a point mass; its position is its leading edge.
type ball struct {
	x, y   float64
	vx, vy float64
}

// Speed returns the velocity magnitude.
func (b ball) Speed() float64 {
	return math.Hypot(b.vx, b.vy)
}

// drag is the pointer capture of the player paddle.
type drag struct {
	active      bool
	grabOffsetY float64 // pointer y minus paddle top at capture
}

// Game implements the Pong game logic.
type Game struct {
	cfg     config.PongConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand

	initialized bool
	phase       core.Phase
	tick        uint64

	// Field bounds from the last Update
	width  float64
	height float64

	// Paddle tops
	paddle1Y float64 // Player (left)
	paddle2Y float64 // CPU (right)

	ball ball
	drag drag

	score1 int // Player score
	score2 int // CPU score
}

// New creates a Pong game tuned by cfg.
func New(cfg config.PongConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.KindPong.ID(), func(cfg config.Config) registry.Game {
		return New(cfg.Pong)
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return registry.KindPong.ID()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong vs CPU"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.phase = core.PhasePlaying
	g.tick = 0
	g.score1 = 0
	g.score2 = 0
	g.drag = drag{}
	g.width = float64(max(runtime.ScreenW, 0))
	g.height = float64(max(runtime.ScreenH, 0))

	// Center paddles vertically
	top := (g.height - g.cfg.PaddleHeight) / 2
	g.paddle1Y = g.clampPaddle(top)
	g.paddle2Y = g.clampPaddle(top)

	g.serve()
	g.initialized = true
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

// serve puts the ball at center with a random 45 degree diagonal.
func (g *Game) serve() {
	s := g.cfg.BallSpeed
	g.ball = ball{
		x:  g.width / 2,
		y:  g.height / 2,
		vx: s,
		vy: s,
	}
	if g.rng.Intn(2) == 0 {
		g.ball.vx = -s
	}
	if g.rng.Intn(2) == 0 {
		g.ball.vy = -s
	}
}

// Paddle planes: the faces the ball reflects off.
func (g *Game) leftPlane() float64 {
	return g.cfg.PaddleOffset + paddleWidth
}

func (g *Game) rightPlane() float64 {
	return g.width - g.cfg.PaddleOffset - paddleWidth
}

func (g *Game) bottom() float64 {
	return math.Max(g.height-1, 0)
}

func (g *Game) clampPaddle(y float64) float64 {
	return core.ClampF(y, 0, g.height-g.cfg.PaddleHeight)
}

// Update advances one tick of physics for the current bounds.
func (g *Game) Update(width, height int) {
	if !g.initialized || width <= 0 || height <= 0 {
		return
	}
	g.resize(float64(width), float64(height))
	if g.phase == core.PhaseGameOver {
		return
	}

	g.tick++
	g.updateCPU()
	g.moveBall()
}

// resize keeps every entity inside new bounds.
func (g *Game) resize(w, h float64) {
	if w == g.width && h == g.height {
		return
	}
	fresh := g.width == 0 || g.height == 0
	g.width, g.height = w, h
	g.runtime.ScreenW, g.runtime.ScreenH = int(w), int(h)

	g.paddle1Y = g.clampPaddle(g.paddle1Y)
	g.paddle2Y = g.clampPaddle(g.paddle2Y)

	if fresh {
		top := (h - g.cfg.PaddleHeight) / 2
		g.paddle1Y = g.clampPaddle(top)
		g.paddle2Y = g.clampPaddle(top)
		g.ball.x, g.ball.y = w/2, h/2
		return
	}
	if g.ball.x < 0 || g.ball.x > w {
		g.ball.x = w / 2
	}
	g.ball.y = core.ClampF(g.ball.y, 0, g.bottom())
}

// updateCPU moves the right paddle toward the ball with a bounded
// proportional step.
func (g *Game) updateCPU() {
	center := g.paddle2Y + g.cfg.PaddleHeight/2
	diff := g.ball.y - center
	step := core.ClampF(g.cfg.CPUGain*diff, -g.cfg.CPUSpeed, g.cfg.CPUSpeed)
	g.paddle2Y = g.clampPaddle(g.paddle2Y + step)
}

// moveBall integrates the ball and resolves walls, paddles and scoring.
func (g *Game) moveBall() {
	prevX, prevY := g.ball.x, g.ball.y
	g.ball.x += g.ball.vx
	g.ball.y += g.ball.vy

	// Top and bottom walls reflect elastically
	if g.ball.y < 0 {
		g.ball.y = -g.ball.y
		g.ball.vy = -g.ball.vy
		g.runtime.Emit(core.SoundBounce)
	} else if bottom := g.bottom(); g.ball.y > bottom {
		g.ball.y = 2*bottom - g.ball.y
		g.ball.vy = -g.ball.vy
		g.runtime.Emit(core.SoundBounce)
	}
	g.ball.y = core.ClampF(g.ball.y, 0, g.bottom())

	// Swept paddle test on the leading edge
	if g.ball.vx < 0 {
		plane := g.leftPlane()
		if prevX >= plane && g.ball.x < plane && g.crossesPaddle(prevX, prevY, plane, g.paddle1Y) {
			g.hitPaddle(plane)
		}
	} else if g.ball.vx > 0 {
		plane := g.rightPlane()
		if prevX <= plane && g.ball.x > plane && g.crossesPaddle(prevX, prevY, plane, g.paddle2Y) {
			g.hitPaddle(plane)
		}
	}

	// Scoring: past a side entirely
	switch {
	case g.ball.x < 0:
		g.score2++
		g.point()
	case g.ball.x > g.width:
		g.score1++
		g.point()
	}
}

// crossesPaddle reports whether the ball's path meets the plane within the
// paddle's vertical extent.
func (g *Game) crossesPaddle(prevX, prevY, plane, paddleY float64) bool {
	dx := g.ball.x - prevX
	if dx == 0 {
		return false
	}
	t := (plane - prevX) / dx
	y := prevY + t*(g.ball.y-prevY)
	return y >= paddleY && y <= paddleY+g.cfg.PaddleHeight
}

func (g *Game) hitPaddle(plane float64) {
	g.ball.vx = -g.ball.vx * g.cfg.SpeedUp
	g.ball.vy *= g.cfg.SpeedUp
	g.ball.x = plane
	g.runtime.Emit(core.SoundHit)
}

func (g *Game) point() {
	g.runtime.Emit(core.SoundScore)
	if g.cfg.WinScore > 0 && (g.score1 >= g.cfg.WinScore || g.score2 >= g.cfg.WinScore) {
		g.phase = core.PhaseGameOver
		g.drag = drag{}
		g.runtime.Emit(core.SoundGameOver)
		return
	}
	g.serve()
}

// HandleInput drives the player paddle by drag or key nudges.
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
	case core.EventStart:
		if g.inPaddleHitRegion(ev.X, ev.Y) {
			g.drag = drag{active: true, grabOffsetY: ev.Y - g.paddle1Y}
		}
	case core.EventMove:
		if g.drag.active {
			g.paddle1Y = g.clampPaddle(ev.Y - g.drag.grabOffsetY)
		}
	case core.EventEnd:
		g.drag = drag{}
	case core.EventKeyDown:
		switch ev.Key {
		case core.KeyUp:
			g.paddle1Y = g.clampPaddle(g.paddle1Y - g.cfg.KeyStep)
		case core.KeyDown:
			g.paddle1Y = g.clampPaddle(g.paddle1Y + g.cfg.KeyStep)
		}
	}
}

func (g *Game) inPaddleHitRegion(x, y float64) bool {
	slop := g.cfg.GrabSlop
	left := g.cfg.PaddleOffset - slop
	right := g.cfg.PaddleOffset + paddleWidth + slop
	return x >= left && x <= right &&
		y >= g.paddle1Y-slop && y <= g.paddle1Y+g.cfg.PaddleHeight+slop
}

// Draw paints the net, paddles, ball and scores.
func (g *Game) Draw(dst *core.Screen, _ uint64) {
	if !g.initialized {
		return
	}
	w, h := dst.Width(), dst.Height()

	// Draw center line (net)
	centerX := w / 2
	for y := 1; y < h; y += 2 {
		dst.Paint(centerX, y, NetChar, core.ColorGray)
	}

	// Draw paddles
	ph := max(int(math.Round(g.cfg.PaddleHeight)), 1)
	leftX := int(g.cfg.PaddleOffset)
	rightX := int(g.rightPlane())
	dst.FillRect(core.NewRect(leftX, int(math.Round(g.paddle1Y)), 1, ph), PaddleChar, core.ColorBrightCyan)
	dst.FillRect(core.NewRect(rightX, int(math.Round(g.paddle2Y)), 1, ph), PaddleChar, core.ColorBrightMagenta)

	// Draw ball
	dst.Paint(int(g.ball.x), int(g.ball.y), BallChar, core.ColorBrightYellow)

	// Draw scores
	dst.DrawTextColor(centerX-2-len(fmt.Sprint(g.score1)), 0, fmt.Sprint(g.score1), core.ColorBrightWhite)
	dst.DrawTextColor(centerX+2, 0, fmt.Sprint(g.score2), core.ColorBrightWhite)
	dst.DrawText(1, 0, "P1")
	dst.DrawText(w-4, 0, "CPU")

	if g.phase == core.PhaseGameOver {
		msg := "CPU WINS!"
		if g.score1 > g.score2 {
			msg = "YOU WIN!"
		}
		dst.DrawMessage(msg, fmt.Sprintf("%d - %d  |  Space, R or tap to restart", g.score1, g.score2))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score: g.score1, // Report player's score
		Phase: g.phase,
		Seed:  g.runtime.Seed,
	}
}
