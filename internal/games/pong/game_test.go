package pong

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

const eps = 1e-9

func newTestGame(t *testing.T, w, h int, mutate func(*config.PongConfig)) *Game {
	t.Helper()
	cfg := config.Default().Pong
	if mutate != nil {
		mutate(&cfg)
	}
	g := New(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, Seed: 42})
	return g
}

func TestServeIsDiagonal(t *testing.T) {
	g := newTestGame(t, 80, 24, nil)
	s := config.Default().Pong.BallSpeed

	for i := 0; i < 50; i++ {
		g.serve()
		if math.Abs(g.ball.vx) != s || math.Abs(g.ball.vy) != s {
			t.Fatalf("serve velocity (%v, %v) is not a %v diagonal", g.ball.vx, g.ball.vy, s)
		}
		if g.ball.x != 40 || g.ball.y != 12 {
			t.Fatalf("serve position (%v, %v) is not center", g.ball.x, g.ball.y)
		}
	}
}

func TestWallReflectAndExitScenario(t *testing.T) {
	g := newTestGame(t, 200, 100, func(c *config.PongConfig) { c.BallSpeed = 4 })

	// Ball heading into the bottom wall
	g.ball = ball{x: 100, y: 97, vx: 4, vy: 4}
	g.moveBall()
	if g.ball.vx != 4 || g.ball.vy != -4 {
		t.Fatalf("after wall reflect velocity = (%v, %v), expected (4, -4)", g.ball.vx, g.ball.vy)
	}

	// And the top wall
	g.ball = ball{x: 100, y: 2, vx: 4, vy: -4}
	g.moveBall()
	if g.ball.vy != 4 || g.ball.y < 0 {
		t.Fatalf("top wall: y=%v vy=%v", g.ball.y, g.ball.vy)
	}

	// CPU paddle nowhere near: the ball leaves on the right
	g.paddle2Y = 0
	g.ball = ball{x: 198, y: 80, vx: 4, vy: -4}
	g.moveBall()

	if g.score1 != 1 || g.score2 != 0 {
		t.Fatalf("score = %d-%d, expected 1-0", g.score1, g.score2)
	}
	if g.ball.x != 100 || g.ball.y != 50 {
		t.Errorf("ball not re-served at center: (%v, %v)", g.ball.x, g.ball.y)
	}
	if math.Abs(g.ball.vx) != 4 || math.Abs(g.ball.vy) != 4 {
		t.Errorf("re-serve velocity (%v, %v) is not diagonal", g.ball.vx, g.ball.vy)
	}
}

func TestLeftExitScoresCPU(t *testing.T) {
	g := newTestGame(t, 80, 24, nil)
	g.paddle1Y = 0
	g.ball = ball{x: 0.3, y: 20, vx: -0.5, vy: 0.5}

	g.moveBall()

	if g.score2 != 1 || g.score1 != 0 {
		t.Errorf("score = %d-%d, expected 0-1", g.score1, g.score2)
	}
}

func TestPaddleHitsCompoundSpeed(t *testing.T) {
	g := newTestGame(t, 200, 100, nil)
	s := config.Default().Pong.SpeedUp

	g.ball = ball{vx: -1, vy: 0.5}
	initial := g.ball.Speed()

	for n := 1; n <= 6; n++ {
		before := g.ball.Speed()
		if g.ball.vx < 0 {
			plane := g.leftPlane()
			g.ball.x = plane - g.ball.vx/2 // half a step right of the plane
			g.ball.y = 50
			g.paddle1Y = 50 - g.cfg.PaddleHeight/2
		} else {
			plane := g.rightPlane()
			g.ball.x = plane - g.ball.vx/2
			g.ball.y = 50
			g.paddle2Y = 50 - g.cfg.PaddleHeight/2
		}
		wasLeft := g.ball.vx < 0

		g.moveBall()

		if wasLeft && (g.ball.vx <= 0 || g.ball.x != g.leftPlane()) {
			t.Fatalf("hit %d: left paddle did not reflect (x=%v vx=%v)", n, g.ball.x, g.ball.vx)
		}
		if !wasLeft && (g.ball.vx >= 0 || g.ball.x != g.rightPlane()) {
			t.Fatalf("hit %d: right paddle did not reflect (x=%v vx=%v)", n, g.ball.x, g.ball.vx)
		}
		if g.ball.Speed() <= before {
			t.Fatalf("hit %d: speed did not increase", n)
		}
		want := initial * math.Pow(s, float64(n))
		if math.Abs(g.ball.Speed()-want) > eps {
			t.Fatalf("hit %d: speed = %v, expected %v", n, g.ball.Speed(), want)
		}
	}
	if g.score1+g.score2 != 0 {
		t.Error("paddle hits must not score")
	}
}

func TestMissedPaddlePassesThrough(t *testing.T) {
	g := newTestGame(t, 80, 24, nil)
	g.paddle1Y = 0
	g.ball = ball{x: g.leftPlane() + 0.25, y: 20, vx: -0.5, vy: 0}

	g.moveBall()
	if g.ball.vx >= 0 {
		t.Error("ball outside the paddle extent should not reflect")
	}
}

func TestScoreSumIncrementsByOne(t *testing.T) {
	const w, h = 60, 20
	g := newTestGame(t, w, h, nil)
	rng := rand.New(rand.NewSource(3))

	exits := 0
	for i := 0; i < 20000; i++ {
		switch rng.Intn(6) {
		case 0:
			g.HandleInput(core.KeyEvent(core.KeyUp))
		case 1:
			g.HandleInput(core.KeyEvent(core.KeyDown))
		}

		before := g.score1 + g.score2
		g.Update(w, h)
		delta := g.score1 + g.score2 - before
		if delta < 0 || delta > 1 {
			t.Fatalf("tick %d: score sum changed by %d", i, delta)
		}
		exits += delta

		if g.ball.x < 0 || g.ball.x > w || g.ball.y < 0 || g.ball.y > h {
			t.Fatalf("tick %d: ball (%v, %v) outside the field", i, g.ball.x, g.ball.y)
		}
	}
	if exits == 0 {
		t.Error("expected at least one point in a long rally simulation")
	}
}

func TestCPUMovesBoundedStep(t *testing.T) {
	g := newTestGame(t, 80, 100, nil)
	cfg := config.Default().Pong

	g.paddle2Y = 0
	g.ball.y = 90
	g.updateCPU()
	if math.Abs(g.paddle2Y-cfg.CPUSpeed) > eps {
		t.Errorf("far ball: CPU moved %v, expected the cap %v", g.paddle2Y, cfg.CPUSpeed)
	}

	// Close to the ball the step is proportional
	g.paddle2Y = 40
	g.ball.y = 40 + cfg.PaddleHeight/2 + 1
	g.updateCPU()
	if math.Abs(g.paddle2Y-(40+cfg.CPUGain)) > eps {
		t.Errorf("near ball: paddle at %v, expected %v", g.paddle2Y, 40+cfg.CPUGain)
	}
}

func TestDragCapture(t *testing.T) {
	g := newTestGame(t, 80, 24, nil)
	top := g.paddle1Y

	g.HandleInput(core.StartEvent(40, 12))
	if g.drag.active {
		t.Fatal("start far from the paddle must not capture it")
	}

	g.HandleInput(core.StartEvent(2.5, top+1.5))
	if !g.drag.active || g.drag.grabOffsetY != 1.5 {
		t.Fatalf("drag = %+v, expected capture with offset 1.5", g.drag)
	}

	g.HandleInput(core.MoveEvent(2.5, 6.5))
	if g.paddle1Y != 5 {
		t.Errorf("paddle1Y = %v, expected 5", g.paddle1Y)
	}

	g.HandleInput(core.MoveEvent(2.5, -50))
	if g.paddle1Y != 0 {
		t.Errorf("paddle should clamp at the top, got %v", g.paddle1Y)
	}

	g.HandleInput(core.EndEvent())
	g.HandleInput(core.MoveEvent(2.5, 15))
	if g.drag.active || g.paddle1Y != 0 {
		t.Error("moves after end must not drag the paddle")
	}
}

func TestKeyNudge(t *testing.T) {
	g := newTestGame(t, 80, 24, nil)
	top := g.paddle1Y
	step := config.Default().Pong.KeyStep

	g.HandleInput(core.KeyEvent(core.KeyUp))
	if g.paddle1Y != top-step {
		t.Errorf("paddle1Y = %v, expected %v", g.paddle1Y, top-step)
	}
	g.HandleInput(core.KeyEvent(core.KeyDown))
	g.HandleInput(core.KeyEvent(core.KeyDown))
	if g.paddle1Y != top+step {
		t.Errorf("paddle1Y = %v, expected %v", g.paddle1Y, top+step)
	}
}

func TestWinScoreAndRestart(t *testing.T) {
	g := newTestGame(t, 80, 24, func(c *config.PongConfig) { c.WinScore = 1 })

	if g.Restart() {
		t.Error("Restart while playing should be a no-op")
	}

	g.paddle1Y = 0
	g.ball = ball{x: 0.2, y: 20, vx: -0.5, vy: 0.5}
	g.Update(80, 24)

	if g.phase != core.PhaseGameOver {
		t.Fatal("reaching the win score should end the game")
	}

	frozen := g.Snapshot()
	g.Update(80, 24)
	g.HandleInput(core.KeyEvent(core.KeyUp))
	if g.Snapshot() != frozen {
		t.Error("game over must freeze ball and paddles")
	}

	g.HandleInput(core.KeyEvent(core.KeyEnter))
	if g.phase != core.PhasePlaying || g.score1 != 0 || g.score2 != 0 {
		t.Errorf("after restart: phase=%v score=%d-%d", g.phase, g.score1, g.score2)
	}
}

func TestResizeKeepsEntitiesInBounds(t *testing.T) {
	g := newTestGame(t, 80, 24, nil)
	g.paddle1Y, g.paddle2Y = 19, 19
	g.ball = ball{x: 70, y: 22, vx: 0.5, vy: 0.5}

	g.resize(40, 12)

	maxTop := 12 - config.Default().Pong.PaddleHeight
	if g.paddle1Y > maxTop || g.paddle2Y > maxTop {
		t.Errorf("paddles not clamped: %v %v", g.paddle1Y, g.paddle2Y)
	}
	if g.ball.x < 0 || g.ball.x > 40 || g.ball.y < 0 || g.ball.y > 11 {
		t.Errorf("ball (%v, %v) outside 40x12", g.ball.x, g.ball.y)
	}
}

func TestZeroSizeResetServesOnFirstBounds(t *testing.T) {
	g := newTestGame(t, 0, 0, nil)

	g.Update(0, 0)
	if g.tick != 0 {
		t.Error("zero-size update should be skipped")
	}

	g.Update(80, 24)
	if g.tick != 1 {
		t.Fatalf("tick = %d, expected 1", g.tick)
	}
	if math.Abs(g.ball.x-40) > 1 || math.Abs(g.ball.y-12) > 1 {
		t.Errorf("ball should start near center, got (%v, %v)", g.ball.x, g.ball.y)
	}
}

func TestInputBeforeReset(t *testing.T) {
	g := New(config.Default().Pong)
	g.HandleInput(core.StartEvent(1, 1))
	g.HandleInput(core.EndEvent())
	g.Update(80, 24)
	g.Draw(core.NewScreen(10, 10), 1)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 80, 24, nil)
	screen := core.NewScreen(80, 24)
	g.Draw(screen, 1)

	content := screen.String()
	if !strings.Contains(content, "CPU") || !strings.Contains(content, "P1") {
		t.Error("labels missing")
	}
	if screen.Get(int(g.ball.x), int(g.ball.y)) != BallChar {
		t.Error("ball not drawn")
	}
	if screen.Get(int(g.cfg.PaddleOffset), int(math.Round(g.paddle1Y))) != PaddleChar {
		t.Error("player paddle not drawn")
	}
}
