package snake

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

func newTestGame(t *testing.T, w, h int, seed int64) (*Game, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(time.Unix(1000, 0))
	g := New(config.Default().Snake)
	g.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, Seed: seed, Clock: clock})
	return g, clock
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs should produce identical snapshots
	g1, c1 := newTestGame(t, 40, 20, 12345)
	g2, c2 := newTestGame(t, 40, 20, 12345)

	for i := 0; i < 100; i++ {
		for _, pair := range []struct {
			g *Game
			c *core.ManualClock
		}{{g1, c1}, {g2, c2}} {
			switch i {
			case 5:
				pair.g.HandleInput(core.KeyEvent(core.KeyDown))
			case 9:
				pair.g.HandleInput(core.KeyEvent(core.KeyLeft))
			}
			pair.g.Update(40, 20)
			pair.c.Advance(pair.g.interval())
		}
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 42)

	// Initial direction is right
	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	g.HandleInput(core.KeyEvent(core.KeyLeft))
	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	g.HandleInput(core.KeyEvent(core.KeyDown))
	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}

	// Reversal is judged against the current direction, not the latched one
	g.HandleInput(core.KeyEvent(core.KeyLeft))
	if g.nextDir == DirLeft {
		t.Error("Up/Left sequence must not reverse within one step")
	}
}

func TestThrottle(t *testing.T) {
	g, clock := newTestGame(t, 80, 24, 7)
	head := g.snake[0]

	g.Update(80, 24) // arms the throttle
	g.Update(80, 24)
	if g.snake[0] != head {
		t.Fatal("snake moved before the interval elapsed")
	}

	clock.Advance(g.interval() - time.Millisecond)
	g.Update(80, 24)
	if g.snake[0] != head {
		t.Fatal("snake moved early")
	}

	clock.Advance(time.Millisecond)
	g.Update(80, 24)
	if g.snake[0] != (Point{X: head.X + 1, Y: head.Y}) {
		t.Errorf("expected one step right, head = %+v", g.snake[0])
	}

	// A long stall still advances only one cell per tick
	clock.Advance(10 * time.Second)
	g.Update(80, 24)
	if g.snake[0].X != head.X+2 {
		t.Errorf("expected exactly one more step, head = %+v", g.snake[0])
	}
}

func TestRateGrowsToCap(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 1)
	cfg := config.Default().Snake

	if g.Rate() != cfg.BaseRate {
		t.Errorf("Rate() = %v, expected base %v", g.Rate(), cfg.BaseRate)
	}
	g.foodEaten = 2
	if g.Rate() != cfg.BaseRate+2*cfg.RatePerFood {
		t.Errorf("Rate() = %v after 2 food", g.Rate())
	}
	g.foodEaten = 10000
	if g.Rate() != cfg.MaxRate {
		t.Errorf("Rate() = %v, expected cap %v", g.Rate(), cfg.MaxRate)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g, _ := newTestGame(t, 30, 12, 999)

	for i := 0; i < 200; i++ {
		if !g.spawnFood() {
			t.Fatal("spawnFood failed on a mostly empty board")
		}
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
		if !g.inGrid(g.food) {
			t.Errorf("Food spawned out of bounds at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestWallCollision(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 789)

	g.snake = []Point{
		{X: 1, Y: 0}, // Head on the top row
		{X: 2, Y: 0},
		{X: 3, Y: 0},
	}
	g.direction = DirUp
	g.nextDir = DirUp

	g.step()

	if g.phase != core.PhaseGameOver {
		t.Error("Game should be over after hitting wall")
	}
}

func TestSelfCollisionIncludesTail(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 111)

	// A closed loop: moving right puts the head on the tail cell
	g.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
	}
	g.food = Point{X: 20, Y: 20}
	g.direction = DirUp
	g.nextDir = DirRight

	g.step()

	if g.phase != core.PhaseGameOver {
		t.Error("Game should be over after running into the tail")
	}
}

func TestSnakeGrowth(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 222)
	initialLen := len(g.snake)
	head := g.snake[0]

	g.food = Point{X: head.X + 1, Y: head.Y}
	g.nextDir = DirRight
	g.step()

	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", len(g.snake), initialLen+1)
	}
	if g.score != config.Default().Snake.FoodScore {
		t.Errorf("Score should be %d after eating food, got %d", config.Default().Snake.FoodScore, g.score)
	}
	if g.isSnakeAt(g.food) {
		t.Error("relocated food landed on the snake")
	}

	// Normal step keeps the length
	g.food = Point{X: 0, Y: 0}
	g.step()
	if len(g.snake) != initialLen+1 {
		t.Errorf("length changed on a normal step: %d", len(g.snake))
	}
}

func TestFullBoardEndsGame(t *testing.T) {
	// 5x3 grid: one HUD row on top of three grid rows
	g, _ := newTestGame(t, 5, 4, 3)
	if g.cols != 5 || g.rows != 3 {
		t.Fatalf("grid = %dx%d, expected 5x3", g.cols, g.rows)
	}

	// Serpentine covering every cell but (4,2), head at (3,2)
	var path []Point
	for x := 0; x < 5; x++ {
		path = append(path, Point{X: x, Y: 0})
	}
	for x := 4; x >= 0; x-- {
		path = append(path, Point{X: x, Y: 1})
	}
	for x := 0; x < 4; x++ {
		path = append(path, Point{X: x, Y: 2})
	}
	g.snake = make([]Point, len(path))
	for i := range path {
		g.snake[i] = path[len(path)-1-i]
	}
	g.food = Point{X: 4, Y: 2}
	g.direction, g.nextDir = DirRight, DirRight

	g.step()

	if g.phase != core.PhaseGameOver {
		t.Error("a full board should end the game")
	}
	if len(g.snake) != 15 {
		t.Errorf("snake should fill the board, len = %d", len(g.snake))
	}
	if g.score != config.Default().Snake.FoodScore {
		t.Errorf("last food should still score, got %d", g.score)
	}
}

func TestHeadStaysInGridAndLengthNeverShrinks(t *testing.T) {
	const w, h = 24, 13
	size := config.Default().Snake.GridSize
	g, clock := newTestGame(t, w, h, 2024)
	rng := rand.New(rand.NewSource(5))
	keys := []string{core.KeyUp, core.KeyDown, core.KeyLeft, core.KeyRight}

	prevLen := len(g.snake)
	for i := 0; i < 2000 && g.phase == core.PhasePlaying; i++ {
		if rng.Intn(4) == 0 {
			g.HandleInput(core.KeyEvent(keys[rng.Intn(len(keys))]))
		}
		clock.Advance(g.interval())
		g.Update(w, h)

		if g.phase != core.PhasePlaying {
			break
		}
		head := g.snake[0]
		if head.X < 0 || head.X >= w/size || head.Y < 0 || head.Y >= h/size {
			t.Fatalf("head %+v out of [0,%d)x[0,%d)", head, w/size, h/size)
		}
		if len(g.snake) < prevLen {
			t.Fatalf("length shrank from %d to %d", prevLen, len(g.snake))
		}
		if g.isSnakeAt(g.food) {
			t.Fatalf("food %+v on the snake", g.food)
		}
		prevLen = len(g.snake)
	}
}

func TestRestart(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 333)
	g.score = 30

	if g.Restart() {
		t.Error("Restart while playing should be a no-op")
	}
	g.HandleInput(core.KeyEvent("r"))
	if g.score != 30 {
		t.Error("restart key while playing must not clear the score")
	}

	g.phase = core.PhaseGameOver
	g.HandleInput(core.KeyEvent(core.KeyUp))
	if g.phase != core.PhaseGameOver {
		t.Error("non-restart input must not leave game over")
	}

	g.HandleInput(core.ClickEvent())
	if g.phase != core.PhasePlaying || g.score != 0 {
		t.Errorf("after restart: phase=%v score=%d", g.phase, g.score)
	}
}

func TestGameOverFreezes(t *testing.T) {
	g, clock := newTestGame(t, 80, 24, 4)
	g.phase = core.PhaseGameOver
	before := g.Snapshot()

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		g.Update(80, 24)
	}
	if g.Snapshot() != before {
		t.Error("Update advanced state while game over")
	}
}

func TestInputBeforeReset(t *testing.T) {
	g := New(config.Default().Snake)
	g.HandleInput(core.KeyEvent(core.KeyUp))
	g.HandleInput(core.EndEvent())
	g.Update(80, 24)
	g.Draw(core.NewScreen(80, 24), 1)

	if g.Restart() {
		t.Error("Restart before Reset should do nothing")
	}
}

func TestResizeReinitializesKeepingScore(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 55)
	g.score = 40

	g.Update(10, 6)
	if g.tooSmall {
		t.Fatal("10x6 should still be playable")
	}
	for _, p := range g.snake {
		if !g.inGrid(p) {
			t.Fatalf("segment %+v outside the resized grid", p)
		}
	}
	if !g.inGrid(g.food) {
		t.Errorf("food %+v outside the resized grid", g.food)
	}
	if g.score != 40 || g.phase != core.PhasePlaying {
		t.Errorf("resize changed score/phase: %d %v", g.score, g.phase)
	}
}

func TestResizeAfterGameOverKeepsBoard(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 56)
	g.phase = core.PhaseGameOver
	head, food := g.snake[0], g.food

	g.Update(10, 6)
	if g.snake[0] != head || g.food != food {
		t.Errorf("board changed under game over: head %+v food %+v", g.snake[0], g.food)
	}
	if g.phase != core.PhaseGameOver {
		t.Fatal("resize left game over")
	}

	g.HandleInput(core.ClickEvent())
	for _, p := range g.snake {
		if !g.inGrid(p) {
			t.Fatalf("restarted segment %+v outside the 10x6 grid", p)
		}
	}
}

func TestZeroSizeIsSkipped(t *testing.T) {
	g, clock := newTestGame(t, 80, 24, 8)
	before := g.Snapshot()

	clock.Advance(time.Second)
	g.Update(0, 0)
	if !g.tooSmall {
		t.Error("zero bounds should mark the game too small")
	}
	if g.Snapshot().HeadX != before.HeadX {
		t.Error("snake moved on a zero-size tick")
	}
}

func TestSwipeTurns(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 9)

	g.HandleInput(core.StartEvent(10, 10))
	g.HandleInput(core.MoveEvent(10, 14))
	g.HandleInput(core.EndEvent())
	if g.nextDir != DirDown {
		t.Errorf("downward swipe latched %v", g.nextDir)
	}

	// A tap is not a swipe
	g.HandleInput(core.StartEvent(10, 10))
	g.HandleInput(core.EndEvent())
	if g.nextDir != DirDown {
		t.Errorf("tap changed direction to %v", g.nextDir)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g, _ := newTestGame(t, 4, 3, 333)

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}

	screen := core.NewScreen(4, 3)
	g.Draw(screen, 1)
	if len(g.snake) != 0 {
		t.Error("no snake should be placed on a too-small surface")
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t, 80, 24, 444)

	screen := core.NewScreen(80, 24)
	g.Draw(screen, 1)

	content := screen.String()
	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	head := g.snake[0]
	if screen.Get(head.X, head.Y+hudHeight) != HeadChar {
		t.Errorf("head not drawn at %+v", head)
	}
	if screen.Get(g.food.X, g.food.Y+hudHeight) != FoodChar {
		t.Errorf("food not drawn at %+v", g.food)
	}

	g.phase = core.PhaseGameOver
	screen.Clear()
	g.Draw(screen, 2)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over message missing")
	}
}
