package snake

import "github.com/vovakirdan/pocket-arcade/internal/core"

// Snapshot captures the observable game state for determinism checks.
type Snapshot struct {
	Score     int
	FoodEaten int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	Cols      int
	Rows      int
	GameOver  bool
	TooSmall  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Score:     g.score,
		FoodEaten: g.foodEaten,
		SnakeLen:  len(g.snake),
		HeadX:     headX,
		HeadY:     headY,
		Dir:       g.direction,
		FoodX:     g.food.X,
		FoodY:     g.food.Y,
		Cols:      g.cols,
		Rows:      g.rows,
		GameOver:  g.phase == core.PhaseGameOver,
		TooSmall:  g.tooSmall,
	}
}
