package pong

import "github.com/vovakirdan/pocket-arcade/internal/core"

// Snapshot contains the observable state of a Pong game.
type Snapshot struct {
	Tick     uint64
	BallX    float64
	BallY    float64
	BallVX   float64
	BallVY   float64
	Paddle1Y float64
	Paddle2Y float64
	Score1   int
	Score2   int
	Dragging bool
	GameOver bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		BallX:    g.ball.x,
		BallY:    g.ball.y,
		BallVX:   g.ball.vx,
		BallVY:   g.ball.vy,
		Paddle1Y: g.paddle1Y,
		Paddle2Y: g.paddle2Y,
		Score1:   g.score1,
		Score2:   g.score2,
		Dragging: g.drag.active,
		GameOver: g.phase == core.PhaseGameOver,
	}
}
