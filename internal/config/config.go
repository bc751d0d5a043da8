// Package config provides YAML-based tuning for the arcade games and the
// touch controls.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full arcade configuration, one section per game.
type Config struct {
	Snake    SnakeConfig    `yaml:"snake"`
	Pong     PongConfig     `yaml:"pong"`
	Invaders InvadersConfig `yaml:"invaders"`
	Stacker  StackerConfig  `yaml:"stacker"`
	Controls ControlsConfig `yaml:"controls"`
}

// SnakeConfig tunes the grid snake.
type SnakeConfig struct {
	GridSize    int     `yaml:"grid_size"`     // Surface units per grid cell
	BaseRate    float64 `yaml:"base_rate"`     // Logic steps per second at score 0
	RatePerFood float64 `yaml:"rate_per_food"` // Added per food eaten
	MaxRate     float64 `yaml:"max_rate"`
	FoodScore   int     `yaml:"food_score"`
	StartLength int     `yaml:"start_length"`
	SwipeMin    float64 `yaml:"swipe_min"` // Minimum drag distance for a swipe turn
}

// PongConfig tunes the paddle game.
type PongConfig struct {
	PaddleHeight float64 `yaml:"paddle_height"`
	PaddleOffset float64 `yaml:"paddle_offset"` // Distance of paddle planes from the side walls
	BallSpeed    float64 `yaml:"ball_speed"`    // Per-axis serve speed in units per tick
	SpeedUp      float64 `yaml:"speed_up"`      // Velocity multiplier per paddle hit, > 1
	CPUSpeed     float64 `yaml:"cpu_speed"`     // Max CPU paddle travel per tick
	CPUGain      float64 `yaml:"cpu_gain"`      // Proportional gain toward the ball
	KeyStep      float64 `yaml:"key_step"`      // Paddle nudge per key press
	GrabSlop     float64 `yaml:"grab_slop"`     // Extra hit region around the paddle for drags
	WinScore     int     `yaml:"win_score"`     // 0 plays forever
}

// InvadersConfig tunes the formation shooter.
type InvadersConfig struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	EnemyW       float64 `yaml:"enemy_w"`
	EnemyH       float64 `yaml:"enemy_h"`
	GapX         float64 `yaml:"gap_x"`
	GapY         float64 `yaml:"gap_y"`
	StepX        float64 `yaml:"step_x"`
	MoveEvery    int     `yaml:"move_every"` // Ticks between formation steps
	BulletSpeed  float64 `yaml:"bullet_speed"`
	FireCooldown int     `yaml:"fire_cooldown"` // Minimum ticks between shots
	KillScore    int     `yaml:"kill_score"`
	ShipW        float64 `yaml:"ship_w"`
	ShipStep     float64 `yaml:"ship_step"`
	Stars        int     `yaml:"stars"`
}

// StackerConfig tunes the block stacker.
type StackerConfig struct {
	BaseWidth  float64 `yaml:"base_width"` // 0 derives it from BaseRatio
	BaseRatio  float64 `yaml:"base_ratio"` // Fraction of the field width
	BlockH     float64 `yaml:"block_h"`
	StartSpeed float64 `yaml:"start_speed"` // Units per tick
	SpeedGain  float64 `yaml:"speed_gain"`  // Added per placed layer
	CameraLerp float64 `yaml:"camera_lerp"` // Fraction of the remaining camera offset covered per tick
}

// ControlsConfig tunes the on-screen touch pad.
type ControlsConfig struct {
	Repeat time.Duration `yaml:"repeat"`
}

// Validate reports every out-of-range value, joined.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field string, v any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalid, field, v))
		}
	}

	s := c.Snake
	check(s.GridSize >= 1, "snake.grid_size", s.GridSize)
	check(s.BaseRate > 0, "snake.base_rate", s.BaseRate)
	check(s.RatePerFood >= 0, "snake.rate_per_food", s.RatePerFood)
	check(s.MaxRate >= s.BaseRate, "snake.max_rate", s.MaxRate)
	check(s.FoodScore >= 0, "snake.food_score", s.FoodScore)
	check(s.StartLength >= 1, "snake.start_length", s.StartLength)
	check(s.SwipeMin >= 0, "snake.swipe_min", s.SwipeMin)

	p := c.Pong
	check(p.PaddleHeight > 0, "pong.paddle_height", p.PaddleHeight)
	check(p.PaddleOffset >= 0, "pong.paddle_offset", p.PaddleOffset)
	check(p.BallSpeed > 0, "pong.ball_speed", p.BallSpeed)
	check(p.SpeedUp > 1, "pong.speed_up", p.SpeedUp)
	check(p.CPUSpeed > 0, "pong.cpu_speed", p.CPUSpeed)
	check(p.CPUGain > 0, "pong.cpu_gain", p.CPUGain)
	check(p.KeyStep > 0, "pong.key_step", p.KeyStep)
	check(p.GrabSlop >= 0, "pong.grab_slop", p.GrabSlop)
	check(p.WinScore >= 0, "pong.win_score", p.WinScore)

	i := c.Invaders
	check(i.Rows >= 1, "invaders.rows", i.Rows)
	check(i.Cols >= 1, "invaders.cols", i.Cols)
	check(i.EnemyW > 0, "invaders.enemy_w", i.EnemyW)
	check(i.EnemyH > 0, "invaders.enemy_h", i.EnemyH)
	check(i.GapX >= 0, "invaders.gap_x", i.GapX)
	check(i.GapY >= 0, "invaders.gap_y", i.GapY)
	check(i.StepX > 0, "invaders.step_x", i.StepX)
	check(i.MoveEvery >= 1, "invaders.move_every", i.MoveEvery)
	check(i.BulletSpeed > 0, "invaders.bullet_speed", i.BulletSpeed)
	check(i.FireCooldown >= 0, "invaders.fire_cooldown", i.FireCooldown)
	check(i.KillScore >= 0, "invaders.kill_score", i.KillScore)
	check(i.ShipW > 0, "invaders.ship_w", i.ShipW)
	check(i.ShipStep > 0, "invaders.ship_step", i.ShipStep)
	check(i.Stars >= 0, "invaders.stars", i.Stars)

	st := c.Stacker
	check(st.BaseWidth >= 0, "stacker.base_width", st.BaseWidth)
	check(st.BaseWidth > 0 || (st.BaseRatio > 0 && st.BaseRatio <= 1), "stacker.base_ratio", st.BaseRatio)
	check(st.BlockH > 0, "stacker.block_h", st.BlockH)
	check(st.StartSpeed > 0, "stacker.start_speed", st.StartSpeed)
	check(st.SpeedGain >= 0, "stacker.speed_gain", st.SpeedGain)
	check(st.CameraLerp > 0 && st.CameraLerp <= 1, "stacker.camera_lerp", st.CameraLerp)

	check(c.Controls.Repeat > 0, "controls.repeat", c.Controls.Repeat)

	return errors.Join(errs...)
}
