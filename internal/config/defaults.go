package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arcade.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration. It matches defaults/arcade.yaml
// and is the base that every loaded file is decoded onto.
func Default() Config {
	return Config{
		Snake: SnakeConfig{
			GridSize:    1,
			BaseRate:    8,
			RatePerFood: 0.5,
			MaxRate:     20,
			FoodScore:   10,
			StartLength: 3,
			SwipeMin:    2,
		},
		Pong: PongConfig{
			PaddleHeight: 5,
			PaddleOffset: 2,
			BallSpeed:    0.5,
			SpeedUp:      1.05,
			CPUSpeed:     0.35,
			CPUGain:      0.15,
			KeyStep:      1.5,
			GrabSlop:     1,
			WinScore:     0,
		},
		Invaders: InvadersConfig{
			Rows:         4,
			Cols:         8,
			EnemyW:       3,
			EnemyH:       1,
			GapX:         2,
			GapY:         1,
			StepX:        1,
			MoveEvery:    20,
			BulletSpeed:  0.6,
			FireCooldown: 12,
			KillScore:    10,
			ShipW:        5,
			ShipStep:     2,
			Stars:        40,
		},
		Stacker: StackerConfig{
			BaseWidth:  0,
			BaseRatio:  0.5,
			BlockH:     1,
			StartSpeed: 0.4,
			SpeedGain:  0.03,
			CameraLerp: 0.1,
		},
		Controls: ControlsConfig{
			Repeat: 100 * time.Millisecond,
		},
	}
}
