package core

import "time"

// Phase is the coarse state of a game.
type Phase int

const (
	// PhasePlaying is the only phase in which Update mutates entities.
	PhasePlaying Phase = iota
	// PhaseGameOver freezes entities until a restart.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// RuntimeConfig contains configuration passed to games on Reset.
// Games use this to size themselves and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Surface width in units
	ScreenH  int   // Surface height in units
	TickRate int   // Frames per second the host schedules (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Clock is read by games that throttle on wall time. Nil means SystemClock.
	Clock Clock

	// OnSound receives sound cues. Nil means silent.
	OnSound SoundFunc
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Now reads the configured clock.
func (c RuntimeConfig) Now() time.Time {
	if c.Clock == nil {
		return SystemClock{}.Now()
	}
	return c.Clock.Now()
}

// Emit forwards a sound cue when a sink is configured.
func (c RuntimeConfig) Emit(s Sound) {
	if c.OnSound != nil {
		c.OnSound(s)
	}
}

// GameState is the host-visible summary of a game.
type GameState struct {
	Score int
	Phase Phase
	Seed  int64 // seed of the current run
}

// GameOver reports whether the game is frozen waiting for a restart.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseGameOver
}
