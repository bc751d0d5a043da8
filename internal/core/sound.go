package core

// Sound is a short audio cue raised by game logic.
// Games only name the event; the host decides how (or whether) to synthesize it.
type Sound int

const (
	SoundNone Sound = iota
	SoundEat
	SoundBounce
	SoundHit
	SoundScore
	SoundShoot
	SoundPlace
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundEat:
		return "eat"
	case SoundBounce:
		return "bounce"
	case SoundHit:
		return "hit"
	case SoundScore:
		return "score"
	case SoundShoot:
		return "shoot"
	case SoundPlace:
		return "place"
	case SoundGameOver:
		return "game-over"
	default:
		return "none"
	}
}

// SoundFunc is the synthesis callback a host installs in RuntimeConfig.
type SoundFunc func(Sound)
