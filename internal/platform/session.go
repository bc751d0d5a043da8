// Package platform holds what every host shares: one game mounted on one
// loop, the optional touch pad, and score saving when a run ends.
package platform

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/controls"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/engine"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

// RunSaver persists finished runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(r storage.Run) (string, error)
}

// Options configures a Session.
type Options struct {
	Game    registry.Game
	Runtime core.RuntimeConfig

	// Touch mounts the on-screen pad over the game.
	Touch  bool
	Repeat time.Duration

	Store  RunSaver    // nil disables saving
	Logger *log.Logger // nil discards
}

// Session mounts one game on a loop.
type Session struct {
	game    registry.Game
	loop    *engine.Loop
	pad     *controls.Pad
	store   RunSaver
	logger  *log.Logger
	runtime core.RuntimeConfig

	started   bool
	saved     bool
	runStart  uint64
	lastRunID string
}

// NewSession builds the loop for opts.Game. The game is reset on the first
// Resize with a drawable size.
func NewSession(opts Options) (*Session, error) {
	s := &Session{
		game:    opts.Game,
		store:   opts.Store,
		logger:  opts.Logger,
		runtime: opts.Runtime,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	cb := engine.Bind(opts.Game)
	if opts.Touch {
		padOpts := []controls.Option{}
		if opts.Repeat > 0 {
			padOpts = append(padOpts, controls.WithRepeat(opts.Repeat))
		}
		if opts.Runtime.Clock != nil {
			padOpts = append(padOpts, controls.WithClock(opts.Runtime.Clock))
		}
		s.pad = controls.New(func(key string) {
			opts.Game.HandleInput(core.KeyEvent(key))
		}, padOpts...)
		cb = engine.WithOverlay(cb, s.pad)
	}

	loop, err := engine.NewLoop(cb)
	if err != nil {
		return nil, err
	}
	s.loop = loop
	return s, nil
}

// Loop returns the session's frame scheduler.
func (s *Session) Loop() *engine.Loop {
	return s.loop
}

// Game returns the mounted game.
func (s *Session) Game() registry.Game {
	return s.game
}

// Pad returns the touch pad, or nil when touch controls are off.
func (s *Session) Pad() *controls.Pad {
	return s.pad
}

// Screen returns the last drawn frame.
func (s *Session) Screen() *core.Screen {
	return s.loop.Surface().Screen()
}

// Resize matches the surface to the host. The first drawable size resets
// the game with those bounds.
func (s *Session) Resize(width, height int) {
	s.loop.Resize(width, height)
	if s.started || width <= 0 || height <= 0 {
		return
	}
	s.runtime.ScreenW, s.runtime.ScreenH = width, height
	s.game.Reset(s.runtime)
	s.started = true
	s.logger.Debug("game started", "game", s.game.ID(), "width", width, "height", height, "seed", s.runtime.Seed)
}

// Input delivers a normalized event through the overlay to the game.
func (s *Session) Input(ev core.Event) {
	if !s.started {
		return
	}
	s.loop.Interact(ev)
}

// Tick runs one frame and records a finished run once.
func (s *Session) Tick() bool {
	if !s.loop.Tick() {
		return false
	}
	s.observe()
	return true
}

// observe saves the score on the transition to game over and rearms after
// a restart.
func (s *Session) observe() {
	st := s.game.State()
	if !st.GameOver() {
		if s.saved {
			s.saved = false
			s.runStart = s.loop.Frame() - 1
			s.logger.Debug("game restarted", "game", s.game.ID())
		}
		return
	}
	if s.saved {
		return
	}
	s.saved = true
	s.save(st)
}

func (s *Session) save(st core.GameState) {
	frames := s.loop.Frame() - s.runStart
	s.logger.Info("game over", "game", s.game.ID(), "score", st.Score, "frames", frames, "seed", st.Seed)
	if s.store == nil || st.Score <= 0 {
		return
	}

	id, err := s.store.SaveRun(storage.Run{
		GameID: s.game.ID(),
		Score:  st.Score,
		Frames: frames,
		Seed:   st.Seed,
	})
	if err != nil {
		s.logger.Warn("cannot save run", "game", s.game.ID(), "err", err)
		return
	}
	s.lastRunID = id
	s.logger.Info("run saved", "game", s.game.ID(), "run", id, "score", st.Score)
}

// State returns the mounted game's state.
func (s *Session) State() core.GameState {
	return s.game.State()
}

// LastRunID returns the id of the most recently saved run.
func (s *Session) LastRunID() string {
	return s.lastRunID
}

// Stop halts the loop; no callback runs afterwards.
func (s *Session) Stop() {
	s.loop.Stop()
}
