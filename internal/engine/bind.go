package engine

import "github.com/vovakirdan/pocket-arcade/internal/core"

// Game is the minimal capability the scheduler needs from a game.
type Game interface {
	Update(width, height int)
	Draw(dst *core.Screen, frame uint64)
	HandleInput(ev core.Event)
}

// Bind adapts a Game to loop callbacks.
func Bind(g Game) Callbacks {
	return Callbacks{
		Update: g.Update,
		Draw: func(dst *core.Screen, frame uint64, _, _ int) {
			g.Draw(dst, frame)
		},
		OnInteract: g.HandleInput,
	}
}

// Overlay is drawn on top of a game and sees input before it.
type Overlay interface {
	// Update runs after the game's update with the same bounds.
	Update(width, height int)
	// Draw paints over the game's frame.
	Draw(dst *core.Screen, width, height int)
	// Intercept returns true when the event was consumed.
	Intercept(ev core.Event) bool
}

// WithOverlay layers o over cb.
func WithOverlay(cb Callbacks, o Overlay) Callbacks {
	return Callbacks{
		Update: func(w, h int) {
			if cb.Update != nil {
				cb.Update(w, h)
			}
			o.Update(w, h)
		},
		Draw: func(dst *core.Screen, frame uint64, w, h int) {
			cb.Draw(dst, frame, w, h)
			o.Draw(dst, w, h)
		},
		OnInteract: func(ev core.Event) {
			if o.Intercept(ev) {
				return
			}
			if cb.OnInteract != nil {
				cb.OnInteract(ev)
			}
		},
	}
}
