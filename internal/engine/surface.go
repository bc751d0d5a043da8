// Package engine provides the frame scheduler and drawing surface that every
// game runs on. A Loop owns a resizable Surface and, on each tick, calls an
// optional update callback followed by a mandatory draw callback.
package engine

import "github.com/vovakirdan/pocket-arcade/internal/core"

// Surface is a resizable cell buffer sized to match its host container.
type Surface struct {
	screen *core.Screen
}

// NewSurface creates a surface with the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{screen: core.NewScreen(width, height)}
}

// Resize matches the surface to the container. Negative sizes clamp to zero.
func (s *Surface) Resize(width, height int) {
	s.screen.Resize(width, height)
}

// Ready reports whether the surface has a drawable area.
func (s *Surface) Ready() bool {
	return s.screen.Width() > 0 && s.screen.Height() > 0
}

// Size returns the current dimensions.
func (s *Surface) Size() (int, int) {
	return s.screen.Width(), s.screen.Height()
}

// Screen returns the backing buffer.
func (s *Surface) Screen() *core.Screen {
	return s.screen
}
