package core

import "math"

// RawKind identifies a host-level input signal before normalization.
type RawKind int

const (
	RawPointerDown RawKind = iota
	RawPointerMove
	RawPointerUp
	RawPointerLeave
	RawTouchStart
	RawTouchMove
	RawTouchEnd
	RawKeyPress
)

// Raw is a host input signal. Positions are page-relative; HasPos is false
// for signals that carry no coordinate (a lifted finger).
type Raw struct {
	Kind   RawKind
	ID     int // pointer or touch identifier
	X, Y   float64
	HasPos bool
	Key    string
}

// DefaultClickSlop is how far a press may travel and still count as a click.
const DefaultClickSlop = 1.5

// Normalizer turns raw pointer, touch and key signals into the five event
// kinds. Only the primary pointer (first touch) is tracked.
type Normalizer struct {
	// OriginX, OriginY is the container's page position; events are
	// reported relative to it.
	OriginX, OriginY float64

	// ClickSlop is the travel distance above which a press stops being a click.
	ClickSlop float64

	active  bool
	primary int
	startX  float64
	startY  float64
	moved   bool
}

// NewNormalizer creates a normalizer with the default click slop.
func NewNormalizer() *Normalizer {
	return &Normalizer{ClickSlop: DefaultClickSlop}
}

// Active reports whether a press is being tracked.
func (n *Normalizer) Active() bool {
	return n.active
}

// Feed converts one raw signal into zero or more events.
func (n *Normalizer) Feed(raw Raw) []Event {
	switch raw.Kind {
	case RawKeyPress:
		if raw.Key == "" {
			return nil
		}
		return []Event{KeyEvent(raw.Key)}

	case RawPointerDown, RawTouchStart:
		var out []Event
		if n.active {
			if raw.ID != n.primary {
				return nil // multi-touch is not modeled
			}
			// The primary's release was lost; close that press first
			out = append(out, EndEvent())
		}
		x, y := n.local(raw)
		n.active = true
		n.primary = raw.ID
		n.startX, n.startY = x, y
		n.moved = false
		return append(out, StartEvent(x, y))

	case RawPointerMove, RawTouchMove:
		if !n.active || raw.ID != n.primary || !raw.HasPos {
			return nil
		}
		x, y := n.local(raw)
		if math.Hypot(x-n.startX, y-n.startY) > n.ClickSlop {
			n.moved = true
		}
		return []Event{MoveEvent(x, y)}

	case RawPointerUp, RawTouchEnd, RawPointerLeave:
		if !n.active || raw.ID != n.primary {
			return nil
		}
		n.active = false
		if n.moved || raw.Kind == RawPointerLeave {
			return []Event{EndEvent()}
		}
		return []Event{EndEvent(), ClickEvent()}
	}
	return nil
}

// Reset drops any tracked press, e.g. when the host loses focus.
func (n *Normalizer) Reset() {
	n.active = false
	n.moved = false
}

func (n *Normalizer) local(raw Raw) (float64, float64) {
	return raw.X - n.OriginX, raw.Y - n.OriginY
}
