package core

import "fmt"

// EventKind is one of the five normalized interaction kinds.
// Mouse, touch and keyboard input all reduce to these.
type EventKind int

const (
	EventStart   EventKind = iota // pointer down / touch start, has X, Y
	EventMove                     // drag between start and end, has X, Y
	EventEnd                      // pointer up / touch end / leave, no position
	EventClick                    // simple tap or click
	EventKeyDown                  // key press, has Key
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	case EventClick:
		return "click"
	case EventKeyDown:
		return "keydown"
	default:
		return "unknown"
	}
}

// Key vocabulary shared by keyboards and the on-screen touch controls.
const (
	KeyUp     = "ArrowUp"
	KeyDown   = "ArrowDown"
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeySpace  = " "
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Event is a normalized input event in surface-local coordinates.
type Event struct {
	Kind EventKind
	X, Y float64 // valid for EventStart and EventMove
	Key  string  // valid for EventKeyDown
}

// StartEvent builds a start event at (x, y).
func StartEvent(x, y float64) Event {
	return Event{Kind: EventStart, X: x, Y: y}
}

// MoveEvent builds a move event at (x, y).
func MoveEvent(x, y float64) Event {
	return Event{Kind: EventMove, X: x, Y: y}
}

// EndEvent builds an end event. It carries no position.
func EndEvent() Event {
	return Event{Kind: EventEnd}
}

// ClickEvent builds a click event.
func ClickEvent() Event {
	return Event{Kind: EventClick}
}

// KeyEvent builds a keydown event for key.
func KeyEvent(key string) Event {
	return Event{Kind: EventKeyDown, Key: key}
}

// IsKey reports whether the event is a keydown of one of keys.
func (e Event) IsKey(keys ...string) bool {
	if e.Kind != EventKeyDown {
		return false
	}
	for _, k := range keys {
		if e.Key == k {
			return true
		}
	}
	return false
}

func (e Event) String() string {
	switch e.Kind {
	case EventStart, EventMove:
		return fmt.Sprintf("%s{%.1f,%.1f}", e.Kind, e.X, e.Y)
	case EventKeyDown:
		return fmt.Sprintf("keydown{%q}", e.Key)
	default:
		return e.Kind.String() + "{}"
	}
}

// IsRestart reports whether an event is one of the restart triggers games
// accept while over: space, enter, "r" or a click/tap.
func IsRestart(ev Event) bool {
	return ev.Kind == EventClick || ev.IsKey(KeySpace, KeyEnter, "r", "R")
}
