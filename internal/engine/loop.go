package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// ErrNoDraw is returned by NewLoop when the draw callback is missing.
var ErrNoDraw = errors.New("engine: draw callback is required")

// UpdateFunc advances simulation for the current surface bounds.
type UpdateFunc func(width, height int)

// DrawFunc paints one frame. frame starts at 1 and increments once per tick.
type DrawFunc func(dst *core.Screen, frame uint64, width, height int)

// InteractFunc receives a normalized input event.
type InteractFunc func(ev core.Event)

// Callbacks are the hooks a Loop invokes. Draw is mandatory.
type Callbacks struct {
	Update     UpdateFunc
	Draw       DrawFunc
	OnInteract InteractFunc
}

// message is a request posted from another goroutine to the Run goroutine.
type message struct {
	ev     core.Event
	resize bool
	w, h   int
}

// Loop is a cancellable frame scheduler bound to one surface.
//
// Tick, Resize and Interact are meant to be called from a single host
// goroutine (a bubbletea update or an ebiten Update). Hosts that deliver
// input from other goroutines use Run together with Post and PostResize.
type Loop struct {
	cb      Callbacks
	surface *Surface
	frame   atomic.Uint64

	msgs     chan message
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	stopped  bool
	running  bool
}

// NewLoop creates a loop with a zero-size surface. Until the host calls
// Resize with a non-zero size, ticks are skipped.
func NewLoop(cb Callbacks) (*Loop, error) {
	if cb.Draw == nil {
		return nil, ErrNoDraw
	}
	return &Loop{
		cb:      cb,
		surface: NewSurface(0, 0),
		msgs:    make(chan message, 64),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Surface returns the loop's drawing surface.
func (l *Loop) Surface() *Surface {
	return l.surface
}

// Frame returns the number of ticks that have run. Safe for concurrent use.
func (l *Loop) Frame() uint64 {
	return l.frame.Load()
}

// Resize matches the surface to the container. It never fails; the next
// tick observes the new bounds.
func (l *Loop) Resize(width, height int) {
	if l.Stopped() {
		return
	}
	l.surface.Resize(width, height)
}

// Tick runs one update and draw. It returns false without advancing the
// frame counter when the loop is stopped or the surface has no area.
func (l *Loop) Tick() bool {
	if l.Stopped() || !l.surface.Ready() {
		return false
	}

	frame := l.frame.Add(1)
	w, h := l.surface.Size()
	if l.cb.Update != nil {
		l.cb.Update(w, h)
	}

	screen := l.surface.Screen()
	screen.Clear()
	l.cb.Draw(screen, frame, w, h)
	return true
}

// Interact forwards one event to the interact callback.
func (l *Loop) Interact(ev core.Event) {
	if l.Stopped() || l.cb.OnInteract == nil {
		return
	}
	l.cb.OnInteract(ev)
}

// Post queues an event for the Run goroutine. Safe for concurrent use.
// Events posted while the queue is full are dropped.
func (l *Loop) Post(ev core.Event) {
	l.post(message{ev: ev})
}

// PostResize queues a resize for the Run goroutine. Safe for concurrent use.
func (l *Loop) PostResize(width, height int) {
	l.post(message{resize: true, w: width, h: height})
}

func (l *Loop) post(m message) {
	select {
	case <-l.stopCh:
	case l.msgs <- m:
	default:
	}
}

// Run drives the loop at fps ticks per second until ctx is done or Stop is
// called. Posted messages are applied on this goroutine between ticks.
func (l *Loop) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}

	l.mu.Lock()
	if l.stopped || l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()
	defer close(l.done)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.markStopped()
			return ctx.Err()
		case <-l.stopCh:
			return nil
		case m := <-l.msgs:
			if m.resize {
				l.Resize(m.w, m.h)
			} else {
				l.Interact(m.ev)
			}
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Stop cancels the loop. It is idempotent and, when Run is active, waits
// for it to return so no callback runs after Stop.
func (l *Loop) Stop() {
	l.markStopped()

	l.mu.Lock()
	running := l.running
	l.mu.Unlock()
	if running {
		<-l.done
	}
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

func (l *Loop) markStopped() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
		close(l.stopCh)
	})
}
