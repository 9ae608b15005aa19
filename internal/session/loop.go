package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrStopped is returned by Barrier once the loop has stopped.
var ErrStopped = errors.New("session loop stopped")

// barrier is a loop-internal marker; it never reaches the controller.
type barrier struct {
	done chan struct{}
}

func (barrier) isEvent() {}

// Loop feeds events to a Controller from a single goroutine.
type Loop struct {
	ctrl   *Controller
	done   chan struct{}
	logger *slog.Logger

	// queue is an unbounded FIFO; wake is signalled when it becomes non-empty.
	mu    sync.Mutex
	queue []Event
	wake  chan struct{}

	closeOnce sync.Once
}

// NewLoop creates a loop for ctrl and routes the controller's follow-up events
// through it.
func NewLoop(ctrl *Controller, logger *slog.Logger) *Loop {
	l := &Loop{
		ctrl:   ctrl,
		done:   make(chan struct{}),
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
	ctrl.post = l.Post
	return l
}

// Post queues ev. It is safe to call from any goroutine, including from inside
// Dispatch, and never blocks. Events are dispatched in posting order. Events posted
// after the loop has stopped are dropped.
func (l *Loop) Post(ev Event) {
	select {
	case <-l.done:
		return
	default:
	}

	l.mu.Lock()
	l.queue = append(l.queue, ev)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest queued event.
func (l *Loop) next() (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	ev := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return ev, true
}

// Barrier waits until every event posted before it has been dispatched.
func (l *Loop) Barrier(ctx context.Context) error {
	b := barrier{done: make(chan struct{})}
	l.Post(b)
	select {
	case <-b.done:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run dispatches events until Quit is handled or ctx is cancelled. On cancellation
// the controller is shut down, so preferences are saved either way.
func (l *Loop) Run(ctx context.Context) error {
	defer l.closeOnce.Do(func() { close(l.done) })

	l.logger.Debug("session loop started")
	for {
		select {
		case <-ctx.Done():
			l.ctrl.Shutdown()
			return ctx.Err()
		case <-l.wake:
		}

		for ev, ok := l.next(); ok; ev, ok = l.next() {
			if ctx.Err() != nil {
				break
			}
			if !l.dispatch(ev) {
				l.logger.Debug("session loop stopped")
				return nil
			}
		}
	}
}

// dispatch runs one event. A panic is reported to the user and the loop carries on.
func (l *Loop) dispatch(ev Event) (more bool) {
	if b, ok := ev.(barrier); ok {
		close(b.done)
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panic while handling event",
				"event", fmt.Sprintf("%T", ev),
				"panic", r,
				"stack", string(debug.Stack()))
			l.ctrl.view.ShowError(fmt.Sprintf("Internal error: %v", r))
			more = !l.ctrl.Stopped()
		}
	}()
	return l.ctrl.Dispatch(ev)
}
