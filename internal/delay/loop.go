package delay

import (
	"context"
	"errors"
	"sync"

	"github.com/andyrewlee/tipkit/internal/safego"
)

// ErrLoopClosed is returned by Submit after Close.
var ErrLoopClosed = errors.New("delay: loop closed")

// Loop is a serial executor for hosts without an event loop of their own.
// Submitted functions run one at a time, in submission order, on the
// goroutine that calls Run.
type Loop struct {
	queue chan func()

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewLoop returns a loop with the given queue capacity.
func NewLoop(capacity int) *Loop {
	if capacity < 1 {
		capacity = 64
	}
	return &Loop{
		queue: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// Submit enqueues fn. It blocks while the queue is full.
func (l *Loop) Submit(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.mu.Unlock()

	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Post adapts Submit to PostFunc, dropping work submitted after Close.
func (l *Loop) Post(fn func()) {
	_ = l.Submit(fn)
}

// Run executes submitted functions until ctx is done or Close is called.
// A panicking function is logged and does not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			safego.Run("delay.loop", fn)
		}
	}
}

// Close stops the loop. Pending submissions are discarded.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.done)
}
