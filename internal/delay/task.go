// Package delay provides cancellable, flushable deferred callbacks whose
// expiry is delivered onto a single owning event loop.
package delay

import (
	"fmt"
	"time"

	"github.com/andyrewlee/tipkit/internal/clock"
	"github.com/andyrewlee/tipkit/internal/perf"
)

// State is the settlement state of a Task.
type State int

const (
	Scheduled State = iota
	Flushed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Flushed:
		return "flushed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Task is a deferred callback. The callback runs exactly once, with flushed
// reporting whether it was forced early by Flush, unless the task is
// cancelled first. A nil *Task behaves as an already-settled task.
//
// Tasks are confined to the scheduler's loop: Cancel, Flush and Pending must
// be called from the same goroutine that receives posted expiries.
type Task struct {
	id    uint64
	delay time.Duration
	fn    func(flushed bool)
	timer clock.Timer
	state State
}

// ID returns the scheduler-unique task id.
func (t *Task) ID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

// Delay returns the delay the task was scheduled with.
func (t *Task) Delay() time.Duration {
	if t == nil {
		return 0
	}
	return t.delay
}

// State returns the task's settlement state.
func (t *Task) State() State {
	if t == nil {
		return Cancelled
	}
	return t.state
}

// Pending reports whether the task has neither fired nor been cancelled.
func (t *Task) Pending() bool {
	return t != nil && t.state == Scheduled
}

// Cancel suppresses the callback and releases the timer. Idempotent.
func (t *Task) Cancel() {
	if !t.Pending() {
		return
	}
	t.state = Cancelled
	t.release()
	perf.Count("delay.cancelled", 1)
}

// Flush runs the callback now with flushed=true and releases the timer.
// No-op if the task already fired or was cancelled.
func (t *Task) Flush() {
	if !t.Pending() {
		return
	}
	t.state = Flushed
	t.release()
	perf.Count("delay.flushed", 1)
	t.fn(true)
}

// expire is the loop-side half of natural firing. The state check makes a
// Cancel that lands between timer expiry and delivery win.
func (t *Task) expire() {
	if !t.Pending() {
		return
	}
	t.state = Flushed
	t.timer = nil
	perf.Count("delay.fired", 1)
	t.fn(false)
}

func (t *Task) release() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Task) String() string {
	if t == nil {
		return "task(none)"
	}
	return fmt.Sprintf("task#%d(%s, %s)", t.id, t.delay, t.state)
}
