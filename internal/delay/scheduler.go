package delay

import (
	"time"

	"github.com/andyrewlee/tipkit/internal/clock"
	"github.com/andyrewlee/tipkit/internal/perf"
	"github.com/andyrewlee/tipkit/internal/safego"
)

// PostFunc hands fn to the owning event loop. It may be called from any
// goroutine; fn must run on the loop.
type PostFunc func(fn func())

// Inline runs fn on the calling goroutine. Suitable when the clock already
// fires on the loop, as clock.Fake does when driven from a test.
func Inline(fn func()) { fn() }

// Scheduler creates Tasks on a clock and delivers their expiry through post.
type Scheduler struct {
	clock  clock.Clock
	post   PostFunc
	nextID uint64
}

// NewScheduler returns a scheduler. A nil clock means clock.Real; a nil post
// means Inline.
func NewScheduler(c clock.Clock, post PostFunc) *Scheduler {
	if c == nil {
		c = clock.Real{}
	}
	if post == nil {
		post = Inline
	}
	return &Scheduler{clock: c, post: post}
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// Schedule starts a task that calls fn after d. Negative delays are treated
// as zero; a zero delay still defers fn to a later loop turn.
func (s *Scheduler) Schedule(d time.Duration, fn func(flushed bool)) *Task {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &Task{id: s.nextID, delay: d, fn: fn, state: Scheduled}
	post := s.post
	t.timer = s.clock.AfterFunc(d, safego.Wrap("delay.expire", func() {
		post(t.expire)
	}))
	perf.Count("delay.scheduled", 1)
	return t
}
