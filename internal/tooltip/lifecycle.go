package tooltip

import (
	"time"

	"github.com/andyrewlee/tipkit/internal/delay"
)

// lifecycleInput is the slice of controller state the lifecycle consumes.
type lifecycleInput struct {
	phase         Phase
	visible       bool
	immediateShow bool
	immediateHide bool
}

// Lifecycle maps controller state onto mount and animation stages:
// mounted while the phase is not hidden, entrance when the tooltip becomes
// visible, exit when the phase becomes exiting. Exit completion is reported
// through onExited so the controller can finalize to hidden.
type Lifecycle struct {
	sched *delay.Scheduler
	enter time.Duration
	exit  time.Duration

	stage    Stage
	animated bool
	since    time.Time
	task     *delay.Task

	onChange func()
	onExited func()
}

func newLifecycle(sched *delay.Scheduler, enter, exit time.Duration, onChange, onExited func()) *Lifecycle {
	return &Lifecycle{
		sched:    sched,
		enter:    enter,
		exit:     exit,
		onChange: onChange,
		onExited: onExited,
	}
}

// Stage returns the current stage.
func (l *Lifecycle) Stage() Stage { return l.stage }

// Animated reports whether the current stage is a running transition.
// Entering and exiting stages that are not animated render in their final
// state directly.
func (l *Lifecycle) Animated() bool { return l.animated }

// Progress returns how far the current transition has run, in [0, 1].
// Non-animated stages report 1.
func (l *Lifecycle) Progress() float64 {
	if !l.animated {
		return 1
	}
	total := l.enter
	if l.stage == StageExiting {
		total = l.exit
	}
	if total <= 0 {
		return 1
	}
	p := float64(l.sched.Now().Sub(l.since)) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (l *Lifecycle) setDurations(enter, exit time.Duration) {
	l.enter, l.exit = enter, exit
}

func (l *Lifecycle) sync(in lifecycleInput) {
	switch in.phase {
	case PhaseHidden:
		l.task.Cancel()
		l.task = nil
		l.set(StageUnmounted, false)

	case PhaseExiting:
		if l.stage == StageExiting {
			return
		}
		wasShown := l.stage == StageEntering || l.stage == StageShown
		l.task.Cancel()
		d := l.exit
		animated := wasShown && !in.immediateHide && d > 0
		if !animated {
			d = 0
		}
		l.set(StageExiting, animated)
		l.task = l.sched.Schedule(d, func(bool) {
			l.task = nil
			if l.onExited != nil {
				l.onExited()
			}
		})

	default:
		if l.stage == StageUnmounted {
			l.set(StageMounted, false)
		}
		if !in.visible || l.stage != StageMounted {
			return
		}
		if in.immediateShow || l.enter <= 0 {
			l.set(StageShown, false)
			return
		}
		l.set(StageEntering, true)
		l.task = l.sched.Schedule(l.enter, func(bool) {
			l.task = nil
			l.set(StageShown, false)
			if l.onChange != nil {
				l.onChange()
			}
		})
	}
}

func (l *Lifecycle) set(stage Stage, animated bool) {
	l.stage = stage
	l.animated = animated
	l.since = l.sched.Now()
}

func (l *Lifecycle) close() {
	l.task.Cancel()
	l.task = nil
	l.set(StageUnmounted, false)
}
