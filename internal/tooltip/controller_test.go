package tooltip

import (
	"math/rand"
	"testing"
	"time"

	"github.com/andyrewlee/tipkit/internal/clock"
	"github.com/andyrewlee/tipkit/internal/delay"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type env struct {
	clock    *clock.Fake
	sched    *delay.Scheduler
	registry *Registry
}

func newEnv() *env {
	c := clock.NewFake(epoch)
	return &env{clock: c, sched: delay.NewScheduler(c, nil), registry: NewRegistry()}
}

func (e *env) controller(id string, opts ...Option) *Controller {
	return NewController(ElementID(id), "tip for "+id, e.sched, e.registry, opts...)
}

func (e *env) advance(d time.Duration) { e.clock.Advance(d) }

func (e *env) elapsed() time.Duration { return e.clock.Since(epoch) }

func child(id string) ElementID { return ElementID(id + "/label") }

func expectPhase(t *testing.T, c *Controller, want Phase) {
	t.Helper()
	if got := c.Phase(); got != want {
		t.Fatalf("%s: expected phase %s, got %s", c.ID(), want, got)
	}
}

func TestEndToEndSingleInstance(t *testing.T) {
	e := newEnv()
	c := e.controller("a")

	c.PointerEnter(child("a"), Point{X: 3, Y: 4})
	expectPhase(t, c, PhasePendingShow)
	if sig := c.Signal(); !sig.Mounted || sig.Visible || sig.Stage != StageMounted {
		t.Fatalf("pending show should be mounted but not visible: %+v", sig)
	}

	e.advance(299 * time.Millisecond)
	expectPhase(t, c, PhasePendingShow)
	e.advance(time.Millisecond)
	expectPhase(t, c, PhaseVisible)
	sig := c.Signal()
	if sig.ImmediateShow || !sig.Visible || sig.Stage != StageEntering || !sig.Animated {
		t.Fatalf("natural show should animate in: %+v", sig)
	}
	if sig.Pointer != (Point{X: 3, Y: 4}) {
		t.Fatalf("expected recorded pointer, got %+v", sig.Pointer)
	}

	e.advance(50 * time.Millisecond)
	c.PointerLeave(child("a"))
	expectPhase(t, c, PhasePendingHide)
	if e.registry.Peek() == nil || !e.registry.Peek().Pending() {
		t.Fatalf("leave should record a pending hide")
	}

	e.advance(299 * time.Millisecond)
	expectPhase(t, c, PhasePendingHide)
	if c.Signal().Stage != StageShown {
		t.Fatalf("entrance should have finished, got %s", c.Signal().Stage)
	}
	e.advance(time.Millisecond)
	if e.elapsed() != 650*time.Millisecond {
		t.Fatalf("unexpected clock %s", e.elapsed())
	}
	expectPhase(t, c, PhaseExiting)
	sig = c.Signal()
	if sig.ImmediateHide || sig.Visible || !sig.Mounted || sig.Stage != StageExiting || !sig.Animated {
		t.Fatalf("natural hide should animate out: %+v", sig)
	}

	e.advance(DefaultExitDuration - time.Millisecond)
	expectPhase(t, c, PhaseExiting)
	e.advance(time.Millisecond)
	expectPhase(t, c, PhaseHidden)
	if sig := c.Signal(); sig.Mounted || sig.Stage != StageUnmounted || sig.ImmediateShow || sig.ImmediateHide {
		t.Fatalf("hidden should be unmounted with flags cleared: %+v", sig)
	}
}

func TestCrossInstanceFlushAvoidsFlicker(t *testing.T) {
	e := newEnv()
	var hides int
	a := e.controller("a", WithOnHide(func() { hides++ }))
	b := e.controller("b")

	a.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	expectPhase(t, a, PhaseVisible)
	a.PointerLeave(child("a"))

	e.advance(100 * time.Millisecond)
	b.PointerEnter(child("b"), Point{})

	expectPhase(t, a, PhaseExiting)
	if sig := a.Signal(); !sig.ImmediateHide || sig.Animated {
		t.Fatalf("flushed hide should skip the exit animation: %+v", sig)
	}
	if hides != 1 {
		t.Fatalf("expected OnHide once, got %d", hides)
	}
	expectPhase(t, b, PhasePendingShow)

	e.advance(0)
	expectPhase(t, b, PhaseVisible)
	if sig := b.Signal(); !sig.ImmediateShow || sig.Stage != StageShown || sig.Animated {
		t.Fatalf("show after flushed hide should be immediate: %+v", sig)
	}
	expectPhase(t, a, PhaseHidden)
	if e.elapsed() != 400*time.Millisecond {
		t.Fatalf("both transitions should complete before any delay elapses, clock at %s", e.elapsed())
	}

	e.advance(time.Second)
	if hides != 1 {
		t.Fatalf("A's hide ran again: %d", hides)
	}
	expectPhase(t, b, PhaseVisible)
}

func TestCancelledRegisteredHideIsNotFlushed(t *testing.T) {
	e := newEnv()
	a := e.controller("a")
	b := e.controller("b")

	a.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	a.PointerLeave(child("a"))
	a.PointerEnter(child("a"), Point{})
	expectPhase(t, a, PhaseVisible)

	b.PointerEnter(child("b"), Point{})
	expectPhase(t, a, PhaseVisible)
	e.advance(299 * time.Millisecond)
	expectPhase(t, b, PhasePendingShow)
	e.advance(time.Millisecond)
	expectPhase(t, b, PhaseVisible)
	if b.Signal().ImmediateShow {
		t.Fatalf("no pending hide existed, show should not be immediate")
	}
}

func TestThirdInstanceSupersedesRegistryEntry(t *testing.T) {
	e := newEnv()
	a := e.controller("a")
	b := e.controller("b")
	c := e.controller("c")

	for _, ctl := range []*Controller{a, b} {
		ctl.PointerEnter(child(string(ctl.ID())), Point{})
	}
	e.advance(300 * time.Millisecond)
	a.PointerLeave(child("a"))
	b.PointerLeave(child("b"))

	c.PointerEnter(child("c"), Point{})
	expectPhase(t, b, PhaseExiting)
	expectPhase(t, a, PhasePendingHide)

	e.advance(300 * time.Millisecond)
	expectPhase(t, a, PhaseExiting)
	if a.Signal().ImmediateHide {
		t.Fatalf("superseded hide should fire naturally")
	}
}

func TestScrollWhileVisibleHidesImmediately(t *testing.T) {
	e := newEnv()
	c := e.controller("a")

	c.Scroll()
	expectPhase(t, c, PhaseHidden)

	c.PointerEnter(child("a"), Point{})
	c.Scroll()
	expectPhase(t, c, PhasePendingShow)

	e.advance(300 * time.Millisecond)
	c.Scroll()
	expectPhase(t, c, PhaseExiting)
	if !c.Signal().ImmediateHide {
		t.Fatalf("scroll should force immediate hide")
	}
	e.advance(0)
	expectPhase(t, c, PhaseHidden)
}

func TestScrollDuringPendingHide(t *testing.T) {
	e := newEnv()
	c := e.controller("a")
	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	c.PointerLeave(child("a"))

	c.Scroll()
	expectPhase(t, c, PhaseExiting)
	if e.registry.TakeIfPending() {
		t.Fatalf("scroll should cancel the registered hide")
	}
}

func TestHideOnClick(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		from    Phase
	}{
		{name: "pending show", advance: 100 * time.Millisecond, from: PhasePendingShow},
		{name: "visible", advance: 300 * time.Millisecond, from: PhaseVisible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			c := e.controller("a", WithHideOnClick(true))
			c.PointerEnter(child("a"), Point{})
			e.advance(tt.advance)
			expectPhase(t, c, tt.from)

			c.Click()
			expectPhase(t, c, PhaseExiting)
			if !c.Signal().ImmediateHide {
				t.Fatalf("click should force immediate hide")
			}
			e.advance(0)
			expectPhase(t, c, PhaseHidden)
			e.advance(time.Second)
			expectPhase(t, c, PhaseHidden)
		})
	}
}

func TestClickWithoutOptionIsIgnored(t *testing.T) {
	e := newEnv()
	c := e.controller("a")
	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	c.Click()
	c.MouseDown()
	expectPhase(t, c, PhaseVisible)
}

func TestHideOnMouseDown(t *testing.T) {
	e := newEnv()
	c := e.controller("a", WithHideOnMouseDown(true))
	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	c.PointerLeave(child("a"))

	c.Click()
	expectPhase(t, c, PhasePendingHide)
	c.MouseDown()
	expectPhase(t, c, PhaseExiting)
	if !c.Signal().ImmediateHide {
		t.Fatalf("mousedown should force immediate hide")
	}
}

func TestWrapperTargetIgnored(t *testing.T) {
	e := newEnv()
	c := e.controller("a")
	c.PointerEnter("a", Point{})
	expectPhase(t, c, PhaseHidden)

	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	c.PointerLeave("a")
	expectPhase(t, c, PhaseVisible)
}

func TestEmptyContentNeverSchedules(t *testing.T) {
	e := newEnv()
	c := NewController("a", "", e.sched, e.registry)
	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhaseHidden)
	if e.clock.Pending() != 0 {
		t.Fatalf("expected no timers, got %d", e.clock.Pending())
	}

	c.SetContent("now with content")
	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhasePendingShow)
}

func TestRepeatedEntersKeepOneTask(t *testing.T) {
	e := newEnv()
	c := e.controller("a")

	c.PointerEnter(child("a"), Point{X: 1})
	e.advance(200 * time.Millisecond)
	c.PointerEnter(child("a"), Point{X: 9})
	c.PointerEnter(child("a"), Point{X: 9})
	if e.clock.Pending() != 1 {
		t.Fatalf("expected exactly one pending timer, got %d", e.clock.Pending())
	}

	e.advance(100 * time.Millisecond)
	expectPhase(t, c, PhasePendingShow)
	e.advance(200 * time.Millisecond)
	expectPhase(t, c, PhaseVisible)
	if c.Signal().Pointer.X != 1 {
		t.Fatalf("pointer should be captured by the enter that started the cycle")
	}
}

func TestReenterDuringPendingHideKeepsTooltip(t *testing.T) {
	e := newEnv()
	var shows, hides int
	c := e.controller("a", WithOnShow(func() { shows++ }), WithOnHide(func() { hides++ }))

	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	c.PointerLeave(child("a"))
	e.advance(100 * time.Millisecond)
	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhaseVisible)

	e.advance(time.Second)
	expectPhase(t, c, PhaseVisible)
	if shows != 1 || hides != 0 {
		t.Fatalf("expected one show and no hide, got %d/%d", shows, hides)
	}
}

func TestLeaveDuringPendingShowNeverAnnounces(t *testing.T) {
	e := newEnv()
	var shows, hides int
	c := e.controller("a", WithOnShow(func() { shows++ }), WithOnHide(func() { hides++ }))

	c.PointerEnter(child("a"), Point{})
	e.advance(100 * time.Millisecond)
	c.PointerLeave(child("a"))
	expectPhase(t, c, PhasePendingHide)

	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhasePendingShow)
	c.PointerLeave(child("a"))

	e.advance(300 * time.Millisecond)
	expectPhase(t, c, PhaseExiting)
	if c.Signal().Animated {
		t.Fatalf("a tooltip that never showed should not animate out")
	}
	e.advance(0)
	expectPhase(t, c, PhaseHidden)
	if shows != 0 || hides != 0 {
		t.Fatalf("expected no callbacks, got %d/%d", shows, hides)
	}
}

func TestShowHideCallbacksOncePerCycle(t *testing.T) {
	e := newEnv()
	var shows, hides int
	c := e.controller("a", WithOnShow(func() { shows++ }), WithOnHide(func() { hides++ }))

	for cycle := 1; cycle <= 3; cycle++ {
		c.PointerEnter(child("a"), Point{})
		e.advance(300 * time.Millisecond)
		c.PointerLeave(child("a"))
		e.advance(300*time.Millisecond + DefaultExitDuration)
		expectPhase(t, c, PhaseHidden)
		if shows != cycle || hides != cycle {
			t.Fatalf("cycle %d: expected %d/%d callbacks, got %d/%d", cycle, cycle, cycle, shows, hides)
		}
	}
}

func TestEnterWhileExitingIsIgnored(t *testing.T) {
	e := newEnv()
	c := e.controller("a")
	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	c.PointerLeave(child("a"))
	e.advance(300 * time.Millisecond)
	expectPhase(t, c, PhaseExiting)

	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhaseExiting)
	e.advance(DefaultExitDuration)
	expectPhase(t, c, PhaseHidden)

	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhasePendingShow)
}

func TestCloseCancelsPendingWork(t *testing.T) {
	e := newEnv()
	shows := 0
	c := e.controller("a", WithOnShow(func() { shows++ }))
	c.PointerEnter(child("a"), Point{})
	c.Close()
	c.Close()

	e.advance(time.Second)
	expectPhase(t, c, PhaseHidden)
	if shows != 0 {
		t.Fatalf("callback fired after Close")
	}
	if e.clock.Pending() != 0 {
		t.Fatalf("Close left %d timers running", e.clock.Pending())
	}

	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhaseHidden)
}

func TestCloseDuringExitReleasesLifecycle(t *testing.T) {
	e := newEnv()
	c := e.controller("a")
	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	c.PointerLeave(child("a"))
	e.advance(300 * time.Millisecond)
	expectPhase(t, c, PhaseExiting)

	c.Close()
	if e.clock.Pending() != 0 {
		t.Fatalf("exit animation timer survived Close")
	}
	if sig := c.Signal(); sig.Mounted || sig.Stage != StageUnmounted {
		t.Fatalf("closed controller still mounted: %+v", sig)
	}
}

func TestSetOptionsUpdatesDelay(t *testing.T) {
	e := newEnv()
	c := e.controller("a")
	c.SetOptions(WithDelay(50*time.Millisecond), WithAnimation(0, 0))
	c.PointerEnter(child("a"), Point{})
	e.advance(50 * time.Millisecond)
	expectPhase(t, c, PhaseVisible)
	if sig := c.Signal(); sig.Stage != StageShown || sig.Animated {
		t.Fatalf("zero enter duration should show directly: %+v", sig)
	}
}

func TestMountedMatchesPhaseUnderRandomInput(t *testing.T) {
	e := newEnv()
	ids := []string{"a", "b", "c"}
	ctls := make([]*Controller, len(ids))
	for i, id := range ids {
		ctls[i] = e.controller(id, WithHideOnClick(true), WithDelay(time.Duration(50+50*i)*time.Millisecond))
		ctls[i].Observe(func(sig Signal) {
			if sig.Mounted != (sig.Phase != PhaseHidden) {
				t.Fatalf("mounted mismatch: %+v", sig)
			}
			if (sig.Stage == StageUnmounted) != (sig.Phase == PhaseHidden) {
				t.Fatalf("stage/phase mismatch: %+v", sig)
			}
			if sig.Visible && !sig.Phase.Up() {
				t.Fatalf("visible outside visible phases: %+v", sig)
			}
			if sig.Phase == PhaseHidden && (sig.ImmediateShow || sig.ImmediateHide) {
				t.Fatalf("flags set while hidden: %+v", sig)
			}
		})
	}

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 2000; step++ {
		ctl := ctls[rng.Intn(len(ctls))]
		target := child(string(ctl.ID()))
		switch rng.Intn(7) {
		case 0, 1:
			ctl.PointerEnter(target, Point{X: step})
		case 2, 3:
			ctl.PointerLeave(target)
		case 4:
			ctl.Click()
		case 5:
			ctl.Scroll()
		case 6:
			ctl.PointerEnter(ctl.ID(), Point{})
		}
		e.advance(time.Duration(rng.Intn(200)) * time.Millisecond)
	}
}

func TestEmptyContentReenterDuringPendingHideUnmounts(t *testing.T) {
	e := newEnv()
	hides := 0
	c := e.controller("a", WithOnHide(func() { hides++ }))

	c.PointerEnter(child("a"), Point{})
	e.advance(100 * time.Millisecond)
	c.PointerLeave(child("a"))
	expectPhase(t, c, PhasePendingHide)

	c.SetContent("")
	c.PointerEnter(child("a"), Point{})
	expectPhase(t, c, PhaseHidden)
	if sig := c.Signal(); sig.Mounted || sig.Stage != StageUnmounted {
		t.Fatalf("expected unmounted after empty re-enter, got %+v", sig)
	}
	if n := e.clock.Pending(); n != 0 {
		t.Fatalf("expected no pending timers, got %d", n)
	}

	e.advance(10 * time.Second)
	expectPhase(t, c, PhaseHidden)
	if hides != 0 {
		t.Fatalf("a tooltip that never showed must not report a hide, got %d", hides)
	}
}
