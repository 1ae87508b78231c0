package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/andyrewlee/tipkit/internal/clock"
	"github.com/andyrewlee/tipkit/internal/delay"
	"github.com/andyrewlee/tipkit/internal/logging"
	"github.com/andyrewlee/tipkit/internal/safego"
	"github.com/andyrewlee/tipkit/internal/tooltip"
)

// TraceEntry records one observed change in a tooltip's phase or stage.
type TraceEntry struct {
	At            time.Duration
	Target        string
	Phase         tooltip.Phase
	Stage         tooltip.Stage
	Animated      bool
	ImmediateShow bool
	ImmediateHide bool
}

// Result is the outcome of one scenario run.
type Result struct {
	Name     string
	Path     string
	Realtime bool
	// Elapsed is the wall time the run took.
	Elapsed  time.Duration
	Trace    []TraceEntry
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// run holds the state of one scenario execution. Every method except the
// constructors runs on the scheduler's loop.
type run struct {
	scenario    *Scenario
	sched       *delay.Scheduler
	start       time.Time
	controllers map[string]*tooltip.Controller
	last        map[string]TraceEntry
	result      *Result
}

func newRun(s *Scenario, sched *delay.Scheduler, realtime bool) *run {
	return &run{
		scenario:    s,
		sched:       sched,
		controllers: make(map[string]*tooltip.Controller, len(s.Targets)),
		last:        make(map[string]TraceEntry, len(s.Targets)),
		result:      &Result{Name: s.Name, Realtime: realtime},
	}
}

// setup creates one controller per target, all sharing a registry.
func (r *run) setup() {
	r.start = r.sched.Now()
	registry := tooltip.NewRegistry()
	for _, t := range r.scenario.Targets {
		opts := append(r.scenario.Defaults.options(), t.options()...)
		c := tooltip.NewController(tooltip.ElementID(t.ID), t.Content, r.sched, registry, opts...)
		id := t.ID
		c.Observe(func(sig tooltip.Signal) { r.observe(id, sig) })
		r.controllers[id] = c
	}
}

func (r *run) observe(id string, sig tooltip.Signal) {
	entry := TraceEntry{
		At:            r.sched.Now().Sub(r.start),
		Target:        id,
		Phase:         sig.Phase,
		Stage:         sig.Stage,
		Animated:      sig.Animated,
		ImmediateShow: sig.ImmediateShow,
		ImmediateHide: sig.ImmediateHide,
	}
	prev, seen := r.last[id]
	if seen && prev.Phase == entry.Phase && prev.Stage == entry.Stage {
		return
	}
	r.last[id] = entry
	r.result.Trace = append(r.result.Trace, entry)
}

func (r *run) apply(i int, st Step) {
	if st.Event == "" {
		return
	}
	kind, _ := tooltip.ParseEventKind(st.Event)
	if kind == tooltip.EventScroll && st.Target == "" {
		for _, t := range r.scenario.Targets {
			r.controllers[t.ID].Scroll()
		}
		return
	}
	c := r.controllers[st.Target]
	element := tooltip.ElementID(st.Target + "/label")
	if st.Element != "" {
		element = tooltip.ElementID(st.Element)
	}
	logging.Debug("harness %s: step %d %s %s at %s", r.scenario.Name, i, st.Event, element, st.At)
	c.Handle(tooltip.Event{
		Kind:    kind,
		Target:  element,
		Pointer: tooltip.Point{X: st.X, Y: st.Y},
	})
}

func (r *run) check(label string, expect map[string]string) {
	for _, id := range sortedKeys(expect) {
		want, _ := tooltip.ParsePhase(expect[id])
		got := r.controllers[id].Phase()
		if got != want {
			r.result.Failures = append(r.result.Failures,
				fmt.Sprintf("%s: %s expected %s, got %s (at %s)", label, id, want, got, r.sched.Now().Sub(r.start)))
		}
	}
}

func (r *run) teardown() {
	for _, c := range r.controllers {
		c.Close()
	}
}

func (r *run) settle() time.Duration {
	if r.scenario.Settle > 0 {
		return r.scenario.Settle
	}
	return DefaultSettle
}

// Run executes s on a fake clock. Timers fire exactly at their deadlines, so
// expectations can sit on the boundary of a delay.
func Run(s *Scenario) *Result {
	fake := clock.NewFake(time.Unix(0, 0))
	r := newRun(s, delay.NewScheduler(fake, delay.Inline), false)
	r.setup()

	for i, st := range s.Steps {
		fake.AdvanceTo(r.start.Add(st.At))
		r.apply(i, st)
		r.check(fmt.Sprintf("step %d", i), st.Expect)
	}
	fake.Advance(r.settle())
	r.check("final", s.Final)
	r.teardown()
	return r.result
}

// RunRealtime executes s against the wall clock. Controllers live on a
// delay.Loop; steps and checks are submitted to it at their offsets.
func RunRealtime(ctx context.Context, s *Scenario) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := delay.NewLoop(256)
	defer loop.Close()
	safego.Go("harness.loop", func() {
		if err := loop.Run(ctx); err != nil && err != context.Canceled {
			logging.Debug("harness loop stopped: %v", err)
		}
	})

	r := newRun(s, delay.NewScheduler(clock.Real{}, loop.Post), true)
	if err := onLoop(ctx, loop, r.setup); err != nil {
		return nil, err
	}

	for i, st := range s.Steps {
		i, st := i, st
		if err := sleepUntil(ctx, r.start.Add(st.At)); err != nil {
			return nil, err
		}
		if err := onLoop(ctx, loop, func() {
			r.apply(i, st)
			r.check(fmt.Sprintf("step %d", i), st.Expect)
		}); err != nil {
			return nil, err
		}
	}

	if err := sleepUntil(ctx, time.Now().Add(r.settle())); err != nil {
		return nil, err
	}
	if err := onLoop(ctx, loop, func() {
		r.check("final", s.Final)
		r.teardown()
	}); err != nil {
		return nil, err
	}
	return r.result, nil
}

// onLoop runs fn on loop and waits for it to finish.
func onLoop(ctx context.Context, loop *delay.Loop, fn func()) error {
	done := make(chan struct{})
	if err := loop.Submit(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func sleepUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
