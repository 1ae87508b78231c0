package tooltip

import (
	"github.com/andyrewlee/tipkit/internal/delay"
	"github.com/andyrewlee/tipkit/internal/logging"
)

// Signal is the controller's output for the rendering host.
type Signal struct {
	ID            ElementID
	Phase         Phase
	Stage         Stage
	Animated      bool
	Visible       bool
	Mounted       bool
	ImmediateShow bool
	ImmediateHide bool
	// Pointer is where the cycle's first enter happened; meaningful for
	// PositionMouse placement.
	Pointer Point
}

// Controller drives one tooltip's visibility from pointer events. It holds at
// most one pending task; every new schedule cancels the previous one first.
//
// A Controller is confined to the event loop its scheduler posts to.
type Controller struct {
	id       ElementID
	content  string
	opts     Options
	sched    *delay.Scheduler
	registry *Registry
	anim     *Lifecycle

	phase         Phase
	visible       bool
	announced     bool
	immediateShow bool
	immediateHide bool
	active        *delay.Task
	pointer       Point

	closed    bool
	observers []func(Signal)
}

// NewController returns a hidden controller for the wrapper element id.
// Controllers that must coordinate hides share registry; a nil registry
// gives the controller a private one.
func NewController(id ElementID, content string, sched *delay.Scheduler, registry *Registry, opts ...Option) *Controller {
	if registry == nil {
		registry = NewRegistry()
	}
	c := &Controller{
		id:       id,
		content:  content,
		opts:     NewOptions(opts...),
		sched:    sched,
		registry: registry,
	}
	c.anim = newLifecycle(sched, c.opts.EnterDuration, c.opts.ExitDuration, c.notify, c.exitComplete)
	return c
}

// ID returns the wrapper element id.
func (c *Controller) ID() ElementID { return c.id }

// Content returns the tooltip content.
func (c *Controller) Content() string { return c.content }

// SetContent replaces the content. Clearing it does not hide a tooltip that
// is already up; it only prevents new cycles from starting.
func (c *Controller) SetContent(content string) { c.content = content }

// Options returns a copy of the current options.
func (c *Controller) Options() Options { return c.opts }

// SetOptions applies opts over the current options. Tasks already scheduled
// keep their delay.
func (c *Controller) SetOptions(opts ...Option) {
	for _, opt := range opts {
		opt(&c.opts)
	}
	c.opts.normalize()
	c.anim.setDurations(c.opts.EnterDuration, c.opts.ExitDuration)
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Lifecycle exposes the animation lifecycle, mainly for progress queries.
func (c *Controller) Lifecycle() *Lifecycle { return c.anim }

// Observe registers fn to receive the signal after every state change.
func (c *Controller) Observe(fn func(Signal)) {
	c.observers = append(c.observers, fn)
}

// Signal returns the current rendering signal.
func (c *Controller) Signal() Signal {
	return Signal{
		ID:            c.id,
		Phase:         c.phase,
		Stage:         c.anim.Stage(),
		Animated:      c.anim.Animated(),
		Visible:       c.visible,
		Mounted:       c.phase.Mounted(),
		ImmediateShow: c.immediateShow,
		ImmediateHide: c.immediateHide,
		Pointer:       c.pointer,
	}
}

// Handle dispatches ev to the matching handler.
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case EventPointerEnter:
		c.PointerEnter(ev.Target, ev.Pointer)
	case EventPointerLeave:
		c.PointerLeave(ev.Target)
	case EventClick:
		c.Click()
	case EventMouseDown:
		c.MouseDown()
	case EventScroll:
		c.Scroll()
	}
}

// PointerEnter handles the pointer entering target, an element inside the
// tooltip's wrapper. Events dispatched on the wrapper itself are ignored.
func (c *Controller) PointerEnter(target ElementID, at Point) {
	if c.closed || target == c.id {
		return
	}
	switch c.phase {
	case PhaseVisible, PhaseExiting:
		return
	case PhasePendingHide:
		if c.visible {
			c.cancelActive()
			c.transition(PhaseVisible)
			return
		}
	}

	c.cancelActive()
	if c.content == "" {
		// Nothing to show. A pending cycle that never became visible ends
		// here, since its task was just cancelled.
		if c.phase == PhasePendingShow || c.phase == PhasePendingHide {
			c.transition(PhaseHidden)
		}
		return
	}
	if c.phase == PhaseHidden {
		c.pointer = at
	}

	hadPendingHide := c.registry.TakeIfPending()
	d := c.opts.Delay
	if hadPendingHide {
		d = 0
	}
	c.active = c.sched.Schedule(d, func(flushed bool) {
		c.active = nil
		c.immediateShow = flushed || hadPendingHide
		c.visible = true
		c.transition(PhaseVisible)
	})
	c.transition(PhasePendingShow)
}

// PointerLeave handles the pointer leaving target. Events dispatched on the
// wrapper itself are ignored.
func (c *Controller) PointerLeave(target ElementID) {
	if c.closed || target == c.id {
		return
	}
	switch c.phase {
	case PhasePendingShow, PhaseVisible, PhasePendingHide:
	default:
		return
	}

	c.cancelActive()
	task := c.sched.Schedule(c.opts.Delay, func(flushed bool) {
		c.active = nil
		c.immediateHide = flushed
		c.visible = false
		c.transition(PhaseExiting)
	})
	c.active = task
	c.registry.RecordHide(task)
	c.transition(PhasePendingHide)
}

// Click hides immediately when HideOnClick is set.
func (c *Controller) Click() {
	if c.opts.HideOnClick {
		c.hideFromInput()
	}
}

// MouseDown hides immediately when HideOnMouseDown is set.
func (c *Controller) MouseDown() {
	if c.opts.HideOnMouseDown {
		c.hideFromInput()
	}
}

// Scroll hides immediately, without delay, while the tooltip is up.
func (c *Controller) Scroll() {
	if c.closed || !c.phase.Up() {
		return
	}
	c.hideNow()
}

func (c *Controller) hideFromInput() {
	if c.closed {
		return
	}
	switch c.phase {
	case PhasePendingShow, PhaseVisible, PhasePendingHide:
		c.hideNow()
	}
}

func (c *Controller) hideNow() {
	c.cancelActive()
	c.immediateHide = true
	c.visible = false
	c.transition(PhaseExiting)
}

// Close tears the controller down: pending work is cancelled and no
// callbacks run afterwards. OnHide is not invoked.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancelActive()
	c.anim.close()
	c.phase = PhaseHidden
	c.visible = false
	c.announced = false
	c.immediateShow = false
	c.immediateHide = false
	logging.Debug("tooltip %s: closed", c.id)
}

func (c *Controller) cancelActive() {
	c.active.Cancel()
	c.active = nil
}

func (c *Controller) exitComplete() {
	if c.closed || c.phase != PhaseExiting {
		return
	}
	c.transition(PhaseHidden)
}

func (c *Controller) transition(next Phase) {
	prev := c.phase
	c.phase = next
	if next == PhaseHidden {
		c.visible = false
		c.immediateShow = false
		c.immediateHide = false
	}
	if next == PhasePendingShow && prev == PhaseHidden {
		c.immediateHide = false
	}

	c.anim.sync(lifecycleInput{
		phase:         c.phase,
		visible:       c.visible,
		immediateShow: c.immediateShow,
		immediateHide: c.immediateHide,
	})

	if prev != next {
		logging.Debug("tooltip %s: %s -> %s (immediateShow=%t immediateHide=%t)",
			c.id, prev, next, c.immediateShow, c.immediateHide)
	}

	switch {
	case c.visible && !c.announced:
		c.announced = true
		if c.opts.OnShow != nil {
			c.opts.OnShow()
		}
	case !c.visible && c.announced:
		c.announced = false
		if c.opts.OnHide != nil {
			c.opts.OnHide()
		}
	}
	c.notify()
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	sig := c.Signal()
	for _, fn := range c.observers {
		fn(sig)
	}
}
