package hover

import (
	"image"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/tipkit/internal/clock"
	"github.com/andyrewlee/tipkit/internal/delay"
	"github.com/andyrewlee/tipkit/internal/logging"
	"github.com/andyrewlee/tipkit/internal/tooltip"
	"github.com/andyrewlee/tipkit/internal/ui/common"
)

// DefaultMaxWidth is the tooltip box width used when none is configured.
const DefaultMaxWidth = 40

// Target describes one element that carries a tooltip.
type Target struct {
	ID      tooltip.ElementID
	Content string
	Options []tooltip.Option
}

// boundsFunc resolves a zone id to its screen rectangle.
type boundsFunc func(zoneID string) (uv.Rectangle, bool)

// Model hosts tooltip controllers inside a bubbletea program. It turns mouse
// messages into controller events using bubblezone hit zones and composes
// visible tooltips above the base view.
type Model struct {
	zones  *zone.Manager
	prefix string
	bounds boundsFunc
	// marked collects targets marked while rendering; drawn is the set from
	// the last scanned frame. Hit testing only considers drawn targets.
	marked map[tooltip.ElementID]bool
	drawn  map[tooltip.ElementID]bool

	sched    *delay.Scheduler
	registry *tooltip.Registry

	order       []tooltip.ElementID
	controllers map[tooltip.ElementID]*tooltip.Controller
	base        []tooltip.Option

	hovered tooltip.ElementID
	owner   tooltip.ElementID

	width, height int
	maxWidth      int
	styles        common.Styles

	pump *pump
}

// New creates a model on the real clock. Timer callbacks are queued until
// SetMsgSender connects the model to a running program.
func New(styles common.Styles) *Model {
	p := newPump()
	m := newModel(clock.Real{}, p.post, styles)
	m.pump = p
	return m
}

func newModel(c clock.Clock, post delay.PostFunc, styles common.Styles) *Model {
	m := &Model{
		zones:       zone.New(),
		sched:       delay.NewScheduler(c, post),
		registry:    tooltip.NewRegistry(),
		controllers: make(map[tooltip.ElementID]*tooltip.Controller),
		marked:      make(map[tooltip.ElementID]bool),
		drawn:       make(map[tooltip.ElementID]bool),
		maxWidth:    DefaultMaxWidth,
		styles:      styles,
	}
	m.prefix = m.zones.NewPrefix()
	m.bounds = m.zoneBounds
	return m
}

// SetMsgSender wires timer delivery to a running program, typically
// Program.Send.
func (m *Model) SetMsgSender(send func(tea.Msg)) {
	if m.pump != nil {
		m.pump.start(send)
	}
}

// Close tears down every controller and stops timer delivery.
func (m *Model) Close() {
	for _, id := range m.order {
		m.controllers[id].Close()
	}
	if m.pump != nil {
		m.pump.stop()
	}
	m.zones.Close()
}

// SetSize sets the screen size used to clamp tooltip placement.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles updates the tooltip styles (for theme changes).
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// SetMaxWidth sets the tooltip box width, borders included.
func (m *Model) SetMaxWidth(width int) {
	if width <= 0 {
		width = DefaultMaxWidth
	}
	m.maxWidth = width
}

// SetOptions applies opts to every controller and to targets added later.
func (m *Model) SetOptions(opts ...tooltip.Option) {
	m.base = append([]tooltip.Option(nil), opts...)
	for _, id := range m.order {
		m.controllers[id].SetOptions(opts...)
	}
}

// Add registers a target. Adding an existing id replaces its content and
// options.
func (m *Model) Add(t Target) *tooltip.Controller {
	opts := append(append([]tooltip.Option(nil), m.base...), t.Options...)
	if c, ok := m.controllers[t.ID]; ok {
		c.SetContent(t.Content)
		c.SetOptions(opts...)
		return c
	}
	c := tooltip.NewController(t.ID, t.Content, m.sched, m.registry, opts...)
	m.controllers[t.ID] = c
	m.order = append(m.order, t.ID)
	return c
}

// Remove closes and forgets the target with id.
func (m *Model) Remove(id tooltip.ElementID) {
	c, ok := m.controllers[id]
	if !ok {
		return
	}
	c.Close()
	delete(m.controllers, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.owner == id {
		m.hovered, m.owner = "", ""
	}
}

// Controller returns the controller for id.
func (m *Model) Controller(id tooltip.ElementID) (*tooltip.Controller, bool) {
	c, ok := m.controllers[id]
	return c, ok
}

// Hovered reports whether the pointer is over the label of target id.
func (m *Model) Hovered(id tooltip.ElementID) bool {
	return m.owner == id && m.hovered == LabelID(id)
}

// Shown returns the controller whose tooltip is currently up, if any.
func (m *Model) Shown() (*tooltip.Controller, bool) {
	for _, id := range m.order {
		c := m.controllers[id]
		if c.Phase().Up() {
			return c, true
		}
	}
	return nil, false
}

// LabelID is the element id of a target's label, the child that pointer
// events are dispatched on. The target's own id names its wrapper.
func LabelID(id tooltip.ElementID) tooltip.ElementID {
	return id + "/label"
}

// Mark wraps label in the target's hit zones: an inner zone around label and
// a wrapper zone that adds one cell of padding on each side.
func (m *Model) Mark(id tooltip.ElementID, label string) string {
	m.marked[id] = true
	inner := m.zones.Mark(m.zoneID(LabelID(id)), label)
	return m.zones.Mark(m.zoneID(id), " "+inner+" ")
}

// Scan records zone positions from the final view and strips the markers.
// Targets not marked since the previous Scan stop receiving pointer events.
func (m *Model) Scan(view string) string {
	m.drawn, m.marked = m.marked, make(map[tooltip.ElementID]bool, len(m.marked))
	return m.zones.Scan(view)
}

func (m *Model) zoneID(id tooltip.ElementID) string {
	return m.prefix + string(id)
}

func (m *Model) zoneBounds(zoneID string) (uv.Rectangle, bool) {
	info := m.zones.Get(zoneID)
	if info == nil || info.IsZero() {
		return uv.Rectangle{}, false
	}
	return uv.Rect(info.StartX, info.StartY, info.EndX-info.StartX+1, info.EndY-info.StartY+1), true
}

// hitTest returns the element under (x, y) and the target that owns it.
// Labels win over wrappers.
func (m *Model) hitTest(x, y int) (element, owner tooltip.ElementID) {
	pt := image.Pt(x, y)
	for _, id := range m.order {
		if !m.drawn[id] {
			continue
		}
		if r, ok := m.bounds(m.zoneID(LabelID(id))); ok && pt.In(r) {
			return LabelID(id), id
		}
	}
	for _, id := range m.order {
		if !m.drawn[id] {
			continue
		}
		if r, ok := m.bounds(m.zoneID(id)); ok && pt.In(r) {
			return id, id
		}
	}
	return "", ""
}

// Dispatch delivers ev to the controller for id.
func (m *Model) Dispatch(id tooltip.ElementID, ev tooltip.Event) {
	c, ok := m.controllers[id]
	if !ok {
		logging.Debug("hover: no target %s for %s", id, ev.Kind)
		return
	}
	c.Handle(ev)
}

// Update handles timer deliveries and mouse messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fireMsg:
		if msg.fn != nil {
			msg.fn()
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.MouseMotionMsg:
		m.handleMotion(msg.X, msg.Y)
	case tea.MouseClickMsg:
		m.handleButton(msg.X, msg.Y, msg.Button, tooltip.EventMouseDown)
	case tea.MouseReleaseMsg:
		m.handleButton(msg.X, msg.Y, msg.Button, tooltip.EventClick)
	case tea.MouseWheelMsg:
		m.Scroll()
	}
	return m, nil
}

func (m *Model) handleMotion(x, y int) {
	element, owner := m.hitTest(x, y)
	if element == m.hovered {
		return
	}
	prevElement, prevOwner := m.hovered, m.owner
	m.hovered, m.owner = element, owner

	if prevElement != "" {
		m.Dispatch(prevOwner, tooltip.Event{Kind: tooltip.EventPointerLeave, Target: prevElement})
	}
	if element != "" {
		m.Dispatch(owner, tooltip.Event{
			Kind:    tooltip.EventPointerEnter,
			Target:  element,
			Pointer: tooltip.Point{X: x, Y: y},
		})
	}
}

func (m *Model) handleButton(x, y int, button tea.MouseButton, kind tooltip.EventKind) {
	// Some terminals report releases without a button.
	if button != tea.MouseLeft && (kind != tooltip.EventClick || button != tea.MouseNone) {
		return
	}
	element, owner := m.hitTest(x, y)
	if element == "" {
		return
	}
	m.Dispatch(owner, tooltip.Event{Kind: kind, Target: element, Pointer: tooltip.Point{X: x, Y: y}})
}

// Scroll reports a scroll of the whole screen to every target. Wheel
// messages call it; hosts call it for keyboard scrolling. Controllers ignore
// it unless their tooltip is up.
func (m *Model) Scroll() {
	for _, id := range m.order {
		m.controllers[id].Scroll()
	}
}
