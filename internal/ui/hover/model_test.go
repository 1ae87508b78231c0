package hover

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/tipkit/internal/clock"
	"github.com/andyrewlee/tipkit/internal/tooltip"
	"github.com/andyrewlee/tipkit/internal/ui/common"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestModel lays out two targets on the first row:
//
//	" save     open "
//	 ^wrapper  ^wrapper
//
// with labels one cell inside each wrapper.
func newTestModel(t *testing.T, opts ...tooltip.Option) (*Model, *clock.Fake) {
	t.Helper()
	c := clock.NewFake(epoch)
	m := newModel(c, nil, common.DefaultStyles())
	t.Cleanup(m.Close)
	m.SetSize(40, 10)

	rects := map[tooltip.ElementID]uv.Rectangle{
		"save":           uv.Rect(0, 0, 6, 1),
		LabelID("save"): uv.Rect(1, 0, 4, 1),
		"open":           uv.Rect(10, 0, 6, 1),
		LabelID("open"): uv.Rect(11, 0, 4, 1),
	}
	m.bounds = func(zoneID string) (uv.Rectangle, bool) {
		r, ok := rects[tooltip.ElementID(strings.TrimPrefix(zoneID, m.prefix))]
		return r, ok
	}

	m.Add(Target{ID: "save", Content: "Save the file", Options: opts})
	m.Add(Target{ID: "open", Content: "Open a file", Options: opts})
	m.Scan(m.Mark("save", "save") + "   " + m.Mark("open", "open"))
	return m, c
}

func phaseOf(t *testing.T, m *Model, id tooltip.ElementID) tooltip.Phase {
	t.Helper()
	c, ok := m.Controller(id)
	if !ok {
		t.Fatalf("no controller for %s", id)
	}
	return c.Phase()
}

func move(m *Model, x, y int) {
	m.Update(tea.MouseMotionMsg{X: x, Y: y})
}

func TestMotionShowsAfterDelay(t *testing.T) {
	m, c := newTestModel(t)

	move(m, 2, 0)
	if !m.Hovered("save") {
		t.Fatalf("expected save label to be hovered")
	}
	if got := phaseOf(t, m, "save"); got != tooltip.PhasePendingShow {
		t.Fatalf("expected pending-show, got %s", got)
	}
	if len(m.Layers()) != 0 {
		t.Fatalf("nothing should render before the delay")
	}

	c.Advance(300 * time.Millisecond)
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseVisible {
		t.Fatalf("expected visible, got %s", got)
	}
	layers := m.Layers()
	if len(layers) != 1 {
		t.Fatalf("expected one layer, got %d", len(layers))
	}
	if b := layers[0].Bounds(); b.Min.Y != 1 {
		t.Fatalf("expected tooltip below the label, got %v", b)
	}

	c.Advance(150 * time.Millisecond)
	if sig := mustController(t, m, "save").Signal(); sig.Stage != tooltip.StageShown || sig.Animated {
		t.Fatalf("expected entrance to settle: %+v", sig)
	}
}

func TestWrapperPaddingDoesNotStartCycle(t *testing.T) {
	m, c := newTestModel(t)

	move(m, 0, 0)
	c.Advance(time.Second)
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseHidden {
		t.Fatalf("enter on the wrapper padding should be ignored, got %s", got)
	}

	move(m, 1, 0)
	if got := phaseOf(t, m, "save"); got != tooltip.PhasePendingShow {
		t.Fatalf("expected label enter to start a cycle, got %s", got)
	}
}

func TestMovingBetweenTargetsSkipsDelay(t *testing.T) {
	m, c := newTestModel(t)

	move(m, 2, 0)
	c.Advance(300 * time.Millisecond)
	move(m, 30, 5)
	if got := phaseOf(t, m, "save"); got != tooltip.PhasePendingHide {
		t.Fatalf("expected pending-hide after leaving, got %s", got)
	}

	move(m, 12, 0)
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseExiting {
		t.Fatalf("entering another target should flush the hide, got %s", got)
	}
	c.Advance(0)
	if got := phaseOf(t, m, "open"); got != tooltip.PhaseVisible {
		t.Fatalf("expected open to show at once, got %s", got)
	}
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseHidden {
		t.Fatalf("expected save hidden, got %s", got)
	}
	if !mustController(t, m, "open").Signal().ImmediateShow {
		t.Fatalf("expected immediate show")
	}
}

func TestWheelHidesShownTooltip(t *testing.T) {
	m, c := newTestModel(t)

	move(m, 2, 0)
	c.Advance(300 * time.Millisecond)
	m.Update(tea.MouseWheelMsg{X: 2, Y: 0, Button: tea.MouseWheelDown})

	if got := phaseOf(t, m, "save"); got != tooltip.PhaseExiting {
		t.Fatalf("expected exiting after scroll, got %s", got)
	}
	if len(m.Layers()) != 0 {
		t.Fatalf("immediate hide should not draw an exit")
	}
	c.Advance(0)
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseHidden {
		t.Fatalf("expected hidden, got %s", got)
	}
}

func TestClickAndPressMapToOptions(t *testing.T) {
	m, c := newTestModel(t, tooltip.WithHideOnClick(true))

	move(m, 2, 0)
	c.Advance(300 * time.Millisecond)

	m.Update(tea.MouseClickMsg{X: 2, Y: 0, Button: tea.MouseLeft})
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseVisible {
		t.Fatalf("press should not hide without hide-on-mousedown, got %s", got)
	}

	m.Update(tea.MouseReleaseMsg{X: 2, Y: 0, Button: tea.MouseLeft})
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseExiting {
		t.Fatalf("release should hide with hide-on-click, got %s", got)
	}
}

func TestRightButtonIgnored(t *testing.T) {
	m, c := newTestModel(t, tooltip.WithHideOnMouseDown(true))

	move(m, 2, 0)
	c.Advance(300 * time.Millisecond)
	m.Update(tea.MouseClickMsg{X: 2, Y: 0, Button: tea.MouseRight})
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseVisible {
		t.Fatalf("right button should be ignored, got %s", got)
	}
}

func TestFireMsgRunsCallback(t *testing.T) {
	m, _ := newTestModel(t)
	ran := false
	m.Update(fireMsg{fn: func() { ran = true }})
	if !ran {
		t.Fatalf("expected fire message to run its callback")
	}
}

func TestSetOptionsReachesExistingTargets(t *testing.T) {
	m, c := newTestModel(t)
	m.SetOptions(tooltip.WithDelay(50 * time.Millisecond))

	move(m, 2, 0)
	c.Advance(50 * time.Millisecond)
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseVisible {
		t.Fatalf("expected new delay to apply, got %s", got)
	}

	m.Add(Target{ID: "late", Content: "added later"})
	if d := mustController(t, m, "late").Options().Delay; d != 50*time.Millisecond {
		t.Fatalf("expected base options on new targets, got %s", d)
	}
}

func TestRemoveClearsHover(t *testing.T) {
	m, c := newTestModel(t)
	move(m, 2, 0)
	m.Remove("save")
	if m.Hovered("save") {
		t.Fatalf("removed target should not stay hovered")
	}
	if _, ok := m.Controller("save"); ok {
		t.Fatalf("expected controller to be gone")
	}
	c.Advance(time.Second)
	if c.Pending() != 0 {
		t.Fatalf("expected no timers left, got %d", c.Pending())
	}
}

func TestUndrawnTargetIgnored(t *testing.T) {
	m, c := newTestModel(t)
	m.Scan(m.Mark("open", "open"))

	move(m, 2, 0)
	c.Advance(time.Second)
	if got := phaseOf(t, m, "save"); got != tooltip.PhaseHidden {
		t.Fatalf("target missing from the last frame should not react, got %s", got)
	}
}

func TestShownReturnsVisibleController(t *testing.T) {
	m, c := newTestModel(t)
	if _, ok := m.Shown(); ok {
		t.Fatalf("expected nothing shown")
	}
	move(m, 12, 0)
	c.Advance(300 * time.Millisecond)
	shown, ok := m.Shown()
	if !ok || shown.ID() != "open" {
		t.Fatalf("expected open to be shown")
	}
}

func TestMarkAndScanStripMarkers(t *testing.T) {
	m := newModel(clock.NewFake(epoch), nil, common.DefaultStyles())
	defer m.Close()

	view := m.Scan(m.Mark("save", "Save"))
	if got := ansi.Strip(view); got != " Save " {
		t.Fatalf("expected markers stripped, got %q", got)
	}
}

func TestPumpQueuesUntilSenderAttached(t *testing.T) {
	p := newPump()
	defer p.stop()

	ran := make(chan struct{})
	p.post(func() { close(ran) })

	sent := make(chan tea.Msg, 1)
	p.start(func(msg tea.Msg) { sent <- msg })

	select {
	case msg := <-sent:
		fire, ok := msg.(fireMsg)
		if !ok {
			t.Fatalf("expected fireMsg, got %T", msg)
		}
		fire.fn()
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for queued callback")
	}
	<-ran
}

func TestPumpPostAfterStopDoesNotBlock(t *testing.T) {
	p := newPump()
	for i := 0; i < cap(p.queue); i++ {
		p.post(func() {})
	}
	p.stop()

	done := make(chan struct{})
	go func() {
		p.post(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("post blocked after stop")
	}
}

func mustController(t *testing.T, m *Model, id tooltip.ElementID) *tooltip.Controller {
	t.Helper()
	c, ok := m.Controller(id)
	if !ok {
		t.Fatalf("no controller for %s", id)
	}
	return c
}
