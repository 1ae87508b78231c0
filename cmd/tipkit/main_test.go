package main

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func resetMouseFilterState() {
	lastMouseMotionEvent = time.Time{}
	lastMouseWheelEvent = time.Time{}
	lastMouseX = 0
	lastMouseY = 0
}

func TestMotionToNewCellAlwaysPasses(t *testing.T) {
	resetMouseFilterState()

	for i := 1; i <= 5; i++ {
		if mouseEventFilter(nil, tea.MouseMotionMsg{X: i, Y: 1}) == nil {
			t.Fatalf("motion to a new cell was dropped at step %d", i)
		}
	}
}

func TestRepeatedMotionIsThrottled(t *testing.T) {
	resetMouseFilterState()

	motion := tea.MouseMotionMsg{X: 4, Y: 4}
	if mouseEventFilter(nil, motion) == nil {
		t.Fatalf("expected first motion to pass")
	}
	if mouseEventFilter(nil, motion) != nil {
		t.Fatalf("expected immediate repeat at the same cell to be dropped")
	}
}

func TestMouseWheelNotThrottledByMotion(t *testing.T) {
	resetMouseFilterState()

	motion := tea.MouseMotionMsg{X: 10, Y: 10, Button: tea.MouseLeft}
	if mouseEventFilter(nil, motion) == nil {
		t.Fatalf("expected motion event to pass through")
	}

	wheel := tea.MouseWheelMsg{X: 10, Y: 10, Button: tea.MouseWheelDown}
	if mouseEventFilter(nil, wheel) == nil {
		t.Fatalf("expected wheel event to pass through after motion")
	}
	if mouseEventFilter(nil, wheel) != nil {
		t.Fatalf("expected wheel burst to be throttled")
	}
}

func TestShouldLaunchTUI(t *testing.T) {
	if !shouldLaunchTUI(true, true) {
		t.Fatalf("expected TUI with both TTYs")
	}
	if shouldLaunchTUI(true, false) || shouldLaunchTUI(false, true) {
		t.Fatalf("expected no TUI without both TTYs")
	}
}
