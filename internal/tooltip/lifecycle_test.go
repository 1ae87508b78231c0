package tooltip

import (
	"testing"
	"time"
)

func TestLifecycleProgress(t *testing.T) {
	e := newEnv()
	c := e.controller("a", WithAnimation(100*time.Millisecond, 200*time.Millisecond))
	l := c.Lifecycle()
	if l.Progress() != 1 {
		t.Fatalf("idle lifecycle should report complete progress")
	}

	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	if l.Stage() != StageEntering || l.Progress() != 0 {
		t.Fatalf("expected entrance start, got %s %.2f", l.Stage(), l.Progress())
	}
	e.advance(50 * time.Millisecond)
	if got := l.Progress(); got < 0.49 || got > 0.51 {
		t.Fatalf("expected half-way entrance, got %.2f", got)
	}
	e.advance(50 * time.Millisecond)
	if l.Stage() != StageShown || l.Animated() {
		t.Fatalf("expected shown after entrance, got %s", l.Stage())
	}

	c.PointerLeave(child("a"))
	e.advance(300 * time.Millisecond)
	e.advance(50 * time.Millisecond)
	if got := l.Progress(); got < 0.24 || got > 0.26 {
		t.Fatalf("expected quarter-way exit, got %.2f", got)
	}
	e.advance(150 * time.Millisecond)
	if l.Stage() != StageUnmounted {
		t.Fatalf("expected unmounted after exit, got %s", l.Stage())
	}
}

func TestLifecycleHideDuringEntranceCancelsIt(t *testing.T) {
	e := newEnv()
	c := e.controller("a", WithHideOnClick(true))
	c.PointerEnter(child("a"), Point{})
	e.advance(300 * time.Millisecond)
	if c.Lifecycle().Stage() != StageEntering {
		t.Fatalf("expected entering")
	}
	c.Click()
	if c.Lifecycle().Stage() != StageExiting || c.Lifecycle().Animated() {
		t.Fatalf("immediate hide should exit without animation")
	}
	e.advance(0)
	if c.Lifecycle().Stage() != StageUnmounted {
		t.Fatalf("expected unmounted, got %s", c.Lifecycle().Stage())
	}
	e.advance(time.Second)
	expectPhase(t, c, PhaseHidden)
}
