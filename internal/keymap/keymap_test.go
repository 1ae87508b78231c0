package keymap

import (
	"testing"

	"github.com/andyrewlee/tipkit/internal/config"
)

func TestDefaultsApplied(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if got := PrimaryKey(km.Quit); got != "q" {
		t.Fatalf("expected default quit key q, got %q", got)
	}
	if got := km.DelayUp.Help().Key; got != "+/=" {
		t.Fatalf("unexpected help key %q", got)
	}
	if len(km.Hints()) == 0 {
		t.Fatalf("expected footer hints")
	}
}

func TestOverridesApplied(t *testing.T) {
	km := New(config.KeyMapConfig{Bindings: map[string][]string{
		"copy_tooltip": {"ctrl+y"},
	}})
	if got := BindingHint(km.Copy); got != "ctrl+y" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := BindingHint(km.Quit); got != "q" {
		t.Fatalf("unrelated binding changed: %q", got)
	}
}
