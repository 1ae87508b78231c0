package harness

import (
	"strings"
	"testing"
	"time"
)

func TestParseScenario(t *testing.T) {
	s, err := Parse([]byte(`
name: parse
defaults:
  delay: 120ms
targets:
  - id: a
    content: hello
    hide_on_click: true
    exit: 0s
steps:
  - at: 50ms
    event: enter
    target: a
    x: 3
    y: 4
settle: 2s
`), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != "parse" || s.Settle != 2*time.Second {
		t.Fatalf("unexpected scenario header: %+v", s)
	}
	if s.Defaults.Delay == nil || *s.Defaults.Delay != 120*time.Millisecond {
		t.Fatalf("expected default delay 120ms, got %v", s.Defaults.Delay)
	}
	tgt := s.Targets[0]
	if tgt.HideOnClick == nil || !*tgt.HideOnClick || tgt.Exit == nil || *tgt.Exit != 0 {
		t.Fatalf("expected inline target options, got %+v", tgt.TargetOptions)
	}
	if st := s.Steps[0]; st.At != 50*time.Millisecond || st.X != 3 || st.Y != 4 {
		t.Fatalf("unexpected step: %+v", st)
	}
}

func TestParseDefaultsNameToSource(t *testing.T) {
	s, err := Parse([]byte("targets: [{id: a, content: x}]\n"), "unnamed.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != "unnamed.yaml" {
		t.Fatalf("expected source as name, got %q", s.Name)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("targets: [{id: a, content: x}]\nsteps: []\nwhen: now\n"), "bad.yaml")
	if err == nil || !strings.Contains(err.Error(), "when") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	s := &Scenario{
		Targets: []Target{{ID: "a"}, {ID: "a"}, {ID: "b/c"}, {ID: " "}},
		Steps: []Step{
			{At: time.Second, Event: "enter", Target: "a"},
			{At: 0, Event: "hover", Target: "a"},
			{At: 2 * time.Second, Event: "click"},
			{At: 3 * time.Second, Event: "leave", Target: "zzz"},
			{At: 4 * time.Second},
			{At: 5 * time.Second, Expect: map[string]string{"a": "shown", "q": "hidden"}},
		},
		Final: map[string]string{"a": "gone"},
	}
	errs := s.Validate()
	joined := strings.Join(errs, "\n")
	for _, want := range []string{
		`targets[1].id duplicate "a"`,
		`targets[2].id "b/c" must not contain '/'`,
		"targets[3].id is required",
		"steps[1].at 0s is before the previous step",
		`steps[1].event "hover"`,
		"steps[2].target is required for click",
		`steps[3].target "zzz" is not declared`,
		"steps[4] needs an event or an expect",
		`steps[5].expect.a: unknown phase "shown"`,
		`steps[5].expect names undeclared target "q"`,
		`final.a: unknown phase "gone"`,
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in:\n%s", want, joined)
		}
	}
}

func TestValidateScrollWithoutTarget(t *testing.T) {
	s := &Scenario{
		Targets: []Target{{ID: "a", Content: "x"}},
		Steps:   []Step{{Event: "scroll"}},
	}
	if errs := s.Validate(); len(errs) != 0 {
		t.Fatalf("expected scroll without target to be valid, got %v", errs)
	}
}

func TestValidateRequiresTargets(t *testing.T) {
	if errs := (&Scenario{}).Validate(); len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
}
