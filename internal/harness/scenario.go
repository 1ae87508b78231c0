package harness

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/tipkit/internal/tooltip"
)

// DefaultSettle is how long a scenario keeps running after its last step.
const DefaultSettle = time.Second

// Scenario is a scripted sequence of pointer events against named tooltips.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Defaults    TargetOptions `yaml:"defaults,omitempty"`
	Targets     []Target      `yaml:"targets"`
	Steps       []Step        `yaml:"steps"`
	// Settle is extra time run after the last step; zero means DefaultSettle.
	Settle time.Duration `yaml:"settle,omitempty"`
	// Final maps target ids to the phase expected once the run settles.
	Final map[string]string `yaml:"final,omitempty"`
}

// TargetOptions are the tooltip options a scenario can set. Nil fields keep
// the controller defaults.
type TargetOptions struct {
	Delay           *time.Duration `yaml:"delay,omitempty"`
	HideOnClick     *bool          `yaml:"hide_on_click,omitempty"`
	HideOnMouseDown *bool          `yaml:"hide_on_mousedown,omitempty"`
	Enter           *time.Duration `yaml:"enter,omitempty"`
	Exit            *time.Duration `yaml:"exit,omitempty"`
}

// Target declares one tooltip instance.
type Target struct {
	ID            string `yaml:"id"`
	Content       string `yaml:"content"`
	TargetOptions `yaml:",inline"`
}

// Step fires one event at At, measured from the start of the run, and then
// checks Expect. A step with no event only checks.
type Step struct {
	At     time.Duration `yaml:"at"`
	Event  string        `yaml:"event,omitempty"`
	Target string        `yaml:"target,omitempty"`
	// Element overrides the element the event is dispatched on. It defaults
	// to the target's label; naming the target itself dispatches on its
	// wrapper.
	Element string            `yaml:"element,omitempty"`
	X       int               `yaml:"x,omitempty"`
	Y       int               `yaml:"y,omitempty"`
	Expect  map[string]string `yaml:"expect,omitempty"`
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte, source string) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse YAML in %q: %w", source, err)
	}
	if s.Name == "" {
		s.Name = source
	}
	if errs := s.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid scenario in %q: %s", source, strings.Join(errs, "; "))
	}
	return &s, nil
}

// Validate returns every problem found in s.
func (s *Scenario) Validate() []string {
	var errs []string

	if len(s.Targets) == 0 {
		errs = append(errs, "targets must contain at least one target")
	}
	ids := map[string]struct{}{}
	for i, t := range s.Targets {
		id := strings.TrimSpace(t.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Sprintf("targets[%d].id is required", i))
		case strings.Contains(id, "/"):
			errs = append(errs, fmt.Sprintf("targets[%d].id %q must not contain '/'", i, id))
		default:
			if _, dup := ids[id]; dup {
				errs = append(errs, fmt.Sprintf("targets[%d].id duplicate %q", i, id))
			}
			ids[id] = struct{}{}
		}
	}

	var last time.Duration
	for i, st := range s.Steps {
		if st.At < last {
			errs = append(errs, fmt.Sprintf("steps[%d].at %s is before the previous step", i, st.At))
		}
		last = st.At

		if st.Event != "" {
			kind, ok := tooltip.ParseEventKind(st.Event)
			if !ok {
				errs = append(errs, fmt.Sprintf("steps[%d].event %q is not one of enter,leave,click,mousedown,scroll", i, st.Event))
			}
			if ok && kind != tooltip.EventScroll && st.Target == "" {
				errs = append(errs, fmt.Sprintf("steps[%d].target is required for %s", i, st.Event))
			}
		} else if len(st.Expect) == 0 {
			errs = append(errs, fmt.Sprintf("steps[%d] needs an event or an expect", i))
		}
		if st.Target != "" {
			if _, ok := ids[st.Target]; !ok {
				errs = append(errs, fmt.Sprintf("steps[%d].target %q is not declared", i, st.Target))
			}
		}
		errs = append(errs, validateExpect(fmt.Sprintf("steps[%d].expect", i), st.Expect, ids)...)
	}
	errs = append(errs, validateExpect("final", s.Final, ids)...)
	return errs
}

func validateExpect(field string, expect map[string]string, ids map[string]struct{}) []string {
	var errs []string
	for _, id := range sortedKeys(expect) {
		if _, ok := ids[id]; !ok {
			errs = append(errs, fmt.Sprintf("%s names undeclared target %q", field, id))
		}
		if _, ok := tooltip.ParsePhase(expect[id]); !ok {
			errs = append(errs, fmt.Sprintf("%s.%s: unknown phase %q", field, id, expect[id]))
		}
	}
	return errs
}

// options converts o to controller options, leaving unset fields alone.
func (o TargetOptions) options() []tooltip.Option {
	var opts []tooltip.Option
	if o.Delay != nil {
		opts = append(opts, tooltip.WithDelay(*o.Delay))
	}
	if o.HideOnClick != nil {
		opts = append(opts, tooltip.WithHideOnClick(*o.HideOnClick))
	}
	if o.HideOnMouseDown != nil {
		opts = append(opts, tooltip.WithHideOnMouseDown(*o.HideOnMouseDown))
	}
	if o.Enter != nil || o.Exit != nil {
		enter, exit := tooltip.DefaultEnterDuration, tooltip.DefaultExitDuration
		if o.Enter != nil {
			enter = *o.Enter
		}
		if o.Exit != nil {
			exit = *o.Exit
		}
		opts = append(opts, tooltip.WithAnimation(enter, exit))
	}
	return opts
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
