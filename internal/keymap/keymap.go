package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/tipkit/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionQuit            Action = "quit"
	ActionHelp            Action = "help"
	ActionCopy            Action = "copy_tooltip"
	ActionToggleClick     Action = "toggle_hide_on_click"
	ActionToggleMouseDown Action = "toggle_hide_on_mousedown"
	ActionDelayUp         Action = "delay_up"
	ActionDelayDown       Action = "delay_down"
	ActionCyclePosition   Action = "cycle_position"
	ActionToggleTruncate  Action = "toggle_truncate"
	ActionScrollUp        Action = "scroll_up"
	ActionScrollDown      Action = "scroll_down"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the demo.
type KeyMap struct {
	Quit            key.Binding
	Help            key.Binding
	Copy            key.Binding
	ToggleClick     key.Binding
	ToggleMouseDown key.Binding
	DelayUp         key.Binding
	DelayDown       key.Binding
	CyclePosition   key.Binding
	ToggleTruncate  key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding
}

var defaults = []bindingDef{
	{action: ActionQuit, keys: []string{"q", "ctrl+c"}, desc: "quit"},
	{action: ActionHelp, keys: []string{"?"}, desc: "toggle hints"},
	{action: ActionCopy, keys: []string{"y"}, desc: "copy tooltip"},
	{action: ActionToggleClick, keys: []string{"c"}, desc: "hide on click"},
	{action: ActionToggleMouseDown, keys: []string{"m"}, desc: "hide on mousedown"},
	{action: ActionDelayUp, keys: []string{"+", "="}, desc: "delay +50ms"},
	{action: ActionDelayDown, keys: []string{"-"}, desc: "delay -50ms"},
	{action: ActionCyclePosition, keys: []string{"p"}, desc: "cycle position"},
	{action: ActionToggleTruncate, keys: []string{"t"}, desc: "truncate"},
	{action: ActionScrollUp, keys: []string{"k", "up"}, desc: "scroll up"},
	{action: ActionScrollDown, keys: []string{"j", "down"}, desc: "scroll down"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	b := make(map[Action]key.Binding, len(defaults))
	for _, def := range defaults {
		b[def.action] = bindingFromDef(cfg, def)
	}
	return KeyMap{
		Quit:            b[ActionQuit],
		Help:            b[ActionHelp],
		Copy:            b[ActionCopy],
		ToggleClick:     b[ActionToggleClick],
		ToggleMouseDown: b[ActionToggleMouseDown],
		DelayUp:         b[ActionDelayUp],
		DelayDown:       b[ActionDelayDown],
		CyclePosition:   b[ActionCyclePosition],
		ToggleTruncate:  b[ActionToggleTruncate],
		ScrollUp:        b[ActionScrollUp],
		ScrollDown:      b[ActionScrollDown],
	}
}

// Hints returns the bindings shown in the footer, in display order.
func (km KeyMap) Hints() []key.Binding {
	return []key.Binding{
		km.DelayDown, km.DelayUp, km.ToggleClick, km.ToggleMouseDown,
		km.CyclePosition, km.ToggleTruncate, km.Copy, km.Help, km.Quit,
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	if k := PrimaryKey(binding); k != "" {
		return k
	}
	return binding.Help().Key
}
