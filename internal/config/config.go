package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andyrewlee/tipkit/internal/tooltip"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// TooltipConfig is the on-disk form of the tooltip options shared by every
// target in the demo.
type TooltipConfig struct {
	DelayMs         int    `json:"delay_ms"`
	HideOnClick     bool   `json:"hide_on_click"`
	HideOnMouseDown bool   `json:"hide_on_mousedown"`
	Position        string `json:"position"`
	MousePosition   string `json:"mouse_position"`
	Truncate        bool   `json:"truncate"`
	MaxWidth        int    `json:"max_width"`
	EnterMs         int    `json:"enter_ms"`
	ExitMs          int    `json:"exit_ms"`
}

func defaultTooltipConfig() TooltipConfig {
	return TooltipConfig{
		DelayMs:       int(tooltip.DefaultDelay / time.Millisecond),
		Position:      string(tooltip.PositionBottom),
		MousePosition: string(tooltip.PositionBottom),
		MaxWidth:      40,
		EnterMs:       int(tooltip.DefaultEnterDuration / time.Millisecond),
		ExitMs:        int(tooltip.DefaultExitDuration / time.Millisecond),
	}
}

// Options converts the config into controller options.
func (t TooltipConfig) Options() []tooltip.Option {
	return []tooltip.Option{
		tooltip.WithDelay(time.Duration(t.DelayMs) * time.Millisecond),
		tooltip.WithHideOnClick(t.HideOnClick),
		tooltip.WithHideOnMouseDown(t.HideOnMouseDown),
		tooltip.WithPosition(tooltip.Position(t.Position)),
		tooltip.WithMousePosition(tooltip.Position(t.MousePosition)),
		tooltip.WithTruncate(t.Truncate),
		tooltip.WithAnimation(
			time.Duration(t.EnterMs)*time.Millisecond,
			time.Duration(t.ExitMs)*time.Millisecond,
		),
	}
}

// Config holds the application configuration
type Config struct {
	Paths    *Paths
	Tooltip  TooltipConfig
	KeyMap   KeyMapConfig
	UI       UISettings
	LogLevel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfigAt(paths), nil
}

func defaultConfigAt(paths *Paths) *Config {
	return &Config{
		Paths:    paths,
		Tooltip:  defaultTooltipConfig(),
		KeyMap:   KeyMapConfig{},
		UI:       defaultUISettings(),
		LogLevel: "info",
	}
}

// Load loads config overrides from ~/.tipkit/config.json if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths)
}

// LoadFrom applies the config file under paths over the defaults. A missing
// file yields the defaults.
func LoadFrom(paths *Paths) (*Config, error) {
	cfg := defaultConfigAt(paths)

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user struct {
		KeyMap   KeyMapConfig `json:"keymap,omitempty"`
		LogLevel *string      `json:"log_level"`
		Tooltip  struct {
			DelayMs         *int    `json:"delay_ms"`
			HideOnClick     *bool   `json:"hide_on_click"`
			HideOnMouseDown *bool   `json:"hide_on_mousedown"`
			Position        *string `json:"position"`
			MousePosition   *string `json:"mouse_position"`
			Truncate        *bool   `json:"truncate"`
			MaxWidth        *int    `json:"max_width"`
			EnterMs         *int    `json:"enter_ms"`
			ExitMs          *int    `json:"exit_ms"`
		} `json:"tooltip"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", paths.ConfigPath, err)
	}

	if len(user.KeyMap.Bindings) > 0 {
		cfg.KeyMap = user.KeyMap
	}
	if user.LogLevel != nil {
		cfg.LogLevel = *user.LogLevel
	}

	t := &cfg.Tooltip
	u := user.Tooltip
	if u.DelayMs != nil && *u.DelayMs >= 0 {
		t.DelayMs = *u.DelayMs
	}
	if u.HideOnClick != nil {
		t.HideOnClick = *u.HideOnClick
	}
	if u.HideOnMouseDown != nil {
		t.HideOnMouseDown = *u.HideOnMouseDown
	}
	if u.Position != nil && tooltip.Position(*u.Position).Valid() {
		t.Position = *u.Position
	}
	if u.MousePosition != nil && tooltip.Position(*u.MousePosition).Valid() {
		t.MousePosition = *u.MousePosition
	}
	if u.Truncate != nil {
		t.Truncate = *u.Truncate
	}
	if u.MaxWidth != nil && *u.MaxWidth > 0 {
		t.MaxWidth = *u.MaxWidth
	}
	if u.EnterMs != nil && *u.EnterMs >= 0 {
		t.EnterMs = *u.EnterMs
	}
	if u.ExitMs != nil && *u.ExitMs >= 0 {
		t.ExitMs = *u.ExitMs
	}

	cfg.UI = loadUISettings(paths.ConfigPath)
	return cfg, nil
}
