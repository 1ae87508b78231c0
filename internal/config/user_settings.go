package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// UISettings stores user-facing display preferences.
type UISettings struct {
	ShowKeymapHints bool
	Theme           string // "dark" or "light"
}

func defaultUISettings() UISettings {
	return UISettings{
		ShowKeymapHints: true,
		Theme:           "dark",
	}
}

func loadUISettings(path string) UISettings {
	settings := defaultUISettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return settings
	}

	var raw struct {
		UI struct {
			ShowKeymapHints *bool   `json:"show_keymap_hints"`
			Theme           *string `json:"theme"`
		} `json:"ui"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return settings
	}
	if raw.UI.ShowKeymapHints != nil {
		settings.ShowKeymapHints = *raw.UI.ShowKeymapHints
	}
	if raw.UI.Theme != nil {
		settings.Theme = *raw.UI.Theme
	}
	return settings
}

// patchSection rewrites one top-level object in the config file, keeping
// every other key as it was on disk.
func patchSection(path, section string, values map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	payload := map[string]any{}
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &payload)
	}

	obj, ok := payload[section].(map[string]any)
	if !ok || obj == nil {
		obj = map[string]any{}
	}
	for k, v := range values {
		obj[k] = v
	}
	payload[section] = obj

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveUISettings persists UI settings to the config file.
func (c *Config) SaveUISettings() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	return patchSection(c.Paths.ConfigPath, "ui", map[string]any{
		"show_keymap_hints": c.UI.ShowKeymapHints,
		"theme":             c.UI.Theme,
	})
}

// SaveTooltip persists the tooltip settings the demo can change at runtime.
func (c *Config) SaveTooltip() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	return patchSection(c.Paths.ConfigPath, "tooltip", map[string]any{
		"delay_ms":          c.Tooltip.DelayMs,
		"hide_on_click":     c.Tooltip.HideOnClick,
		"hide_on_mousedown": c.Tooltip.HideOnMouseDown,
		"position":          c.Tooltip.Position,
		"truncate":          c.Tooltip.Truncate,
	})
}
