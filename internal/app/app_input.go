package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/tipkit/internal/keymap"
	"github.com/andyrewlee/tipkit/internal/logging"
	"github.com/andyrewlee/tipkit/internal/perf"
	"github.com/andyrewlee/tipkit/internal/tooltip"
	"github.com/andyrewlee/tipkit/internal/ui/common"
)

// Update handles all messages with panic recovery.
func (a *App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("panic in app.Update: %v\n%s", r, debug.Stack())
			model = a
			cmd = a.toast.ShowError(fmt.Sprintf("internal error: %v", r))
		}
	}()
	return a.update(msg)
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer perf.Time("update")()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.clampOffset()
	case tea.KeyPressMsg:
		return a, a.handleKey(msg)
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			a.scroll(-1)
		case tea.MouseWheelDown:
			a.scroll(1)
		}
	case configReloadedMsg:
		return a, tea.Batch(a.handleReload(msg), a.waitForReload())
	case common.ToastDismissed:
		a.toast, _ = a.toast.Update(msg)
		return a, nil
	}

	var cmd tea.Cmd
	a.hover, cmd = a.hover.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	km := a.keymap
	t := &a.config.Tooltip

	switch {
	case key.Matches(msg, km.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, km.Help):
		a.config.UI.ShowKeymapHints = !a.config.UI.ShowKeymapHints
		if err := a.config.SaveUISettings(); err != nil {
			logging.Warn("save ui settings: %v", err)
		}
		return nil
	case key.Matches(msg, km.Copy):
		return a.copyShown()
	case key.Matches(msg, km.ScrollUp):
		a.scroll(-1)
		a.hover.Scroll()
		return nil
	case key.Matches(msg, km.ScrollDown):
		a.scroll(1)
		a.hover.Scroll()
		return nil
	case key.Matches(msg, km.ToggleClick):
		t.HideOnClick = !t.HideOnClick
		return a.tooltipChanged(fmt.Sprintf("hide on click: %t", t.HideOnClick))
	case key.Matches(msg, km.ToggleMouseDown):
		t.HideOnMouseDown = !t.HideOnMouseDown
		return a.tooltipChanged(fmt.Sprintf("hide on mousedown: %t", t.HideOnMouseDown))
	case key.Matches(msg, km.DelayUp):
		t.DelayMs += delayStep
		return a.tooltipChanged(fmt.Sprintf("delay: %dms", t.DelayMs))
	case key.Matches(msg, km.DelayDown):
		t.DelayMs = max(0, t.DelayMs-delayStep)
		return a.tooltipChanged(fmt.Sprintf("delay: %dms", t.DelayMs))
	case key.Matches(msg, km.CyclePosition):
		t.Position = string(nextPosition(tooltip.Position(t.Position)))
		return a.tooltipChanged("position: " + t.Position)
	case key.Matches(msg, km.ToggleTruncate):
		t.Truncate = !t.Truncate
		return a.tooltipChanged(fmt.Sprintf("truncate: %t", t.Truncate))
	}
	return nil
}

// tooltipChanged applies and persists the tooltip config after a key press.
func (a *App) tooltipChanged(status string) tea.Cmd {
	a.applyTooltipConfig()
	if err := a.config.SaveTooltip(); err != nil {
		logging.Warn("save tooltip settings: %v", err)
		return a.toast.ShowError("could not save settings")
	}
	return a.toast.ShowInfo(status)
}

func (a *App) copyShown() tea.Cmd {
	c, ok := a.hover.Shown()
	if !ok {
		return a.toast.ShowInfo("no tooltip to copy")
	}
	if err := common.CopyToClipboard(c.Content()); err != nil {
		if errors.Is(err, common.ErrNothingToCopy) {
			return a.toast.ShowInfo("no tooltip to copy")
		}
		logging.Warn("copy tooltip: %v", err)
		return a.toast.ShowError("copy failed")
	}
	return a.toast.ShowSuccess("copied tooltip")
}

func (a *App) handleReload(msg configReloadedMsg) tea.Cmd {
	if msg.err != nil {
		return a.toast.ShowError("config: " + msg.err.Error())
	}
	next := msg.cfg
	changed := next.Tooltip != a.config.Tooltip || next.UI != a.config.UI
	a.config.Tooltip = next.Tooltip
	a.config.UI = next.UI
	a.config.KeyMap = next.KeyMap
	a.config.LogLevel = next.LogLevel
	a.keymap = keymap.New(next.KeyMap)
	if !changed {
		return nil
	}
	a.applyTooltipConfig()
	a.applyTheme()
	return a.toast.Show("config reloaded", common.ToastInfo, 2*time.Second)
}

func nextPosition(p tooltip.Position) tooltip.Position {
	for i, pos := range positions {
		if pos == p {
			return positions[(i+1)%len(positions)]
		}
	}
	return positions[0]
}

// scroll moves the list window by delta rows.
func (a *App) scroll(delta int) {
	a.offset += delta
	a.clampOffset()
}

func (a *App) clampOffset() {
	maxOffset := len(a.rows) - a.listHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	a.offset = min(max(a.offset, 0), maxOffset)
}
