package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/tipkit/internal/config"
	"github.com/andyrewlee/tipkit/internal/keymap"
	"github.com/andyrewlee/tipkit/internal/logging"
	"github.com/andyrewlee/tipkit/internal/safego"
	"github.com/andyrewlee/tipkit/internal/tooltip"
	"github.com/andyrewlee/tipkit/internal/ui/common"
	"github.com/andyrewlee/tipkit/internal/ui/hover"
)

// New creates the demo app for cfg. The config watcher is optional; when it
// cannot start the app runs without hot reload.
func New(cfg *config.Config, version string) (*App, error) {
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	styles := common.StylesFor(common.ThemeID(cfg.UI.Theme))
	a := &App{
		version:  version,
		config:   cfg,
		keymap:   keymap.New(cfg.KeyMap),
		styles:   styles,
		hover:    hover.New(styles),
		toast:    common.NewToastModel(),
		toolbar:  demoToolbar(),
		rows:     demoRows(40),
		reloadCh: make(chan configReloadedMsg, 4),
	}
	a.toast.SetStyles(styles)
	a.applyTooltipConfig()

	onShow := tooltip.WithOnShow(func() { a.shows++ })
	for _, it := range append(append([]item(nil), a.toolbar...), a.rows...) {
		a.hover.Add(hover.Target{ID: it.id, Content: it.tip, Options: []tooltip.Option{onShow}})
	}

	watcher, err := config.NewWatcher(cfg.Paths, func(next *config.Config, err error) {
		a.queueReload(configReloadedMsg{cfg: next, err: err})
	})
	if err != nil {
		logging.Warn("Config watcher disabled: %v", err)
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		a.watcher = watcher
		a.stopWatcher = cancel
		safego.Go("config.watcher", func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				logging.Warn("Config watcher stopped: %v", err)
			}
		})
	}
	return a, nil
}

// Init starts waiting for config reloads.
func (a *App) Init() tea.Cmd {
	return a.waitForReload()
}

// SetMsgSender connects tooltip timers to the running program.
func (a *App) SetMsgSender(send func(tea.Msg)) {
	a.hover.SetMsgSender(send)
}

// waitForReload waits for the next config reload.
func (a *App) waitForReload() tea.Cmd {
	if a.watcher == nil || a.reloadCh == nil {
		return nil
	}
	return func() tea.Msg {
		return <-a.reloadCh
	}
}

// applyTooltipConfig pushes the current config to the tooltip host.
func (a *App) applyTooltipConfig() {
	a.hover.SetOptions(a.config.Tooltip.Options()...)
	a.hover.SetMaxWidth(a.config.Tooltip.MaxWidth)
}

// applyTheme rebuilds styles for the configured theme.
func (a *App) applyTheme() {
	a.styles = common.StylesFor(common.ThemeID(a.config.UI.Theme))
	a.hover.SetStyles(a.styles)
	a.toast.SetStyles(a.styles)
}

// queueReload hands msg to the update loop without blocking the watcher.
// When the channel is full the oldest pending reload is replaced, so the
// latest config on disk always reaches Update.
func (a *App) queueReload(msg configReloadedMsg) {
	for {
		select {
		case a.reloadCh <- msg:
			return
		default:
		}
		select {
		case <-a.reloadCh:
		default:
		}
	}
}
