package app

import (
	"context"
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/tipkit/internal/config"
	"github.com/andyrewlee/tipkit/internal/keymap"
	"github.com/andyrewlee/tipkit/internal/tooltip"
	"github.com/andyrewlee/tipkit/internal/ui/common"
	"github.com/andyrewlee/tipkit/internal/ui/hover"
)

// delayStep is how much one delay key press changes the tooltip delay.
const delayStep = 50

// positions is the cycle order for the position key.
var positions = []tooltip.Position{
	tooltip.PositionBottom,
	tooltip.PositionTop,
	tooltip.PositionLeft,
	tooltip.PositionRight,
	tooltip.PositionMouse,
}

// configReloadedMsg carries a config reloaded from disk.
type configReloadedMsg struct {
	cfg *config.Config
	err error
}

// App is the root Bubbletea model of the demo.
type App struct {
	version string

	config *config.Config
	keymap keymap.KeyMap
	styles common.Styles

	hover *hover.Model
	toast *common.ToastModel

	toolbar []item
	rows    []item
	offset  int
	shows   int

	width, height int
	canvas        *lipgloss.Canvas
	quitting      bool

	watcher      *config.Watcher
	reloadCh     chan configReloadedMsg
	stopWatcher  context.CancelFunc
	shutdownOnce sync.Once
}
