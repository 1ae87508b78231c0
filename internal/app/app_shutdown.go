package app

import "github.com/andyrewlee/tipkit/internal/perf"

// Shutdown releases resources that may outlive the Bubble Tea program.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.stopWatcher != nil {
			a.stopWatcher()
		}
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		if a.hover != nil {
			a.hover.Close()
		}
		perf.Flush("shutdown")
	})
}
