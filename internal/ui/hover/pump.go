package hover

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/tipkit/internal/safego"
)

// fireMsg carries a timer callback onto the Update goroutine.
type fireMsg struct {
	fn func()
}

// pump moves timer callbacks from runtime goroutines into the program's
// message queue. Callbacks posted before the program is attached wait in the
// buffer; a full buffer blocks the posting timer goroutine until the drain
// catches up or the pump stops.
type pump struct {
	queue     chan tea.Msg
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func newPump() *pump {
	return &pump{
		queue: make(chan tea.Msg, 256),
		done:  make(chan struct{}),
	}
}

func (p *pump) post(fn func()) {
	select {
	case p.queue <- fireMsg{fn: fn}:
	case <-p.done:
	}
}

func (p *pump) start(send func(tea.Msg)) {
	if send == nil {
		return
	}
	p.startOnce.Do(func() {
		safego.Go("hover.pump", func() { p.drain(send) })
	})
}

func (p *pump) drain(send func(tea.Msg)) {
	for {
		select {
		case msg := <-p.queue:
			send(msg)
		case <-p.done:
			return
		}
	}
}

func (p *pump) stop() {
	p.stopOnce.Do(func() { close(p.done) })
}
