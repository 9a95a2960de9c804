package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// callbackMsg carries work dispatched to the UI thread.
type callbackMsg func()

// dispatcher queues UI callbacks without blocking the caller and feeds them
// to the program in order. Callers may be the program itself, so enqueue
// must never wait on the event loop.
type dispatcher struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func newDispatcher() *dispatcher {
	return &dispatcher{wake: make(chan struct{}, 1)}
}

func (d *dispatcher) enqueue(cb func()) {
	d.mu.Lock()
	d.queue = append(d.queue, cb)
	d.mu.Unlock()
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dispatcher) take() []func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	q := d.queue
	d.queue = nil
	return q
}

// run forwards queued callbacks to send until ctx is done.
func (d *dispatcher) run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.wake:
			for _, cb := range d.take() {
				send(callbackMsg(cb))
			}
		}
	}
}
