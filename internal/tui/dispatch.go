package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"
)

type dispatchMsg struct{}

// Dispatcher marshals callbacks from backend goroutines onto the bubbletea
// update loop. Backends push closures; the model drains and runs them when
// the coalesced signal arrives, so all shared state stays single-threaded.
type Dispatcher struct {
	mu     sync.Mutex
	fns    []func()
	signal chan struct{}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		signal: make(chan struct{}, 1),
	}
}

// Push queues fn and emits a non-blocking drain signal.
func (d *Dispatcher) Push(fn func()) {
	d.mu.Lock()
	d.fns = append(d.fns, fn)
	d.mu.Unlock()

	select {
	case d.signal <- struct{}{}:
	default:
	}
}

// Drain returns the queued callbacks and clears the queue.
func (d *Dispatcher) Drain() []func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.fns) == 0 {
		return nil
	}

	out := make([]func(), len(d.fns))
	copy(out, d.fns)
	d.fns = d.fns[:0]
	return out
}

// WaitForSignal blocks until callbacks are ready to drain.
func (d *Dispatcher) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-d.signal
		return dispatchMsg{}
	}
}
