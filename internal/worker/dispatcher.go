package worker

import (
	"errors"

	"go.uber.org/atomic"
)

// ErrDispatcherBusy reports that every turn slot is taken.
var ErrDispatcherBusy = errors.New("all turn slots busy")

const defaultMaxTurns = 8

// Dispatcher bounds how many turns may talk to the model backend at once.
// A turn that cannot get a slot fails fast so the client can retry, instead
// of queueing behind an unbounded backlog of upstream calls.
type Dispatcher struct {
	slots  chan struct{}
	active atomic.Int64
}

func NewDispatcher(maxTurns int) *Dispatcher {
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	return &Dispatcher{slots: make(chan struct{}, maxTurns)}
}

// Acquire claims a turn slot. The returned release func must be called once
// the turn finishes, streaming included.
func (d *Dispatcher) Acquire() (func(), error) {
	select {
	case d.slots <- struct{}{}:
	default:
		return nil, ErrDispatcherBusy
	}
	n := d.active.Inc()
	debugLog("[dispatcher] slot acquired, %d turns active", n)

	return func() {
		d.active.Dec()
		<-d.slots
	}, nil
}

// Active reports the number of in-flight turns.
func (d *Dispatcher) Active() int64 {
	return d.active.Load()
}
