package fire

import (
	"context"
	"sync"
)

// Barrier is a counting completion group. It starts with one unit held by
// its creator; every fanned-out unit of work Enters before it starts and
// Leaves when it is done. Done is closed once the count drops to zero, after
// which Enter refuses new work.
//
// Unlike sync.WaitGroup, late registration is explicit: Enter reports
// whether the unit was accepted, which lets an external participant (the
// fire animation) join only while the burn is still in flight.
type Barrier struct {
	mu      sync.Mutex
	pending int
	settled bool
	done    chan struct{}
}

// NewBarrier returns a barrier holding one unit for the caller.
func NewBarrier() *Barrier {
	return &Barrier{pending: 1, done: make(chan struct{})}
}

// Enter registers one more outstanding unit. It returns false if the
// barrier already settled.
func (b *Barrier) Enter() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.settled {
		return false
	}
	b.pending++
	return true
}

// Leave releases one unit. Extra calls after settling are ignored.
func (b *Barrier) Leave() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.settled {
		return
	}
	b.pending--
	if b.pending <= 0 {
		b.pending = 0
		b.settled = true
		close(b.done)
	}
}

// Go runs fn on a new goroutine as one unit of the barrier.
func (b *Barrier) Go(fn func()) bool {
	if !b.Enter() {
		return false
	}
	go func() {
		defer b.Leave()
		fn()
	}()
	return true
}

// Done is closed when every unit has left.
func (b *Barrier) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the barrier settles or ctx is done.
func (b *Barrier) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of outstanding units.
func (b *Barrier) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}
