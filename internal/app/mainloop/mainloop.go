// Package mainloop provides the single UI execution context. Every window
// and tab mutation is funneled through it.
package mainloop

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/ember/internal/logging"
)

// ErrStopped is returned by Run once the loop was stopped.
var ErrStopped = errors.New("main loop stopped")

// ErrReentrant is returned when Run is called from the loop itself, which
// would deadlock.
var ErrReentrant = errors.New("main loop: Run called from the loop goroutine")

type task struct {
	fn   func()
	done chan struct{}
}

// Loop drains a FIFO of closures on one dedicated goroutine.
type Loop struct {
	ctx   context.Context
	queue chan task

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
	exited  chan struct{}
}

// New starts a loop. Stop must be called to release its goroutine.
func New(ctx context.Context, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 64
	}
	l := &Loop{
		ctx:    ctx,
		queue:  make(chan task, queueSize),
		stopCh: make(chan struct{}),
		exited: make(chan struct{}),
	}
	go l.run()
	return l
}

type loopKey struct{}

func (l *Loop) run() {
	defer close(l.exited)
	log := logging.FromContext(l.ctx)
	for {
		select {
		case t := <-l.queue:
			l.exec(t)
		case <-l.stopCh:
			// Drain what was queued before the stop.
			for {
				select {
				case t := <-l.queue:
					l.exec(t)
				default:
					log.Debug().Msg("main loop exited")
					return
				}
			}
		}
	}
}

func (l *Loop) exec(t task) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(l.ctx).Error().Interface("panic", r).Msg("main loop task panicked")
		}
	}()
	t.fn()
}

// Run enqueues fn and blocks until it ran. ctx only bounds the wait for a
// queue slot and for completion; a started task always runs to its end.
// Closures running on the loop must not call Run: pass a context derived
// from OnLoop to detect it.
func (l *Loop) Run(ctx context.Context, fn func()) error {
	if ctx.Value(loopKey{}) == l {
		return ErrReentrant
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case l.queue <- t:
	case <-ctx.Done():
		l.mu.Unlock()
		return ctx.Err()
	}
	l.mu.Unlock()

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnLoop tags ctx as belonging to closures run by l, so a nested Run fails
// fast instead of deadlocking.
func (l *Loop) OnLoop(ctx context.Context) context.Context {
	return context.WithValue(ctx, loopKey{}, l)
}

// Stop runs the queued tasks, then stops the loop. Further Run calls fail
// with ErrStopped.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.stopped {
		l.stopped = true
		close(l.stopCh)
	}
	l.mu.Unlock()
	<-l.exited
}

// Inline runs closures on the calling goroutine, one at a time. It suits
// tools without a UI, such as the CLI.
type Inline struct {
	mu sync.Mutex
}

// Run executes fn under the inline lock.
func (i *Inline) Run(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	fn()
	return nil
}
