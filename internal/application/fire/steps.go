package fire

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/logging"
)

// step is one leaf operation of a burn.
type step struct {
	name port.BurnStep
	run  func(ctx context.Context) error
}

// runStep executes s, absorbing errors and panics. A leaf failure is
// logged and reported but never escapes the orchestrator.
func (f *Fire) runStep(ctx context.Context, s step) {
	log := logging.FromContext(ctx)
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in %s: %v", s.name, r)
			}
		}()
		return s.run(ctx)
	}()

	d := time.Since(start)
	f.reporter.StepFinished(s.name, d, err)
	if err != nil {
		log.Warn().Err(err).Str("step", string(s.name)).Dur("duration", d).Msg("burn step failed")
		return
	}
	log.Debug().Str("step", string(s.name)).Dur("duration", d).Msg("burn step done")
}

// spawn runs steps in order on one goroutine counted as a single unit of b.
// Steps chained this way observe happens-before ordering; separate spawn
// calls are unordered relative to each other.
func (f *Fire) spawn(ctx context.Context, b *Barrier, steps ...step) {
	ok := b.Go(func() {
		for _, s := range steps {
			f.runStep(ctx, s)
		}
	})
	if !ok {
		// Only reachable if a caller released the held unit too early.
		logging.FromContext(ctx).Error().Msg("burn barrier already settled, running steps inline")
		for _, s := range steps {
			f.runStep(ctx, s)
		}
	}
}
