package fire

import (
	"context"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/logging"
)

// Callbacks exposes Fire to UI code that cannot block: each operation runs
// in the background and done is invoked exactly once on the main thread.
type Callbacks struct {
	fire *Fire
	main port.MainThread
}

// NewCallbacks wraps f.
func NewCallbacks(f *Fire) *Callbacks {
	return &Callbacks{fire: f, main: f.deps.MainThread}
}

func (c *Callbacks) async(ctx context.Context, op func(context.Context), done func()) {
	go func() {
		op(ctx)
		if done == nil {
			return
		}
		if err := c.main.Run(context.WithoutCancel(ctx), done); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to deliver burn completion")
		}
	}()
}

// BurnEntityAsync runs BurnEntity in the background.
func (c *Callbacks) BurnEntityAsync(ctx context.Context, e entity.BurningEntity, opts BurnOptions, done func()) {
	c.async(ctx, func(ctx context.Context) { c.fire.BurnEntity(ctx, e, opts) }, done)
}

// BurnAllAsync runs BurnAll in the background.
func (c *Callbacks) BurnAllAsync(ctx context.Context, opts BurnAllOptions, done func()) {
	c.async(ctx, func(ctx context.Context) { c.fire.BurnAll(ctx, opts) }, done)
}

// BurnVisitsAsync runs BurnVisits in the background.
func (c *Callbacks) BurnVisitsAsync(ctx context.Context, visits []*entity.Visit, opts BurnVisitsOptions, done func()) {
	c.async(ctx, func(ctx context.Context) { c.fire.BurnVisits(ctx, visits, opts) }, done)
}

// BurnChatHistoryAsync runs BurnChatHistory in the background.
func (c *Callbacks) BurnChatHistoryAsync(ctx context.Context, done func()) {
	c.async(ctx, c.fire.BurnChatHistory, done)
}
