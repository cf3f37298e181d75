package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger carried by ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

func withField(ctx context.Context, key, value string) context.Context {
	return FromContext(ctx).With().Str(key, value).Logger().WithContext(ctx)
}

// WithComponent tags every entry logged through ctx with component.
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

// WithBurnID tags every entry of one burn, so interleaved steps can be
// told apart.
func WithBurnID(ctx context.Context, burnID string) context.Context {
	return withField(ctx, "burn_id", burnID)
}
