package logging

import (
	"context"
	"runtime"
	"runtime/debug"
)

// RecoverPanic logs a panic with its stack trace and re-panics. Call it
// deferred at the top of main and of long-lived goroutines.
func RecoverPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	FromContext(ctx).Error().
		Interface("panic", r).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Bytes("stack", debug.Stack()).
		Msg("panic")
	panic(r)
}
