package main

import (
	"context"
	"runtime"

	"github.com/bnema/ember/internal/cli/cmd"
	"github.com/bnema/ember/internal/domain/build"
	"github.com/bnema/ember/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx := logging.WithContext(context.Background(), logging.NewFromEnv())
	defer logging.RecoverPanic(ctx)

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
