package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/calder-v/metascope/cmd"
	"github.com/calder-v/metascope/internal/observability"
)

func main() {
	// Listen for interrupt signals so long enrichment runs shut down
	// gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
